package sessions

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/reusee/clbridge/logs"
	"github.com/reusee/clbridge/nets"
)

// Transport carries requests to the peer and responses back. Reads block
// until the peer writes and return io.EOF once the peer is gone.
type Transport interface {
	io.Reader
	io.Writer
	io.Closer
}

var DefaultCommand = []string{"sbcl", "--script"}

const killGracePeriod = 5 * time.Second

type process struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  io.ReadCloser
	script  string
	logger  logs.Logger
	stderr  chan struct{}
	closeFn func() error
}

var _ Transport = new(process)

// StartProcess runs command with the path of the peer script appended and
// talks to it over its standard streams. Lines the peer writes to standard
// error are logged.
func StartProcess(ctx context.Context, logger logs.Logger, command []string) (Transport, error) {
	if len(command) == 0 {
		command = DefaultCommand
	}

	file, err := os.CreateTemp("", "clbridge-*.lisp")
	if err != nil {
		return nil, wrap(err)
	}
	script := file.Name()
	if _, err := file.WriteString(PeerScript); err != nil {
		file.Close()
		os.Remove(script)
		return nil, wrap(err)
	}
	if err := file.Close(); err != nil {
		os.Remove(script)
		return nil, wrap(err)
	}

	args := append(command[1:len(command):len(command)], script)
	cmd := exec.Command(command[0], args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.Remove(script)
		return nil, wrap(err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		os.Remove(script)
		return nil, wrap(err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		os.Remove(script)
		return nil, wrap(err)
	}
	if err := cmd.Start(); err != nil {
		os.Remove(script)
		return nil, wrap(err)
	}
	logger.InfoContext(ctx, "peer started", "command", command, "pid", cmd.Process.Pid)

	p := &process{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
		script: script,
		logger: logger,
		stderr: make(chan struct{}),
	}
	p.closeFn = sync.OnceValue(p.close)

	go func() {
		defer close(p.stderr)
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			logger.WarnContext(ctx, "peer stderr", "line", scanner.Text())
		}
	}()

	return p, nil
}

func (p *process) Read(buf []byte) (int, error) {
	return p.stdout.Read(buf)
}

func (p *process) Write(buf []byte) (int, error) {
	return p.stdin.Write(buf)
}

// Close ends the request stream and waits for the peer to exit, killing it
// after a grace period.
func (p *process) Close() error {
	return p.closeFn()
}

func (p *process) close() error {
	defer os.Remove(p.script)
	p.stdin.Close()

	done := make(chan error, 1)
	go func() {
		<-p.stderr
		done <- p.cmd.Wait()
	}()

	var err error
	select {
	case err = <-done:
	case <-time.After(killGracePeriod):
		p.logger.Warn("peer did not exit, killing", "pid", p.cmd.Process.Pid)
		if killErr := p.cmd.Process.Kill(); killErr != nil {
			return wrap(killErr)
		}
		err = <-done
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		p.logger.Info("peer exited", "pid", p.cmd.Process.Pid, "code", exitErr.ExitCode())
		return nil
	}
	if err != nil {
		return wrap(err)
	}
	p.logger.Info("peer exited", "pid", p.cmd.Process.Pid, "code", 0)
	return nil
}

// Dial connects to a peer serving the same protocol on a TCP address.
func Dial(ctx context.Context, dialer nets.Dialer, addr string) (Transport, error) {
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, wrap(err)
	}
	return conn, nil
}
