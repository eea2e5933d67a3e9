package sessions

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
	"testing"
)

type pipeTransport struct {
	*io.PipeReader
	requests *io.PipeWriter
}

func (p pipeTransport) Write(buf []byte) (int, error) {
	return p.requests.Write(buf)
}

func (p pipeTransport) Close() error {
	p.requests.Close()
	return p.PipeReader.Close()
}

// startPeer runs a fake peer answering each request line with the text
// returned by respond. The peer hangs up after a response when more is false.
func startPeer(t *testing.T, respond func(request string) (response string, more bool)) (Transport, <-chan string) {
	requestReader, requestWriter := io.Pipe()
	responseReader, responseWriter := io.Pipe()
	requests := make(chan string, 64)

	go func() {
		defer responseWriter.Close()
		r := bufio.NewReader(requestReader)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimSuffix(line, "\n")
			requests <- line
			response, more := respond(line)
			if _, err := io.WriteString(responseWriter, response); err != nil {
				return
			}
			if !more {
				return
			}
		}
	}()

	transport := pipeTransport{
		PipeReader: responseReader,
		requests:   requestWriter,
	}
	t.Cleanup(func() {
		transport.Close()
	})
	return transport, requests
}

// reply answers every request with the same response.
func reply(response string) func(string) (string, bool) {
	return func(string) (string, bool) {
		return response, true
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
