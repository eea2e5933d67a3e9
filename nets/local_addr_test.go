package nets

import (
	"io"
	"testing"

	"github.com/reusee/clbridge/configs"
	"github.com/reusee/clbridge/logs"
	"github.com/reusee/clbridge/modes"
	"github.com/reusee/dscope"
)

func TestIsLocalAddr(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
		func() logs.Writer {
			return io.Discard
		},
	).Call(func(
		isLocalAddr IsLocalAddr,
	) {
		for addr, expected := range map[string]bool{
			"127.0.0.1:4005": true,
			"[::1]:4005":     true,
			"10.0.0.2":       true,
			"192.168.1.1:80": true,
			"8.8.8.8:53":     false,
		} {
			yes, err := isLocalAddr(addr)
			if err != nil {
				t.Fatal(err)
			}
			if yes != expected {
				t.Fatalf("%s: got %v", addr, yes)
			}
		}
	})
}

func TestDialerInDevelopment(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
		func() logs.Writer {
			return io.Discard
		},
	).Call(func(
		proxyAddr ProxyAddr,
		getProxyURL GetProxyURL,
		dialer Dialer,
	) {
		if proxyAddr != "" {
			t.Fatalf("got %v", proxyAddr)
		}
		u, err := getProxyURL()
		if err != nil {
			t.Fatal(err)
		}
		if u != nil {
			t.Fatalf("got %v", u)
		}
		if dialer == nil {
			t.Fatal()
		}
	})
}
