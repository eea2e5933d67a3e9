package configs

import (
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/first.cue",
		"testdata/second.cue",
	}, Schema)

	if pkg := First[string](loader, "package"); pkg != "MY-PKG" {
		t.Fatalf("got %v", pkg)
	}
	if addr := First[string](loader, "address"); addr != "localhost:4005" {
		t.Fatalf("got %v", addr)
	}
	if q := First[bool](loader, "quicklisp"); q {
		t.Fatal()
	}
	if b := First[*bool](loader, "backtrace"); b == nil || !*b {
		t.Fatalf("got %v", b)
	}
	if b := First[*bool](loader, "quicklisp"); b != nil {
		t.Fatalf("got %v", b)
	}
}
