package values

import (
	"context"
	"strings"
)

// KeywordArg is one keyword argument of a proxy call.
type KeywordArg struct {
	Name  string
	Value Value
}

// Caller invokes peer functions on behalf of proxies.
type Caller interface {
	Funcall(ctx context.Context, fn Value, args []Value, kwargs []KeywordArg) ([]Value, error)
}

// Proxy stands for an object living in the peer, addressed by handle.
type Proxy struct {
	Handle int64
	owner  Caller
}

func (*Proxy) Kind() Kind { return KindProxy }

func NewProxy(handle int64, owner Caller) *Proxy {
	return &Proxy{
		Handle: handle,
		owner:  owner,
	}
}

// Call invokes the proxied object with positional arguments and returns the
// primary value.
func (p *Proxy) Call(ctx context.Context, args ...Value) (Value, error) {
	rets, err := p.CallWith(ctx, args, nil)
	if err != nil {
		return nil, err
	}
	return Primary(rets), nil
}

// CallWith invokes the proxied object and returns all values.
func (p *Proxy) CallWith(ctx context.Context, args []Value, kwargs []KeywordArg) ([]Value, error) {
	if p.owner == nil {
		return nil, ErrNoOwner
	}
	return p.owner.Funcall(ctx, p, args, kwargs)
}

// Primary returns the first of multiple values, or Nil.
func Primary(values []Value) Value {
	if len(values) == 0 {
		return Nil
	}
	return values[0]
}

// KeywordFor turns a host style argument name into a keyword.
func KeywordFor(name string) Symbol {
	return Keyword(strings.ToUpper(strings.ReplaceAll(name, "_", "-")))
}
