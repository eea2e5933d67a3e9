package writer

import (
	"errors"
	"io"
	"strings"

	"github.com/reusee/clbridge/circularity"
	"github.com/reusee/clbridge/values"
)

var ErrCircular = errors.New("circular structure without labels")

type printer struct {
	sb   strings.Builder
	path map[values.Value]struct{}
}

// enter marks a compound node as being printed.
func (p *printer) enter(v values.Value) error {
	if p.path == nil {
		p.path = make(map[values.Value]struct{})
	}
	if _, ok := p.path[v]; ok {
		return ErrCircular
	}
	p.path[v] = struct{}{}
	return nil
}

func (p *printer) leave(v values.Value) {
	delete(p.path, v)
}

type renderFunc func(p *printer, v values.Value) error

var renderers [values.KindLabelRef + 1]renderFunc

func init() {
	renderers = [...]renderFunc{
		values.KindNil:      renderNil,
		values.KindBool:     renderBool,
		values.KindInteger:  renderInteger,
		values.KindRatio:    renderRatio,
		values.KindFloat:    renderFloat,
		values.KindComplex:  renderComplex,
		values.KindString:   renderString,
		values.KindChar:     renderChar,
		values.KindSymbol:   renderSymbol,
		values.KindCons:     renderCons,
		values.KindVector:   renderVector,
		values.KindArray:    renderArray,
		values.KindMapping:  renderMapping,
		values.KindLabelDef: renderLabelDef,
		values.KindLabelRef: renderLabelRef,
	}
}

func (p *printer) print(v values.Value) error {
	if values.IsNilPointer(v) {
		return values.UnrepresentableValueError{
			Value: v,
		}
	}
	kind := values.KindOf(v)
	if int(kind) < len(renderers) {
		if fn := renderers[kind]; fn != nil {
			return fn(p, v)
		}
	}
	// values owned by the peer
	if proxy, ok := v.(*values.Proxy); ok {
		return renderProxy(p, proxy)
	}
	return values.UnrepresentableValueError{
		Value: v,
	}
}

// Print renders v as it is. Circularity markers are printed as labels; shared
// structure that was not encoded is printed once per path, and cycles that
// were not encoded are an error.
func Print(v values.Value) (string, error) {
	p := new(printer)
	if err := p.print(v); err != nil {
		return "", err
	}
	return p.sb.String(), nil
}

// Marshal renders v with shared and cyclic structure labeled.
func Marshal(v values.Value) (string, error) {
	return Print(circularity.Encode(v))
}

// Write marshals v to w. Nothing is written if v can not be rendered.
func Write(w io.Writer, v values.Value) error {
	text, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}
