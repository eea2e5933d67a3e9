package reader

import (
	"io"
	"strings"

	"github.com/reusee/clbridge/circularity"
	"github.com/reusee/clbridge/values"
)

// MacroFunc handles a macro character. ok is false when nothing was read,
// as for comments.
type MacroFunc func(r *Readtable, s *Stream, c rune) (v values.Value, ok bool, err error)

// DispatchFunc handles a sub character of a dispatching macro character.
// arg is the decimal prefix, -1 if absent.
type DispatchFunc func(r *Readtable, s *Stream, sub rune, arg int) (v values.Value, ok bool, err error)

// HandleSource resolves peer handles to proxies.
type HandleSource interface {
	GetOrCreate(handle int64) *values.Proxy
}

type macro struct {
	fn          MacroFunc
	terminating bool
}

// Readtable maps characters to reader behavior. One Readtable belongs to one
// session.
type Readtable struct {
	macros   map[rune]macro
	dispatch map[rune]map[rune]DispatchFunc

	currentPackage func() string
	handles        HandleSource
}

// New returns a Readtable resolving unqualified symbols against the package
// reported by currentPackage and peer handles against handles. Both may be nil.
func New(currentPackage func() string, handles HandleSource) *Readtable {
	r := &Readtable{
		macros:         make(map[rune]macro),
		dispatch:       make(map[rune]map[rune]DispatchFunc),
		currentPackage: currentPackage,
		handles:        handles,
	}

	r.setMacro('(', true, leftParenthesis)
	r.setMacro(')', true, rightParenthesis)
	r.setMacro('{', true, leftCurlyBracket)
	r.setMacro('}', true, rightCurlyBracket)
	r.setMacro('\'', true, singleQuote)
	r.setMacro('"', true, doubleQuote)
	r.setMacro(';', true, semicolon)
	r.setMacro('`', true, unsupported)
	r.setMacro(',', true, unsupported)

	r.setMacro('#', false, sharpsign)
	r.setDispatch('#', '\\', sharpsignBackslash)
	r.setDispatch('#', '\'', sharpsignQuote)
	r.setDispatch('#', '(', sharpsignLeftParenthesis)
	r.setDispatch('#', '?', sharpsignQuestionMark)
	r.setDispatch('#', 'A', sharpsignA)
	r.setDispatch('#', 'C', sharpsignC)
	r.setDispatch('#', 'M', sharpsignM)
	r.setDispatch('#', '=', sharpsignEquals)
	r.setDispatch('#', '#', sharpsignSharpsign)
	r.setDispatch('#', ':', sharpsignColon)
	r.setDispatch('#', '|', sharpsignBar)

	return r
}

func (r *Readtable) setMacro(c rune, terminating bool, fn MacroFunc) {
	r.macros[c] = macro{
		fn:          fn,
		terminating: terminating,
	}
}

func (r *Readtable) setDispatch(c, sub rune, fn DispatchFunc) {
	m, ok := r.dispatch[c]
	if !ok {
		m = make(map[rune]DispatchFunc)
		r.dispatch[c] = m
	}
	m[sub] = fn
}

// Package returns the namespace unqualified symbols are interned in.
func (r *Readtable) Package() string {
	if r.currentPackage != nil {
		if pkg := r.currentPackage(); pkg != "" {
			return pkg
		}
	}
	return values.UserPackage
}

// Read reads one complete value and resolves its circularity labels. It
// returns io.EOF if the stream ends before any value starts.
func (r *Readtable) Read(s *Stream) (values.Value, error) {
	v, err := r.read(s)
	if err != nil {
		return nil, err
	}
	v, err = circularity.Decode(v)
	if err != nil {
		return nil, parseError(s.Pos(), err)
	}
	return v, nil
}

// ReadString reads exactly one value from src.
func (r *Readtable) ReadString(src string) (values.Value, error) {
	s := NewStream(strings.NewReader(src))
	v, err := r.Read(s)
	if err == io.EOF {
		return nil, parseError(s.Pos(), ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, err
	}
	if _, err := r.read(s); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, parseError(s.Pos(), ErrExtraInput)
	}
	return v, nil
}
