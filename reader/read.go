package reader

import (
	"fmt"
	"io"
	"unicode"

	"github.com/reusee/clbridge/values"
)

// read is the reader algorithm without label resolution. Macro handlers
// call it recursively.
func (r *Readtable) read(s *Stream) (values.Value, error) {
	for {
		c, err := s.ReadRune()
		if err != nil {
			return nil, err
		}

		syntax := r.SyntaxType(c)
		switch {

		case syntax == Whitespace:
			continue

		case syntax.isMacro():
			v, ok, err := r.callMacro(s, c)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			return v, nil

		}

		if err := s.UnreadRune(); err != nil {
			return nil, err
		}
		tok, err := r.readToken(s)
		if err != nil {
			return nil, err
		}
		if tok.isDot() {
			return nil, parseError(tok.pos, fmt.Errorf("%w: dot outside of a list", ErrDottedList))
		}
		return r.parseToken(tok)
	}
}

// readRequired reads a value that must be present.
func (r *Readtable) readRequired(s *Stream) (values.Value, error) {
	v, err := r.read(s)
	if err == io.EOF {
		return nil, parseError(s.Pos(), ErrUnexpectedEOF)
	}
	return v, err
}

func (r *Readtable) callMacro(s *Stream, c rune) (values.Value, bool, error) {
	m, ok := r.macros[c]
	if !ok {
		return nil, false, parseError(s.Pos(), fmt.Errorf("%w: %q", ErrUndefinedMacro, c))
	}
	return m.fn(r, s, c)
}

type token struct {
	runes   []rune
	escaped []bool
	// rune offsets where a multiple escape opened
	openings []int
	pos      Pos
}

func (t *token) add(c rune, escaped bool) {
	t.runes = append(t.runes, c)
	t.escaped = append(t.escaped, escaped)
}

func (t *token) hasEscapes() bool {
	if len(t.runes) == 0 || len(t.openings) > 0 {
		// a token made only of escapes, like ||
		return true
	}
	for _, e := range t.escaped {
		if e {
			return true
		}
	}
	return false
}

// escapedFrom reports whether an escape occurs at or after offset.
func (t *token) escapedFrom(offset int) bool {
	for _, o := range t.openings {
		if o >= offset {
			return true
		}
	}
	for _, e := range t.escaped[offset:] {
		if e {
			return true
		}
	}
	return false
}

func (t *token) isDot() bool {
	return len(t.runes) == 1 && t.runes[0] == '.' && !t.escaped[0]
}

func (t *token) String() string {
	return string(t.runes)
}

// readToken accumulates constituent and escaped characters. Unescaped
// characters are folded to upper case.
func (r *Readtable) readToken(s *Stream) (*token, error) {
	tok := &token{
		pos:     s.Pos(),
		runes:   []rune{},
		escaped: []bool{},
	}
	inEscape := false
	for {
		c, err := s.ReadRune()
		if err == io.EOF {
			if inEscape {
				return nil, parseError(s.Pos(), ErrUnexpectedEOF)
			}
			return tok, nil
		}
		if err != nil {
			return nil, err
		}

		syntax := r.SyntaxType(c)
		switch {

		case syntax == SingleEscape:
			next, err := s.readRequired()
			if err != nil {
				return nil, err
			}
			tok.add(next, true)

		case syntax == MultipleEscape:
			if !inEscape {
				tok.openings = append(tok.openings, len(tok.runes))
			}
			inEscape = !inEscape

		case inEscape:
			tok.add(c, true)

		case syntax.endsToken():
			if err := s.UnreadRune(); err != nil {
				return nil, err
			}
			return tok, nil

		default:
			tok.add(unicode.ToUpper(c), false)

		}
	}
}

// skipWhitespace returns the next non whitespace character.
func (r *Readtable) skipWhitespace(s *Stream) (rune, error) {
	for {
		c, err := s.readRequired()
		if err != nil {
			return 0, err
		}
		if r.SyntaxType(c) != Whitespace {
			return c, nil
		}
	}
}

// readDelimitedList reads values up to delim. With allowDot a standalone dot
// introduces the tail of a dotted list.
func (r *Readtable) readDelimitedList(s *Stream, delim rune, allowDot bool) (values.Value, error) {
	head := &values.Cons{Rest: values.Nil}
	tail := head
	for {
		c, err := r.skipWhitespace(s)
		if err != nil {
			return nil, err
		}
		if c == delim {
			return head.Rest, nil
		}

		if r.SyntaxType(c).isMacro() {
			v, ok, err := r.callMacro(s, c)
			if err != nil {
				return nil, err
			}
			if ok {
				cons := values.NewCons(v, values.Nil)
				tail.Rest = cons
				tail = cons
			}
			continue
		}

		if err := s.UnreadRune(); err != nil {
			return nil, err
		}
		tok, err := r.readToken(s)
		if err != nil {
			return nil, err
		}

		if tok.isDot() {
			if !allowDot || tail == head {
				return nil, parseError(tok.pos, ErrDottedList)
			}
			rest, err := r.readRequired(s)
			if err != nil {
				return nil, err
			}
			tail.Rest = rest
			if err := r.readClosing(s, delim); err != nil {
				return nil, err
			}
			return head.Rest, nil
		}

		v, err := r.parseToken(tok)
		if err != nil {
			return nil, err
		}
		cons := values.NewCons(v, values.Nil)
		tail.Rest = cons
		tail = cons
	}
}

// readClosing expects delim after the tail of a dotted list, skipping
// comments.
func (r *Readtable) readClosing(s *Stream, delim rune) error {
	for {
		c, err := r.skipWhitespace(s)
		if err != nil {
			return err
		}
		if c == delim {
			return nil
		}
		if r.SyntaxType(c).isMacro() {
			_, ok, err := r.callMacro(s, c)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		return parseError(s.Pos(), fmt.Errorf("%w: more than one object after dot", ErrDottedList))
	}
}
