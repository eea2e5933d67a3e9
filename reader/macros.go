package reader

import (
	"fmt"
	"strings"

	"github.com/reusee/clbridge/values"
)

func leftParenthesis(r *Readtable, s *Stream, c rune) (values.Value, bool, error) {
	v, err := r.readDelimitedList(s, ')', true)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func rightParenthesis(r *Readtable, s *Stream, c rune) (values.Value, bool, error) {
	return nil, false, parseError(s.Pos(), fmt.Errorf("%w: closing parenthesis", ErrUnmatchedDelimiter))
}

func leftCurlyBracket(r *Readtable, s *Stream, c rune) (values.Value, bool, error) {
	data, err := r.readDelimitedList(s, '}', false)
	if err != nil {
		return nil, false, err
	}
	items, err := values.ToSlice(data)
	if err != nil {
		return nil, false, parseError(s.Pos(), err)
	}
	if len(items)%2 != 0 {
		return nil, false, parseError(s.Pos(), ErrOddMapping)
	}
	m := values.NewMapping()
	for i := 0; i < len(items); i += 2 {
		m.Set(items[i], items[i+1])
	}
	return m, true, nil
}

func rightCurlyBracket(r *Readtable, s *Stream, c rune) (values.Value, bool, error) {
	return nil, false, parseError(s.Pos(), fmt.Errorf("%w: closing curly bracket", ErrUnmatchedDelimiter))
}

func singleQuote(r *Readtable, s *Stream, c rune) (values.Value, bool, error) {
	v, err := r.readRequired(s)
	if err != nil {
		return nil, false, err
	}
	return values.Quote(v), true, nil
}

func doubleQuote(r *Readtable, s *Stream, c rune) (values.Value, bool, error) {
	var sb strings.Builder
	for {
		c, err := s.readRequired()
		if err != nil {
			return nil, false, err
		}
		switch c {
		case '"':
			return values.String(sb.String()), true, nil
		case '\\':
			c, err = s.readRequired()
			if err != nil {
				return nil, false, err
			}
		}
		sb.WriteRune(c)
	}
}

func semicolon(r *Readtable, s *Stream, c rune) (values.Value, bool, error) {
	for {
		c, err := s.ReadRune()
		if err != nil || c == '\n' {
			// a comment may end the stream
			return nil, false, nil
		}
	}
}

func unsupported(r *Readtable, s *Stream, c rune) (values.Value, bool, error) {
	return nil, false, parseError(s.Pos(), fmt.Errorf("%w: %q", ErrUndefinedMacro, c))
}
