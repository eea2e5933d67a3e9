package reader

import "unicode"

type SyntaxType uint8

const (
	Constituent SyntaxType = iota
	TerminatingMacro
	NonTerminatingMacro
	SingleEscape
	MultipleEscape
	Whitespace
)

func (r *Readtable) SyntaxType(c rune) SyntaxType {
	switch {
	case unicode.IsSpace(c):
		return Whitespace
	case c == '\\':
		return SingleEscape
	case c == '|':
		return MultipleEscape
	}
	if m, ok := r.macros[c]; ok {
		if m.terminating {
			return TerminatingMacro
		}
		return NonTerminatingMacro
	}
	return Constituent
}

func (s SyntaxType) isMacro() bool {
	return s == TerminatingMacro || s == NonTerminatingMacro
}

// endsToken reports whether c stops token accumulation outside escapes.
func (s SyntaxType) endsToken() bool {
	return s == TerminatingMacro || s == Whitespace
}
