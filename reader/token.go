package reader

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/reusee/clbridge/values"
	"github.com/x448/float16"
)

var (
	integerPattern = regexp.MustCompile(`^([+-]?[0-9]+)\.?$`)
	ratioPattern   = regexp.MustCompile(`^([+-]?[0-9]+)/([0-9]+)$`)
	floatPattern   = regexp.MustCompile(`^([+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+))(?:([ESFDLesfdl])([+-]?[0-9]+))?$`)
)

// ParseToken classifies an already accumulated, case folded token.
func (r *Readtable) ParseToken(text string) (values.Value, error) {
	tok := &token{
		runes:   []rune(text),
		escaped: make([]bool, len([]rune(text))),
		pos:     Pos{Line: 1, Column: 1},
	}
	return r.parseToken(tok)
}

func (r *Readtable) parseToken(tok *token) (values.Value, error) {
	if !tok.hasEscapes() {
		text := tok.String()
		v, ok, err := parseNumber(text)
		if err != nil {
			return nil, parseError(tok.pos, err)
		}
		if ok {
			return v, nil
		}
		if isPotentialNumber(text) {
			return nil, parseError(tok.pos, fmt.Errorf("%w: %q", ErrInvalidToken, text))
		}
	}
	v, err := r.parseSymbol(tok)
	if err != nil {
		return nil, parseError(tok.pos, err)
	}
	return v, nil
}

func parseNumber(text string) (values.Value, bool, error) {

	// integer
	if m := integerPattern.FindStringSubmatch(text); m != nil {
		i, ok := new(big.Int).SetString(m[1], 10)
		if !ok {
			return nil, false, fmt.Errorf("%w: %q", ErrInvalidToken, text)
		}
		return values.Integer{Int: i}, true, nil
	}

	// ratio
	if m := ratioPattern.FindStringSubmatch(text); m != nil {
		num, ok1 := new(big.Int).SetString(m[1], 10)
		den, ok2 := new(big.Int).SetString(m[2], 10)
		if !ok1 || !ok2 {
			return nil, false, fmt.Errorf("%w: %q", ErrInvalidToken, text)
		}
		if den.Sign() == 0 {
			return nil, false, fmt.Errorf("%w: division by zero in %q", ErrInvalidToken, text)
		}
		return values.Rational(new(big.Rat).SetFrac(num, den)), true, nil
	}

	// float
	if m := floatPattern.FindStringSubmatch(text); m != nil {
		mantissa, marker, exponent := m[1], m[2], m[3]
		precision := values.Single
		switch strings.ToLower(marker) {
		case "s":
			precision = values.Short
		case "d":
			precision = values.Double
		case "l":
			precision = values.Long
		}
		src := mantissa
		if exponent != "" {
			src += "e" + exponent
		}
		f, err := strconv.ParseFloat(src, precision.Bits())
		if err != nil {
			return nil, false, fmt.Errorf("%w: %q: %v", ErrInvalidToken, text, err)
		}
		if precision == values.Short {
			f = float64(float16.Fromfloat32(float32(f)).Float32())
		}
		return values.Float{
			Value:     f,
			Precision: precision,
		}, true, nil
	}

	return nil, false, nil
}

// isPotentialNumber reports tokens that look numeric without matching any
// numeric syntax. Such tokens are reserved and do not read as symbols.
func isPotentialNumber(text string) bool {
	if text == "" {
		return false
	}
	hasDigit := false
	prevLetter := false
	for _, c := range text {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
			prevLetter = false
		case c == '+' || c == '-' || c == '/' || c == '.' || c == '^' || c == '_':
			prevLetter = false
		case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			if prevLetter {
				return false
			}
			prevLetter = true
		default:
			return false
		}
	}
	if !hasDigit {
		return false
	}
	switch text[0] {
	case '+', '-', '.', '^', '_':
	default:
		if text[0] < '0' || text[0] > '9' {
			return false
		}
	}
	last := text[len(text)-1]
	return last != '+' && last != '-'
}

func (r *Readtable) parseSymbol(tok *token) (values.Value, error) {
	// package markers are unescaped colons
	first, count := -1, 0
	for i, c := range tok.runes {
		if c != ':' || tok.escaped[i] {
			continue
		}
		if first < 0 {
			first = i
		} else if i != first+count {
			return nil, fmt.Errorf("%w: too many package markers in %q", ErrInvalidToken, tok.String())
		}
		count++
	}
	if count > 2 {
		return nil, fmt.Errorf("%w: too many package markers in %q", ErrInvalidToken, tok.String())
	}

	if first < 0 {
		return r.intern(tok.String(), r.Package()), nil
	}

	name := string(tok.runes[first+count:])
	if name == "" && !tok.escapedFrom(first+count) {
		return nil, fmt.Errorf("%w: missing symbol name in %q", ErrInvalidToken, tok.String())
	}
	if first == 0 {
		return values.Keyword(name), nil
	}
	return r.intern(name, string(tok.runes[:first])), nil
}

func (r *Readtable) intern(name, pkg string) values.Value {
	if values.IsReservedPackage(pkg) {
		switch name {
		case "T":
			return values.T
		case "NIL":
			return values.Nil
		}
	}
	return values.Sym(name, pkg)
}
