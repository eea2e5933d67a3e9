package reader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/reusee/clbridge/values"
)

const (
	maxPrefix       = math.MaxInt32
	maxArrayRank    = 64
	maxVectorLength = 1 << 20
)

func sharpsign(r *Readtable, s *Stream, c rune) (values.Value, bool, error) {
	arg := -1
	var sub rune
	for {
		d, err := s.readRequired()
		if err != nil {
			return nil, false, err
		}
		if d >= '0' && d <= '9' {
			if arg < 0 {
				arg = 0
			}
			if arg > (maxPrefix-int(d-'0'))/10 {
				return nil, false, parseError(s.Pos(), fmt.Errorf("%w: numeric argument too large", ErrMalformedLiteral))
			}
			arg = arg*10 + int(d-'0')
			continue
		}
		sub = unicode.ToUpper(d)
		break
	}
	fn, ok := r.dispatch[c][sub]
	if !ok {
		return nil, false, parseError(s.Pos(), fmt.Errorf("%w: %c%c", ErrUndefinedMacro, c, sub))
	}
	return fn(r, s, sub, arg)
}

func requirePrefix(s *Stream, sub rune, arg int) error {
	if arg < 0 {
		return parseError(s.Pos(), fmt.Errorf("%w: #%c", ErrMissingPrefix, sub))
	}
	return nil
}

var characterNames = map[string]rune{
	"NEWLINE":   '\n',
	"SPACE":     ' ',
	"RUBOUT":    '\x7f',
	"PAGE":      '\f',
	"TAB":       '\t',
	"BACKSPACE": '\b',
	"RETURN":    '\r',
	"LINEFEED":  '\n',
	"NUL":       0,
}

func sharpsignBackslash(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	first, err := s.readRequired()
	if err != nil {
		return nil, false, err
	}
	name := []rune{first}
	for {
		c, err := s.ReadRune()
		if err != nil {
			break
		}
		syntax := r.SyntaxType(c)
		if syntax != Constituent && syntax != NonTerminatingMacro {
			if err := s.UnreadRune(); err != nil {
				return nil, false, err
			}
			break
		}
		name = append(name, c)
	}
	if len(name) == 1 {
		return values.Char(first), true, nil
	}

	key := strings.ToUpper(string(name))
	if c, ok := characterNames[key]; ok {
		return values.Char(c), true, nil
	}
	if strings.HasPrefix(key, "U") {
		if code, err := strconv.ParseUint(key[1:], 16, 32); err == nil && code <= unicode.MaxRune {
			return values.Char(rune(code)), true, nil
		}
	}
	return nil, false, parseError(s.Pos(), fmt.Errorf("%w: %s", ErrInvalidCharacterName, string(name)))
}

func sharpsignQuote(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	v, err := r.readRequired(s)
	if err != nil {
		return nil, false, err
	}
	return values.Function(v), true, nil
}

func sharpsignLeftParenthesis(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	data, err := r.readDelimitedList(s, ')', false)
	if err != nil {
		return nil, false, err
	}
	items, err := values.ToSlice(data)
	if err != nil {
		return nil, false, parseError(s.Pos(), err)
	}
	if arg > maxVectorLength {
		return nil, false, parseError(s.Pos(), fmt.Errorf("%w: vector length %d", ErrMalformedLiteral, arg))
	}
	if arg >= 0 {
		// #n(...) fills the remaining elements with the last one
		if len(items) > arg || (len(items) == 0 && arg > 0) {
			return nil, false, parseError(s.Pos(), fmt.Errorf("%w: vector longer than %d", ErrMalformedLiteral, arg))
		}
		for len(items) < arg {
			items = append(items, items[len(items)-1])
		}
	}
	return values.NewVector(items...), true, nil
}

func sharpsignQuestionMark(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	if err := requirePrefix(s, sub, arg); err != nil {
		return nil, false, err
	}
	if r.handles == nil {
		return values.NewProxy(int64(arg), nil), true, nil
	}
	return r.handles.GetOrCreate(int64(arg)), true, nil
}

func sharpsignA(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	if err := requirePrefix(s, sub, arg); err != nil {
		return nil, false, err
	}
	if arg > maxArrayRank {
		return nil, false, parseError(s.Pos(), fmt.Errorf("%w: array rank %d", ErrMalformedLiteral, arg))
	}
	contents, err := r.readRequired(s)
	if err != nil {
		return nil, false, err
	}
	array, err := makeArray(arg, contents)
	if err != nil {
		return nil, false, parseError(s.Pos(), err)
	}
	return array, true, nil
}

func sequenceItems(v values.Value) ([]values.Value, error) {
	switch v := v.(type) {
	case *values.Vector:
		return v.Items, nil
	case values.String:
		var ret []values.Value
		for _, c := range v {
			ret = append(ret, values.Char(c))
		}
		return ret, nil
	}
	return values.ToSlice(v)
}

func makeArray(rank int, contents values.Value) (*values.Array, error) {
	dims := make([]int, rank)
	cur := contents
	for i := range rank {
		items, err := sequenceItems(cur)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLiteral, err)
		}
		dims[i] = len(items)
		if len(items) == 0 {
			break
		}
		cur = items[0]
	}

	var flat []values.Value
	var walk func(v values.Value, depth int) error
	walk = func(v values.Value, depth int) error {
		if depth == rank {
			flat = append(flat, v)
			return nil
		}
		items, err := sequenceItems(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedLiteral, err)
		}
		if len(items) != dims[depth] {
			return fmt.Errorf("%w: array is not rectangular", ErrMalformedLiteral)
		}
		for _, item := range items {
			if err := walk(item, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(contents, 0); err != nil {
		return nil, err
	}
	if flat == nil {
		flat = []values.Value{}
	}
	return values.NewArray(dims, flat), nil
}

func sharpsignC(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	v, err := r.readRequired(s)
	if err != nil {
		return nil, false, err
	}
	items, err := values.ToSlice(v)
	if err != nil || len(items) != 2 || !values.IsReal(items[0]) || !values.IsReal(items[1]) {
		return nil, false, parseError(s.Pos(), fmt.Errorf("%w: complex needs two real parts", ErrMalformedLiteral))
	}
	return values.Complex{
		Real: items[0],
		Imag: items[1],
	}, true, nil
}

func sharpsignM(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	v, err := r.readRequired(s)
	if err != nil {
		return nil, false, err
	}
	malformed := parseError(s.Pos(), fmt.Errorf("%w: package needs (name . alist)", ErrMalformedLiteral))
	cons, ok := v.(*values.Cons)
	if !ok {
		return nil, false, malformed
	}
	pkg := new(values.Package)
	switch name := cons.First.(type) {
	case values.String:
		pkg.Name = string(name)
	case values.Symbol:
		pkg.Name = name.Name
	default:
		return nil, false, malformed
	}
	alist, err := values.ToSlice(cons.Rest)
	if err != nil {
		return nil, false, malformed
	}
	for _, elem := range alist {
		pair, ok := elem.(*values.Cons)
		if !ok {
			return nil, false, malformed
		}
		pkg.Members = append(pkg.Members, values.Entry{
			Key:   pair.First,
			Value: pair.Rest,
		})
	}
	return pkg, true, nil
}

func sharpsignEquals(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	if err := requirePrefix(s, sub, arg); err != nil {
		return nil, false, err
	}
	v, err := r.readRequired(s)
	if err != nil {
		return nil, false, err
	}
	return &values.LabelDef{
		Label: arg,
		Value: v,
	}, true, nil
}

func sharpsignSharpsign(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	if err := requirePrefix(s, sub, arg); err != nil {
		return nil, false, err
	}
	return &values.LabelRef{
		Label: arg,
	}, true, nil
}

func sharpsignColon(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	tok, err := r.readToken(s)
	if err != nil {
		return nil, false, err
	}
	for i, c := range tok.runes {
		if c == ':' && !tok.escaped[i] {
			return nil, false, parseError(tok.pos, fmt.Errorf("%w: package marker in uninterned symbol", ErrInvalidToken))
		}
	}
	return values.Symbol{Name: tok.String()}, true, nil
}

func sharpsignBar(r *Readtable, s *Stream, sub rune, arg int) (values.Value, bool, error) {
	depth := 1
	var prev rune
	for depth > 0 {
		c, err := s.readRequired()
		if err != nil {
			return nil, false, err
		}
		switch {
		case prev == '|' && c == '#':
			depth--
			c = 0
		case prev == '#' && c == '|':
			depth++
			c = 0
		}
		prev = c
	}
	return nil, false, nil
}
