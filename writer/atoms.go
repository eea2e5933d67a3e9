package writer

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/reusee/clbridge/values"
)

func renderNil(p *printer, v values.Value) error {
	p.sb.WriteString("()")
	return nil
}

func renderBool(p *printer, v values.Value) error {
	if !v.(values.Bool) {
		p.sb.WriteString("()")
		return nil
	}
	p.sb.WriteString(values.CommonLispPackage)
	p.sb.WriteString(":T")
	return nil
}

func renderInteger(p *printer, v values.Value) error {
	i := v.(values.Integer)
	if i.Int == nil {
		p.sb.WriteByte('0')
		return nil
	}
	p.sb.WriteString(i.Int.String())
	return nil
}

func renderRatio(p *printer, v values.Value) error {
	r := v.(values.Ratio)
	if r.Rat == nil {
		return values.UnrepresentableValueError{Value: v}
	}
	p.sb.WriteString(r.Rat.Num().String())
	p.sb.WriteByte('/')
	p.sb.WriteString(r.Rat.Denom().String())
	return nil
}

func renderFloat(p *printer, v values.Value) error {
	f := v.(values.Float)
	if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
		return values.UnrepresentableValueError{Value: v}
	}
	// shortest digits that read back to the same value in the tier
	text := strconv.FormatFloat(f.Value, 'e', -1, f.Precision.Bits())
	mantissa, exponent, _ := strings.Cut(text, "e")
	exp, err := strconv.Atoi(exponent)
	if err != nil {
		return err
	}
	p.sb.WriteString(mantissa)
	p.sb.WriteByte(f.Precision.Marker())
	p.sb.WriteString(strconv.Itoa(exp))
	return nil
}

func renderComplex(p *printer, v values.Value) error {
	c := v.(values.Complex)
	if !values.IsReal(c.Real) || !values.IsReal(c.Imag) {
		return values.UnrepresentableValueError{Value: v}
	}
	p.sb.WriteString("#C(")
	if err := p.print(c.Real); err != nil {
		return err
	}
	p.sb.WriteByte(' ')
	if err := p.print(c.Imag); err != nil {
		return err
	}
	p.sb.WriteByte(')')
	return nil
}

func renderString(p *printer, v values.Value) error {
	p.sb.WriteByte('"')
	for _, c := range string(v.(values.String)) {
		if c == '"' || c == '\\' {
			p.sb.WriteByte('\\')
		}
		p.sb.WriteRune(c)
	}
	p.sb.WriteByte('"')
	return nil
}

var characterNames = map[rune]string{
	'\n':   "Newline",
	' ':    "Space",
	'\x7f': "Rubout",
	'\f':   "Page",
	'\t':   "Tab",
	'\b':   "Backspace",
	'\r':   "Return",
	0:      "Nul",
}

func renderChar(p *printer, v values.Value) error {
	c := rune(v.(values.Char))
	p.sb.WriteString(`#\`)
	if name, ok := characterNames[c]; ok {
		p.sb.WriteString(name)
		return nil
	}
	if unicode.IsGraphic(c) && !unicode.IsSpace(c) {
		p.sb.WriteRune(c)
		return nil
	}
	p.sb.WriteString("U")
	p.sb.WriteString(strings.ToUpper(strconv.FormatInt(int64(c), 16)))
	return nil
}

func renderSymbol(p *printer, v values.Value) error {
	sym := v.(values.Symbol)
	switch {
	case sym.IsKeyword():
		p.sb.WriteByte(':')
	case sym.IsUninterned():
		p.sb.WriteString("#:")
	default:
		writeSymbolName(&p.sb, sym.Package)
		p.sb.WriteString("::")
	}
	writeSymbolName(&p.sb, sym.Name)
	return nil
}

// numeric looking names are escaped so they do not read back as numbers
const numberLike = "0123456789+-./^_eEsSfFdDlL"

func needsEscape(name string) bool {
	if name == "" {
		return true
	}
	digits, dots, numeric := false, true, true
	for _, c := range name {
		switch {
		case unicode.IsSpace(c), unicode.ToUpper(c) != c:
			return true
		case strings.ContainsRune("()[]{}'\"`,;#|\\:", c):
			return true
		}
		if c >= '0' && c <= '9' {
			digits = true
		}
		if c != '.' {
			dots = false
		}
		if !strings.ContainsRune(numberLike, c) {
			numeric = false
		}
	}
	return dots || (digits && numeric)
}

func writeSymbolName(sb *strings.Builder, name string) {
	if !needsEscape(name) {
		sb.WriteString(name)
		return
	}
	sb.WriteByte('|')
	for _, c := range name {
		if c == '|' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(c)
	}
	sb.WriteByte('|')
}

func renderProxy(p *printer, proxy *values.Proxy) error {
	p.sb.WriteByte('#')
	p.sb.WriteString(strconv.FormatInt(proxy.Handle, 10))
	p.sb.WriteByte('?')
	return nil
}

func renderLabelDef(p *printer, v values.Value) error {
	def := v.(*values.LabelDef)
	p.sb.WriteByte('#')
	p.sb.WriteString(strconv.Itoa(def.Label))
	p.sb.WriteByte('=')
	return p.print(def.Value)
}

func renderLabelRef(p *printer, v values.Value) error {
	p.sb.WriteByte('#')
	p.sb.WriteString(strconv.Itoa(v.(*values.LabelRef).Label))
	p.sb.WriteByte('#')
	return nil
}
