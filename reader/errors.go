package reader

import (
	"errors"
	"fmt"

	"github.com/reusee/clbridge/circularity"
)

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrUnmatchedDelimiter   = errors.New("unmatched delimiter")
	ErrUnexpectedEOF        = errors.New("unexpected end of stream")
	ErrUndefinedMacro       = errors.New("undefined macro character")
	ErrInvalidCharacterName = errors.New("invalid character name")
	ErrMalformedLiteral     = errors.New("malformed literal")
	ErrUndefinedLabel       = circularity.ErrUndefinedLabel
	ErrDottedList           = errors.New("misplaced dot")
	ErrOddMapping           = errors.New("odd number of mapping elements")
	ErrMissingPrefix        = errors.New("missing numeric prefix")
	ErrExtraInput           = errors.New("more than one form")
)

// ParseError is a failure to read well formed text.
type ParseError struct {
	Err error
	Pos Pos
}

func (p ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", p.Err.Error(), p.Pos.Line, p.Pos.Column)
}

func (p ParseError) Unwrap() error {
	return p.Err
}

func parseError(pos Pos, err error) error {
	if err == nil {
		return nil
	}
	var p ParseError
	if errors.As(err, &p) {
		return err
	}
	return ParseError{
		Err: err,
		Pos: pos,
	}
}
