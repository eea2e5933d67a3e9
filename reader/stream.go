package reader

import (
	"bufio"
	"io"
)

type Pos struct {
	Line   int
	Column int
}

// Stream is a character source with one character of pushback.
type Stream struct {
	source  io.RuneScanner
	currPos Pos
	prevPos Pos
}

func NewStream(r io.Reader) *Stream {
	source, ok := r.(io.RuneScanner)
	if !ok {
		source = bufio.NewReader(r)
	}
	return &Stream{
		source: source,
		currPos: Pos{
			Line:   1,
			Column: 1,
		},
	}
}

func (s *Stream) ReadRune() (rune, error) {
	r, _, err := s.source.ReadRune()
	if err != nil {
		return 0, err
	}
	s.prevPos = s.currPos
	if r == '\n' {
		s.currPos.Line++
		s.currPos.Column = 1
	} else {
		s.currPos.Column++
	}
	return r, nil
}

func (s *Stream) UnreadRune() error {
	if err := s.source.UnreadRune(); err != nil {
		return err
	}
	s.currPos = s.prevPos
	return nil
}

func (s *Stream) Pos() Pos {
	return s.currPos
}

// readRequired reads one character; end of stream is a parse error.
func (s *Stream) readRequired() (rune, error) {
	r, err := s.ReadRune()
	if err == io.EOF {
		return 0, ParseError{
			Err: ErrUnexpectedEOF,
			Pos: s.currPos,
		}
	}
	return r, err
}
