package main

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/clbridge/reader"
	"github.com/reusee/clbridge/sessions"
	"github.com/reusee/clbridge/values"
	"github.com/reusee/clbridge/writer"
)

func printValues(w io.Writer, rets []values.Value) error {
	for _, v := range rets {
		text, err := writer.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

func evalPrint(ctx context.Context, session *sessions.Session, src string, w io.Writer) error {
	form, err := session.ReadString(src)
	if err != nil {
		return err
	}
	rets, err := session.EvalValues(ctx, form)
	if err != nil {
		return err
	}
	return printValues(w, rets)
}

// evalStream evaluates every form of r in order and stops at the first
// failure.
func evalStream(ctx context.Context, session *sessions.Session, r io.Reader, w io.Writer) error {
	stream := reader.NewStream(r)
	for {
		form, err := session.Readtable().Read(stream)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		rets, err := session.EvalValues(ctx, form)
		if err != nil {
			return err
		}
		if err := printValues(w, rets); err != nil {
			return err
		}
	}
}
