package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Handler receives markup events in document order. Returning an error stops
// the stream.
type Handler interface {
	StartElement(name string, attrs map[string]string) error
	EndElement(name string) error
	CharData(text string) error
	ProcInst(target, data string) error
}

// Stream tokenizes r and pushes every event to h. Errors from h and from the
// tokenizer are returned as *Error carrying the position of the event that
// caused them. Empty elements produce a start event immediately followed by
// an end event.
func Stream(file string, r io.Reader, h Handler) error {
	dec := xml.NewDecoder(r)

	for {
		line, col := dec.InputPos()
		pos := Position{File: file, Line: line, Column: col}

		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				_, col := dec.InputPos()
				return &Error{
					Pos: Position{File: file, Line: se.Line, Column: col},
					Err: fmt.Errorf("%w: %s", ErrSyntax, se.Msg),
				}
			}
			return &Error{Pos: pos, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Name.Local] = a.Value
			}
			err = h.StartElement(t.Name.Local, attrs)
		case xml.EndElement:
			err = h.EndElement(t.Name.Local)
		case xml.CharData:
			err = h.CharData(string(t))
		case xml.ProcInst:
			err = h.ProcInst(t.Target, string(t.Inst))
		}

		if err != nil {
			var pe *Error
			if errors.As(err, &pe) {
				return pe
			}
			return &Error{Pos: pos, Err: err}
		}
	}
}
