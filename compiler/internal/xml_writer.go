package internal

import (
	"encoding/xml"
	"io"
)

// WriteXml serializes program to w as an indented xml document.
func WriteXml(w io.Writer, program *ProgramAst, indent string) error {
	_, err := io.WriteString(w, xml.Header)
	if err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", indent)
	err = encoder.Encode(program)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
