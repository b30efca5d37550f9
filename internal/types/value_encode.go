package types

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/mailru/easyjson/jwriter"
)

// DefaultIndent is the indent composer itself writes manifests with.
const DefaultIndent = "    "

// EncodeIndent renders v one member per line with unescaped slashes and
// unicode, terminated by a newline. Values that still carry their decoded
// encoding are written verbatim.
func EncodeIndent(v Value, indent string) ([]byte, error) {
	if indent == "" {
		indent = DefaultIndent
	}
	w := jwriter.Writer{NoEscapeHTML: true}
	writeIndented(&w, v, indent, 0)
	w.RawByte('\n')
	return w.BuildBytes()
}

func writeIndented(w *jwriter.Writer, v Value, indent string, depth int) {
	if v.raw != nil {
		w.Raw(v.raw, nil)
		return
	}
	switch v.kind {
	case ValueArray:
		if len(v.items) == 0 {
			w.RawString("[]")
			return
		}
		w.RawByte('[')
		for i, item := range v.items {
			if i > 0 {
				w.RawByte(',')
			}
			writeNewline(w, indent, depth+1)
			writeIndented(w, item, indent, depth+1)
		}
		writeNewline(w, indent, depth)
		w.RawByte(']')
	case ValueObject:
		if len(v.members) == 0 {
			w.RawString("{}")
			return
		}
		w.RawByte('{')
		for i, member := range v.members {
			if i > 0 {
				w.RawByte(',')
			}
			writeNewline(w, indent, depth+1)
			w.String(member.Key)
			w.RawString(": ")
			writeIndented(w, member.Value, indent, depth+1)
		}
		writeNewline(w, indent, depth)
		w.RawByte('}')
	default:
		writeScalar(w, v)
	}
}

func writeNewline(w *jwriter.Writer, indent string, depth int) {
	w.RawByte('\n')
	w.RawString(strings.Repeat(indent, depth))
}

// DetectIndent returns the indent unit of a pretty-printed document: the
// leading whitespace of the first indented line. Compact documents get
// DefaultIndent.
func DetectIndent(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || len(trimmed) == len(line) {
			continue
		}
		return line[:len(line)-len(trimmed)]
	}
	return DefaultIndent
}
