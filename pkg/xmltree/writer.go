package xmltree

import (
	"bufio"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Declaration is written ahead of the root element.
const Declaration = "<?xml version='1.0' encoding='utf-8'?>"

// ErrEmptyName is returned when a node has no element name.
var ErrEmptyName = errors.New("xmltree: element name is empty")

// Option configures a Writer.
type Option func(*Writer)

// WithEscaping toggles XML escaping of text content. Off by default.
func WithEscaping(escape bool) Option {
	return func(w *Writer) {
		w.escape = escape
	}
}

// WithIndent overrides the per-level indent (two spaces by default).
func WithIndent(indent string) Option {
	return func(w *Writer) {
		w.indent = indent
	}
}

// WithoutDeclaration omits the XML declaration line.
func WithoutDeclaration() Option {
	return func(w *Writer) {
		w.declaration = false
	}
}

// Writer serializes node trees, one element per line.
type Writer struct {
	escape      bool
	indent      string
	declaration bool
}

// NewWriter returns a Writer with legacy defaults: declaration on, two-space
// indent, text written verbatim.
func NewWriter(options ...Option) *Writer {
	w := &Writer{
		indent:      "  ",
		declaration: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Encode writes root to out.
func (w *Writer) Encode(out io.Writer, root Node) error {
	buf := bufio.NewWriter(out)
	if w.declaration {
		if _, err := buf.WriteString(Declaration + "\n"); err != nil {
			return err
		}
	}
	if err := w.writeNode(buf, root, 0); err != nil {
		return err
	}
	return buf.Flush()
}

// String renders root into a string.
func (w *Writer) String(root Node) (string, error) {
	var sb strings.Builder
	if err := w.Encode(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (w *Writer) writeNode(buf *bufio.Writer, node Node, depth int) error {
	if strings.TrimSpace(node.Name) == "" {
		return ErrEmptyName
	}
	prefix := strings.Repeat(w.indent, depth)

	buf.WriteString(prefix)
	buf.WriteString("<" + node.Name + ">")
	if err := w.writeText(buf, node.Text); err != nil {
		return err
	}

	if len(node.Children) == 0 {
		buf.WriteString("</" + node.Name + ">\n")
		return nil
	}

	buf.WriteString("\n")
	for _, child := range node.Children {
		if err := w.writeNode(buf, child, depth+1); err != nil {
			return err
		}
	}
	buf.WriteString(prefix)
	_, err := buf.WriteString("</" + node.Name + ">\n")
	return err
}

func (w *Writer) writeText(buf *bufio.Writer, text string) error {
	if text == "" {
		return nil
	}
	if !w.escape {
		_, err := buf.WriteString(text)
		return err
	}
	return xml.EscapeText(buf, []byte(text))
}
