package nav

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Node is the serialized form of an item.
type Node struct {
	NameDE string `json:"name_de" yaml:"name_de"`
	NameEN string `json:"name_en" yaml:"name_en"`
	Link   string `json:"link"    yaml:"link"`
	Hidden bool   `json:"hidden"  yaml:"hidden"`
	Items  []Node `json:"items"   yaml:"items"`
}

// Structure converts items and their descendants into nodes. The Items of
// every node are non-nil so that leaves serialize as empty arrays.
func Structure(items Items) []Node {
	nodes := make([]Node, 0, len(items))

	for _, it := range items {
		nodes = append(nodes, Node{
			NameDE: it.NameDE,
			NameEN: it.NameEN,
			Link:   it.Link,
			Hidden: it.Hidden,
			Items:  Structure(it.Children),
		})
	}

	return nodes
}

// MarshalStructure returns the compact JSON array describing items.
func MarshalStructure(items Items) ([]byte, error) {
	return marshalJSON(Structure(items), 0)
}

// EscapeQuotes prefixes every double quote in data with a backslash.
// Existing backslashes are left alone.
func EscapeQuotes(data []byte) []byte {
	return bytes.ReplaceAll(data, []byte{'"'}, []byte{'\\', '"'})
}

// WriteStructure writes the structure of items to w. Unless plain is set,
// the JSON text is passed through [EscapeQuotes].
func WriteStructure(w io.Writer, items Items, plain bool) error {
	data, err := MarshalStructure(items)
	if err != nil {
		return ErrWriteStructure.Wrap(err)
	}

	if !plain {
		data = EscapeQuotes(data)
	}

	if _, err := w.Write(data); err != nil {
		return ErrWriteStructure.Wrap(err)
	}

	return nil
}

// WriteStructureFile writes the structure of items to the file at name.
// The content is written to a temporary file in the same directory and
// renamed into place, so name is either fully replaced or left untouched.
func WriteStructureFile(name string, items Items, plain bool) (err error) {
	attr := slog.String("path", name)

	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return ErrWriteStructure.Wrap(err).With(attr)
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = WriteStructure(f, items, plain); err != nil {
		return WrapError(err).With(attr)
	}

	if err = f.Chmod(0o644); err != nil { //nolint:gosec // public artifact
		return ErrWriteStructure.Wrap(err).With(attr)
	}

	if err = f.Close(); err != nil {
		return ErrWriteStructure.Wrap(err).With(attr)
	}

	if err = os.Rename(f.Name(), name); err != nil {
		return ErrWriteStructure.Wrap(err).With(attr)
	}

	return nil
}

// FormatJSON writes the structure of items as plain JSON to the writer.
func FormatJSON(_ context.Context, w io.Writer, items Items, indent int) error {
	data, err := marshalJSON(Structure(items), indent)
	if err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))

	return err
}

// FormatYAML writes the structure of items as YAML to the writer.
func FormatYAML(ctx context.Context, w io.Writer, items Items, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, Structure(items), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func marshalJSON(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
