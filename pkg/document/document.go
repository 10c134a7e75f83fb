package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/errors"
)

// Default canvas size used when a document leaves width or height unset.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Syntax names a document encoding.
type Syntax string

// Supported document encodings.
const (
	SyntaxTOML Syntax = "toml"
	SyntaxYAML Syntax = "yaml"
	SyntaxJSON Syntax = "json"
)

// Document is a declarative drawing: a canvas size and the operations to
// replay onto it, in order.
type Document struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
	Ops    []Op    `json:"ops" yaml:"ops" toml:"ops"`
}

// Op is a single drawing or transform operation.
//
// Shape ops (line, rect, circle, text, path, ring) read Attrs. Transform ops
// (translate, rotate, scale) read Args; the generic "transform" op also reads
// Attrs["kind"]. save and restore take no arguments.
type Op struct {
	Op    string         `json:"op" yaml:"op" toml:"op"`
	Args  []float64      `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	Attrs map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs,omitempty"`
}

// ParseSyntax resolves a syntax name or file extension ("yml", ".toml").
func ParseSyntax(s string) (Syntax, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml":
		return SyntaxTOML, nil
	case "yaml", "yml":
		return SyntaxYAML, nil
	case "json", "":
		return SyntaxJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidSyntax, "unsupported document syntax: %s (must be 'toml', 'yaml', or 'json')", s)
	}
}

// Load reads and decodes the document at path, choosing the syntax from the
// file extension.
func Load(path string) (*Document, error) {
	syntax, err := ParseSyntax(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, syntax)
}

// Decode reads a whole document from r.
func Decode(r io.Reader, syntax Syntax) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Parse(data, syntax)
}

// Parse decodes data in the given syntax and fills in the default canvas size.
func Parse(data []byte, syntax Syntax) (*Document, error) {
	var doc Document
	var err error
	switch syntax {
	case SyntaxTOML:
		err = toml.Unmarshal(data, &doc)
	case SyntaxYAML:
		err = yaml.Unmarshal(data, &doc)
	case SyntaxJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidSyntax, "unsupported document syntax: %s", syntax)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s document", syntax)
	}

	if doc.Width == 0 {
		doc.Width = DefaultWidth
	}
	if doc.Height == 0 {
		doc.Height = DefaultHeight
	}
	if err := errors.ValidateCanvas(doc.Width, doc.Height); err != nil {
		return nil, err
	}
	return &doc, nil
}
