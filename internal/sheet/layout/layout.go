package layout

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/sheet/form"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// FieldDef declares one input.
type FieldDef struct {
	Name    string   `yaml:"name"`
	Label   string   `yaml:"label"`
	Kind    string   `yaml:"kind"`
	Tags    []string `yaml:"tags"`
	Default string   `yaml:"default"`
}

// Section groups fields under a heading.
type Section struct {
	Name   string     `yaml:"name"`
	Label  string     `yaml:"label"`
	Fields []FieldDef `yaml:"fields"`
}

// Document is a whole sheet layout.
type Document struct {
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

// Default returns the embedded Pip-Boy sheet.
func Default() Document {
	doc, err := Load(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded layout: %v", err))
	}
	return doc
}

// LoadFile reads a layout from path.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	doc, err := Load(f)
	if err != nil {
		return Document{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return doc, nil
}

// Load decodes and validates a layout. Unknown keys are rejected so typos
// in hand-written layouts surface early.
func Load(r io.Reader) (Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, apperrors.New(apperrors.CodeLayoutInvalid, "layout is empty")
		}
		return Document{}, apperrors.Wrap(apperrors.CodeLayoutInvalid, "decode layout", err)
	}
	if _, err := doc.Build(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Fields lists every field definition in document order.
func (d Document) Fields() []FieldDef {
	var out []FieldDef
	for _, section := range d.Sections {
		out = append(out, section.Fields...)
	}
	return out
}

// Label returns the label of the first field named name, or the name itself.
func (d Document) Label(name string) string {
	for _, section := range d.Sections {
		for _, def := range section.Fields {
			if def.Name == name && def.Label != "" {
				return def.Label
			}
		}
	}
	return name
}

// Build creates a fresh form tree holding every field of the document.
func (d Document) Build() (*form.Tree, error) {
	tree := form.NewTree()
	count := 0
	for i, section := range d.Sections {
		for j, def := range section.Fields {
			where := fmt.Sprintf("sections[%d].fields[%d]", i, j)
			if strings.TrimSpace(def.Name) == "" {
				return nil, invalid(where, "name is required", nil)
			}
			kind, ok := form.ParseKind(def.Kind)
			if !ok {
				return nil, invalid(where, fmt.Sprintf("unknown kind %q", def.Kind), nil)
			}
			tags := make([]form.Tag, 0, len(def.Tags))
			for _, tag := range def.Tags {
				tags = append(tags, form.Tag(strings.ToLower(strings.TrimSpace(tag))))
			}
			if _, err := tree.Add(form.Spec{Name: def.Name, Kind: kind, Tags: tags, Default: def.Default}); err != nil {
				return nil, invalid(where, "add field", err)
			}
			count++
		}
	}
	if count == 0 {
		return nil, apperrors.New(apperrors.CodeLayoutInvalid, "layout has no fields")
	}
	return tree, nil
}

func invalid(where, message string, cause error) error {
	err := apperrors.WithMetadata(apperrors.CodeLayoutInvalid, where+": "+message, map[string]string{"Path": where})
	err.Cause = cause
	return err
}
