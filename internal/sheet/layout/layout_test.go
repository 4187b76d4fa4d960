package layout

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/sheet/form"
	"github.com/louisbranch/pipsheet/internal/sheet/roles"
)

func TestDefaultResolvesEveryRole(t *testing.T) {
	doc := Default()
	tree, err := doc.Build()
	if err != nil {
		t.Fatalf("build default layout: %v", err)
	}
	binding := roles.DefaultBinding()
	reg := roles.Resolve(tree, binding)
	if missing := reg.Missing(binding); len(missing) != 0 {
		t.Fatalf("missing roles = %v, want none", missing)
	}
	if got := len(reg.CarryModifiers); got != 2 {
		t.Fatalf("carry modifiers = %d, want 2", got)
	}
	if got := len(reg.CapacityTotals); got != 2 {
		t.Fatalf("capacity totals = %d, want 2", got)
	}
	if got := len(reg.CurrentWeightTotals); got != 2 {
		t.Fatalf("current weight totals = %d, want 2", got)
	}
	if got := len(reg.WeightItems); got != 8 {
		t.Fatalf("weight items = %d, want 8", got)
	}
}

func TestDefaultFieldKindsAndDefaults(t *testing.T) {
	tree, err := Default().Build()
	if err != nil {
		t.Fatalf("build default layout: %v", err)
	}
	if got := tree.First("perkToughness").Kind(); got != form.KindCheckbox {
		t.Fatalf("perk kind = %q, want checkbox", got)
	}
	for _, member := range tree.Named("carryWeightMod") {
		if member.Value() != "0" {
			t.Fatalf("modifier default = %q, want 0", member.Value())
		}
	}
	if !tree.First("notes").HasTag(form.TagTooltip) {
		t.Fatal("expected notes to carry tooltip tag")
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	first := Default()
	first.Sections[0].Fields[0].Name = "changed"
	if got := Default().Sections[0].Fields[0].Name; got != "strengthStat" {
		t.Fatalf("first field = %q, want strengthStat", got)
	}
}

func TestLabel(t *testing.T) {
	doc := Default()
	if got := doc.Label("maxHP"); got != "Max HP" {
		t.Fatalf("label = %q, want Max HP", got)
	}
	if got := doc.Label("nope"); got != "nope" {
		t.Fatalf("label = %q, want name fallback", got)
	}
}

func TestLoadRejectsInvalidLayouts(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty", yaml: ""},
		{name: "no fields", yaml: "title: x\nsections: []\n"},
		{name: "blank name", yaml: "sections:\n  - fields:\n      - {name: \" \"}\n"},
		{name: "unknown kind", yaml: "sections:\n  - fields:\n      - {name: a, kind: slider}\n"},
		{name: "duplicate", yaml: "sections:\n  - fields:\n      - {name: a}\n      - {name: a}\n"},
		{name: "unknown key", yaml: "sections:\n  - fields:\n      - {name: a, colour: red}\n"},
		{name: "not yaml", yaml: "sections: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperrors.CodeOf(err); code != apperrors.CodeLayoutInvalid {
				t.Fatalf("code = %s, want %s", code, apperrors.CodeLayoutInvalid)
			}
		})
	}
}

func TestLoadAllowsMirroredModifiers(t *testing.T) {
	doc, err := Load(strings.NewReader(`sections:
  - fields:
      - {name: mod, tags: [carry-modifier]}
      - {name: mod, tags: [Carry-Modifier]}
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tree, err := doc.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := len(tree.Named("mod")); got != 2 {
		t.Fatalf("mirrors = %d, want 2", got)
	}
}

func TestBuildErrorCarriesPath(t *testing.T) {
	doc := Document{Sections: []Section{{Fields: []FieldDef{{Name: "a"}, {Name: "b", Kind: "dial"}}}}}
	_, err := doc.Build()
	if got := apperrors.MetadataOf(err)["Path"]; got != "sections[0].fields[1]" {
		t.Fatalf("path = %q, want sections[0].fields[1]", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	if err := os.WriteFile(path, []byte("title: Mini\nsections:\n  - fields:\n      - {name: strengthStat}\n"), 0o600); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if doc.Title != "Mini" || len(doc.Fields()) != 1 {
		t.Fatalf("doc = %+v, want one field titled Mini", doc)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not exist", err)
	}
}
