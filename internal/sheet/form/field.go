package form

import "strings"

// Kind distinguishes text inputs from toggles.
type Kind string

const (
	// KindText holds free or numeric text.
	KindText Kind = "text"
	// KindCheckbox holds a checked state.
	KindCheckbox Kind = "checkbox"
)

// ParseKind normalizes a kind label; blank means text.
func ParseKind(label string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "text", "number", "textarea":
		return KindText, true
	case "checkbox", "toggle":
		return KindCheckbox, true
	default:
		return "", false
	}
}

// Tag classifies a field for role resolution.
type Tag string

const (
	// TagWeight marks an item weight summed into current carry weight.
	TagWeight Tag = "weight"
	// TagCurrentWeightTotal marks a display of the current carry weight.
	TagCurrentWeightTotal Tag = "current-weight-total"
	// TagCapacityTotal marks a display of max carry capacity. Never persisted.
	TagCapacityTotal Tag = "capacity-total"
	// TagCarryModifier marks a mirrored carry-weight modifier input.
	TagCarryModifier Tag = "carry-modifier"
	// TagTooltip keeps the field title equal to its value.
	TagTooltip Tag = "tooltip"
	// TagExclude keeps a field out of saved snapshots.
	TagExclude Tag = "exclude"
)

// Spec declares one field to add to a tree.
type Spec struct {
	Name    string
	Kind    Kind
	Tags    []Tag
	Default string
}

// Field is one live input slot.
type Field struct {
	tree    *Tree
	name    string
	kind    Kind
	tags    map[Tag]struct{}
	def     string
	value   string
	checked bool
	title   string
}

// Name returns the field's identifier.
func (f *Field) Name() string { return f.name }

// Kind returns the field kind.
func (f *Field) Kind() Kind { return f.kind }

// Default returns the markup default text value.
func (f *Field) Default() string { return f.def }

// Title returns the tooltip text.
func (f *Field) Title() string { return f.title }

// HasTag reports whether the field carries tag.
func (f *Field) HasTag(tag Tag) bool {
	_, ok := f.tags[tag]
	return ok
}

// Value returns the text value. Checkbox fields report "" here.
func (f *Field) Value() string { return f.value }

// Checked returns the toggle state. Text fields are never checked.
func (f *Field) Checked() bool { return f.checked }

// SetValue writes text and notifies subscribers when it changed.
// Checkbox fields ignore text writes.
func (f *Field) SetValue(value string) {
	if f.kind == KindCheckbox || f.value == value {
		return
	}
	f.value = value
	if f.HasTag(TagTooltip) {
		f.title = value
	}
	f.tree.notify(f)
}

// SetChecked writes the toggle state and notifies subscribers when it changed.
func (f *Field) SetChecked(checked bool) {
	if f.kind != KindCheckbox || f.checked == checked {
		return
	}
	f.checked = checked
	f.tree.notify(f)
}
