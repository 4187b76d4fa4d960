package form

import (
	"fmt"
	"strings"
)

// Handler receives the field whose value just changed.
type Handler func(*Field)

type subscription struct {
	id      int
	field   *Field
	tag     Tag
	handler Handler
}

// Tree is an ordered set of fields with change subscriptions.
type Tree struct {
	fields []*Field
	byName map[string][]*Field
	subs   []subscription
	nextID int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{byName: map[string][]*Field{}}
}

// Add appends a field. A name may repeat only between carry-modifier
// fields, which mirror one logical value.
func (t *Tree) Add(spec Spec) (*Field, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, fmt.Errorf("field name is required")
	}
	kind := spec.Kind
	if kind == "" {
		kind = KindText
	}
	if kind != KindText && kind != KindCheckbox {
		return nil, fmt.Errorf("field %s: unknown kind %q", name, kind)
	}
	field := &Field{
		tree: t,
		name: name,
		kind: kind,
		tags: make(map[Tag]struct{}, len(spec.Tags)),
		def:  spec.Default,
	}
	for _, tag := range spec.Tags {
		if tag = Tag(strings.TrimSpace(string(tag))); tag != "" {
			field.tags[tag] = struct{}{}
		}
	}
	if existing := t.byName[name]; len(existing) > 0 {
		if !field.HasTag(TagCarryModifier) || !existing[0].HasTag(TagCarryModifier) {
			return nil, fmt.Errorf("field %s: duplicate name", name)
		}
	}
	if kind == KindText {
		field.value = spec.Default
		if field.HasTag(TagTooltip) {
			field.title = spec.Default
		}
	}
	t.fields = append(t.fields, field)
	t.byName[name] = append(t.byName[name], field)
	return field, nil
}

// MustAdd is Add for static layouts; it panics on an invalid spec.
func (t *Tree) MustAdd(spec Spec) *Field {
	field, err := t.Add(spec)
	if err != nil {
		panic(err)
	}
	return field
}

// Fields returns every field in document order.
func (t *Tree) Fields() []*Field {
	out := make([]*Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Named returns every field carrying name, in document order.
func (t *Tree) Named(name string) []*Field {
	found := t.byName[strings.TrimSpace(name)]
	out := make([]*Field, len(found))
	copy(out, found)
	return out
}

// First returns the first field carrying name, or nil.
func (t *Tree) First(name string) *Field {
	if found := t.byName[strings.TrimSpace(name)]; len(found) > 0 {
		return found[0]
	}
	return nil
}

// Names returns the distinct field names in document order.
func (t *Tree) Names() []string {
	out := make([]string, 0, len(t.byName))
	seen := make(map[string]bool, len(t.byName))
	for _, field := range t.fields {
		if !seen[field.name] {
			seen[field.name] = true
			out = append(out, field.name)
		}
	}
	return out
}

// Tagged returns every field carrying tag, in document order.
func (t *Tree) Tagged(tag Tag) []*Field {
	var out []*Field
	for _, field := range t.fields {
		if field.HasTag(tag) {
			out = append(out, field)
		}
	}
	return out
}

// Subscribe registers handler for changes to one field.
func (t *Tree) Subscribe(field *Field, handler Handler) (unsubscribe func()) {
	if field == nil || handler == nil {
		return func() {}
	}
	return t.subscribe(subscription{field: field, handler: handler})
}

// SubscribeTag registers handler for changes to any field carrying tag,
// including fields added later.
func (t *Tree) SubscribeTag(tag Tag, handler Handler) (unsubscribe func()) {
	if tag == "" || handler == nil {
		return func() {}
	}
	return t.subscribe(subscription{tag: tag, handler: handler})
}

func (t *Tree) subscribe(sub subscription) func() {
	t.nextID++
	sub.id = t.nextID
	t.subs = append(t.subs, sub)
	return func() {
		for i, existing := range t.subs {
			if existing.id == sub.id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

// notify runs matching handlers synchronously in registration order.
func (t *Tree) notify(field *Field) {
	if len(t.subs) == 0 {
		return
	}
	subs := make([]subscription, len(t.subs))
	copy(subs, t.subs)
	for _, sub := range subs {
		switch {
		case sub.field != nil && sub.field == field:
			sub.handler(field)
		case sub.tag != "" && field.HasTag(sub.tag):
			sub.handler(field)
		}
	}
}
