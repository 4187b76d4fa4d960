// Package roles binds semantic sheet roles to concrete form fields once, so
// computation code never searches the tree by name or tag.
package roles

import (
	"sort"

	"github.com/louisbranch/pipsheet/internal/sheet/form"
)

// Role names one scalar slot of the sheet.
type Role string

const (
	Strength    Role = "strength"
	Endurance   Role = "endurance"
	Luck        Role = "luck"
	Agility     Role = "agility"
	Perception  Role = "perception"
	EarnedXP    Role = "earned-xp"
	Level       Role = "level"
	XPToNext    Role = "xp-to-next"
	MeleeDamage Role = "melee-damage"
	MaxHP       Role = "max-hp"
	LuckPoints  Role = "luck-points"
	Defense     Role = "defense"
	Initiative  Role = "initiative"
)

// Binding maps roles to field names and groups to tags.
type Binding struct {
	Fields map[Role]string

	CarryModifierTag      form.Tag
	CapacityTotalTag      form.Tag
	WeightTag             form.Tag
	CurrentWeightTotalTag form.Tag
}

// DefaultBinding returns the field names used by the Pip-Boy sheet markup.
func DefaultBinding() Binding {
	return Binding{
		Fields: map[Role]string{
			Strength:    "strengthStat",
			Endurance:   "enduranceStat",
			Luck:        "luckStat",
			Agility:     "agilityStat",
			Perception:  "perceptionStat",
			EarnedXP:    "xpEarned",
			Level:       "charLevel",
			XPToNext:    "xpToNext",
			MeleeDamage: "meleeDamageValue",
			MaxHP:       "maxHP",
			LuckPoints:  "luckPoints",
			Defense:     "defenseValue",
			Initiative:  "initiativeValue",
		},
		CarryModifierTag:      form.TagCarryModifier,
		CapacityTotalTag:      form.TagCapacityTotal,
		WeightTag:             form.TagWeight,
		CurrentWeightTotalTag: form.TagCurrentWeightTotal,
	}
}

// Registry holds resolved field handles. A nil scalar handle means the
// markup has no such field; computations writing to it are skipped.
type Registry struct {
	scalars map[Role]*form.Field

	CarryModifiers      []*form.Field
	CapacityTotals      []*form.Field
	WeightItems         []*form.Field
	CurrentWeightTotals []*form.Field
}

// Resolve builds a Registry from tree.
func Resolve(tree *form.Tree, binding Binding) *Registry {
	reg := &Registry{scalars: make(map[Role]*form.Field, len(binding.Fields))}
	for role, name := range binding.Fields {
		if field := tree.First(name); field != nil {
			reg.scalars[role] = field
		}
	}
	reg.CarryModifiers = tree.Tagged(binding.CarryModifierTag)
	reg.CapacityTotals = tree.Tagged(binding.CapacityTotalTag)
	reg.WeightItems = tree.Tagged(binding.WeightTag)
	reg.CurrentWeightTotals = tree.Tagged(binding.CurrentWeightTotalTag)
	return reg
}

// Field returns the handle for role, or nil.
func (r *Registry) Field(role Role) *form.Field {
	if r == nil {
		return nil
	}
	return r.scalars[role]
}

// Text returns the current text of role, or "" when unbound.
func (r *Registry) Text(role Role) string {
	if field := r.Field(role); field != nil {
		return field.Value()
	}
	return ""
}

// Set writes value to role when it is bound.
func (r *Registry) Set(role Role, value string) bool {
	field := r.Field(role)
	if field == nil {
		return false
	}
	field.SetValue(value)
	return true
}

// IsModifier reports whether field belongs to the carry-modifier group.
func (r *Registry) IsModifier(field *form.Field) bool {
	for _, member := range r.CarryModifiers {
		if member == field {
			return true
		}
	}
	return false
}

// Missing lists scalar roles of binding that found no field, sorted.
func (r *Registry) Missing(binding Binding) []Role {
	var out []Role
	for role := range binding.Fields {
		if r.Field(role) == nil {
			out = append(out, role)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
