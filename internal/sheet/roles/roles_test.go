package roles

import (
	"testing"

	"github.com/louisbranch/pipsheet/internal/sheet/form"
)

func TestResolveBindsScalarsAndGroups(t *testing.T) {
	tree := form.NewTree()
	tree.MustAdd(form.Spec{Name: "strengthStat"})
	tree.MustAdd(form.Spec{Name: "carryMod", Tags: []form.Tag{form.TagCarryModifier}})
	tree.MustAdd(form.Spec{Name: "carryMod", Tags: []form.Tag{form.TagCarryModifier}})
	tree.MustAdd(form.Spec{Name: "maxCarryWeight", Tags: []form.Tag{form.TagCapacityTotal}})
	tree.MustAdd(form.Spec{Name: "weaponWeight1", Tags: []form.Tag{form.TagWeight}})
	tree.MustAdd(form.Spec{Name: "weaponWeight2", Tags: []form.Tag{form.TagWeight}})
	tree.MustAdd(form.Spec{Name: "currentWeight", Tags: []form.Tag{form.TagCurrentWeightTotal}})

	reg := Resolve(tree, DefaultBinding())

	if reg.Field(Strength) == nil {
		t.Fatal("expected strength to resolve")
	}
	if reg.Field(Luck) != nil {
		t.Fatal("expected luck to be unbound")
	}
	if len(reg.CarryModifiers) != 2 || len(reg.WeightItems) != 2 {
		t.Fatalf("groups = %d modifiers, %d weights", len(reg.CarryModifiers), len(reg.WeightItems))
	}
	if len(reg.CapacityTotals) != 1 || len(reg.CurrentWeightTotals) != 1 {
		t.Fatalf("totals = %d capacity, %d current", len(reg.CapacityTotals), len(reg.CurrentWeightTotals))
	}
	if !reg.IsModifier(reg.CarryModifiers[1]) || reg.IsModifier(reg.Field(Strength)) {
		t.Fatal("IsModifier misclassified a field")
	}
}

func TestRegistryTextAndSetSkipUnbound(t *testing.T) {
	tree := form.NewTree()
	tree.MustAdd(form.Spec{Name: "maxHP"})
	reg := Resolve(tree, DefaultBinding())

	if !reg.Set(MaxHP, "12") {
		t.Fatal("expected bound role to be written")
	}
	if got := reg.Text(MaxHP); got != "12" {
		t.Fatalf("max hp text = %q, want 12", got)
	}
	if reg.Set(Defense, "2") {
		t.Fatal("expected unbound role write to be skipped")
	}
	if got := reg.Text(Defense); got != "" {
		t.Fatalf("unbound text = %q, want empty", got)
	}
}

func TestMissingListsUnboundRolesSorted(t *testing.T) {
	tree := form.NewTree()
	tree.MustAdd(form.Spec{Name: "a"})
	binding := Binding{Fields: map[Role]string{Strength: "a", Luck: "nope", Agility: "gone"}}

	missing := Resolve(tree, binding).Missing(binding)
	if len(missing) != 2 || missing[0] != Agility || missing[1] != Luck {
		t.Fatalf("missing = %v, want [agility luck]", missing)
	}
}

func TestNilRegistryIsSafe(t *testing.T) {
	var reg *Registry
	if reg.Field(Strength) != nil || reg.Text(Strength) != "" {
		t.Fatal("nil registry should resolve nothing")
	}
}
