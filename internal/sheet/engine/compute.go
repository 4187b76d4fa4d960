package engine

import (
	"github.com/louisbranch/pipsheet/internal/sheet/form"
	"github.com/louisbranch/pipsheet/internal/sheet/roles"
	"github.com/louisbranch/pipsheet/internal/sheet/stats"
)

// Recompute refreshes every derived field from the current primaries.
func (e *Engine) Recompute() {
	e.UpdateMaxCarryWeight()
	e.CurrentCarryWeight()
	e.UpdateMeleeDamage()
	e.UpdateDerivedStats()
	e.UpdateLevel()
}

// SyncModifiers copies source's value into every other carry-modifier field,
// then refreshes capacity and current weight. Calls made while a sync is
// already propagating are dropped.
func (e *Engine) SyncModifiers(source *form.Field) {
	release, ok := e.syncing.enter()
	if !ok {
		return
	}
	value := source.Value()
	for _, member := range e.reg.CarryModifiers {
		if member != source {
			member.SetValue(value)
		}
	}
	release()

	e.UpdateMaxCarryWeight()
	e.CurrentCarryWeight()
}

// carryModifier reads the group value from its first member.
func (e *Engine) carryModifier() int {
	if len(e.reg.CarryModifiers) == 0 {
		return 0
	}
	return stats.Int(e.reg.CarryModifiers[0].Value())
}

// UpdateMaxCarryWeight writes the carry capacity to every capacity display
// and returns it.
func (e *Engine) UpdateMaxCarryWeight() int {
	capacity := stats.CarryCapacity(e.carryModifier(), stats.Int(e.reg.Text(roles.Strength)))
	text := stats.FormatInt(capacity)
	for _, field := range e.reg.CapacityTotals {
		field.SetValue(text)
	}
	return capacity
}

// CurrentCarryWeight sums item weights, writes the total to every current
// weight display and returns it.
func (e *Engine) CurrentCarryWeight() float64 {
	values := make([]string, 0, len(e.reg.WeightItems))
	for _, item := range e.reg.WeightItems {
		values = append(values, item.Value())
	}
	total := stats.CarryWeight(values)
	text := stats.Format(total)
	for _, field := range e.reg.CurrentWeightTotals {
		field.SetValue(text)
	}
	return total
}

// UpdateMeleeDamage writes the melee damage bonus for the current strength.
func (e *Engine) UpdateMeleeDamage() int {
	damage := stats.MeleeDamage(stats.Int(e.reg.Text(roles.Strength)))
	e.reg.Set(roles.MeleeDamage, stats.FormatInt(damage))
	return damage
}

// UpdateDerivedStats writes max HP, luck points, defense and initiative.
func (e *Engine) UpdateDerivedStats() {
	endurance := stats.Float(e.reg.Text(roles.Endurance))
	luck := stats.Float(e.reg.Text(roles.Luck))
	agility := stats.Float(e.reg.Text(roles.Agility))
	perception := stats.Float(e.reg.Text(roles.Perception))

	e.reg.Set(roles.MaxHP, stats.Format(stats.MaxHP(endurance, luck)))
	e.reg.Set(roles.LuckPoints, stats.Format(stats.LuckPoints(luck)))
	e.reg.Set(roles.Defense, stats.FormatInt(stats.Defense(agility)))
	e.reg.Set(roles.Initiative, stats.Format(stats.Initiative(agility, perception)))
}

// UpdateLevel advances the stored level while earned XP allows and writes
// the new level and the XP needed for the next one.
func (e *Engine) UpdateLevel() (level, xpToNext int) {
	level = stats.Int(e.reg.Text(roles.Level))
	if level == 0 {
		level = 1
	}
	level, xpToNext = stats.AdvanceLevel(level, stats.Int(e.reg.Text(roles.EarnedXP)))
	e.reg.Set(roles.Level, stats.FormatInt(level))
	e.reg.Set(roles.XPToNext, stats.FormatInt(xpToNext))
	return level, xpToNext
}

// Sheet reads the current primaries into a stats.Sheet.
func (e *Engine) Sheet() stats.Sheet {
	weights := make([]string, 0, len(e.reg.WeightItems))
	for _, item := range e.reg.WeightItems {
		weights = append(weights, item.Value())
	}
	level := stats.Int(e.reg.Text(roles.Level))
	if level == 0 {
		level = 1
	}
	return stats.Sheet{
		Strength:      stats.Int(e.reg.Text(roles.Strength)),
		CarryModifier: e.carryModifier(),
		Endurance:     stats.Float(e.reg.Text(roles.Endurance)),
		Luck:          stats.Float(e.reg.Text(roles.Luck)),
		Agility:       stats.Float(e.reg.Text(roles.Agility)),
		Perception:    stats.Float(e.reg.Text(roles.Perception)),
		Level:         level,
		EarnedXP:      stats.Int(e.reg.Text(roles.EarnedXP)),
		ItemWeights:   weights,
	}
}

// Derived computes every derived stat without writing to the form.
func (e *Engine) Derived() stats.Derived {
	return stats.Derive(e.Sheet())
}
