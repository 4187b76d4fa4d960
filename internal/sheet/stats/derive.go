package stats

import "math"

const (
	// BaseCarryCapacity is the carry capacity of a zero-strength character.
	BaseCarryCapacity = 150
	// CarryPerStrength is the capacity each strength point adds.
	CarryPerStrength = 10
)

// CarryCapacity returns modifier + 150 + 10 × strength.
func CarryCapacity(modifier, strength int) int {
	return modifier + BaseCarryCapacity + CarryPerStrength*strength
}

// CarryWeight sums item weights, counting unreadable entries as 0.
func CarryWeight(values []string) float64 {
	total := 0.0
	for _, value := range values {
		total += Float(value)
	}
	return total
}

// MeleeDamage returns the melee damage bonus for a strength score.
func MeleeDamage(strength int) int {
	switch {
	case strength >= 11:
		return 3
	case strength >= 9:
		return 2
	case strength >= 7:
		return 1
	default:
		return 0
	}
}

// MaxHP returns endurance + luck.
func MaxHP(endurance, luck float64) float64 {
	return endurance + luck
}

// LuckPoints returns floor(luck / 2).
func LuckPoints(luck float64) float64 {
	return math.Floor(luck / 2)
}

// Defense returns the defense value for an agility score: 1 for [1,8],
// 2 from 9, 0 otherwise. Fractions between 8 and 9 fall in neither band.
func Defense(agility float64) int {
	switch {
	case agility >= 9:
		return 2
	case agility >= 1 && agility <= 8:
		return 1
	default:
		return 0
	}
}

// Initiative returns agility + perception.
func Initiative(agility, perception float64) float64 {
	return agility + perception
}

// Sheet carries every primary input of the derived stats, already coerced.
type Sheet struct {
	Strength      int
	CarryModifier int
	Endurance     float64
	Luck          float64
	Agility       float64
	Perception    float64
	Level         int
	EarnedXP      int
	ItemWeights   []string
}

// Derived is the full set of computed stats for one Sheet.
type Derived struct {
	CarryCapacity int
	CarryWeight   float64
	MeleeDamage   int
	MaxHP         float64
	LuckPoints    float64
	Defense       int
	Initiative    float64
	Level         int
	XPToNext      int
}

// Derive runs every rule against s.
func Derive(s Sheet) Derived {
	level, next := AdvanceLevel(s.Level, s.EarnedXP)
	return Derived{
		CarryCapacity: CarryCapacity(s.CarryModifier, s.Strength),
		CarryWeight:   CarryWeight(s.ItemWeights),
		MeleeDamage:   MeleeDamage(s.Strength),
		MaxHP:         MaxHP(s.Endurance, s.Luck),
		LuckPoints:    LuckPoints(s.Luck),
		Defense:       Defense(s.Agility),
		Initiative:    Initiative(s.Agility, s.Perception),
		Level:         level,
		XPToNext:      next,
	}
}
