package stats

const (
	// InitialXPToNext is the XP shown before any has been earned: the
	// level 2 threshold.
	InitialXPToNext = 100
	// MaxLevel bounds AdvanceLevel so absurd XP entries stay cheap.
	MaxLevel = 100000
)

// RequiredXP returns the total XP needed to reach level from level 1:
// 100 for level 2, then the triangular number of level-1 scaled by 100.
// Levels below 1 are treated as 1.
func RequiredXP(level int) int {
	if level < 1 {
		level = 1
	}
	if level == 2 {
		return InitialXPToNext
	}
	return level * (level - 1) / 2 * 100
}

// AdvanceLevel raises level while earnedXP reaches the next threshold and
// returns the final level with the XP needed for the level after it.
func AdvanceLevel(level, earnedXP int) (int, int) {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	next := RequiredXP(level + 1)
	for earnedXP >= next && level < MaxLevel {
		level++
		next = RequiredXP(level + 1)
	}
	return level, next
}
