package stats

import "testing"

func TestRequiredXP(t *testing.T) {
	tests := map[int]int{-3: 0, 0: 0, 1: 0, 2: 100, 3: 300, 4: 600, 5: 1000, 6: 1500}
	for level, want := range tests {
		if got := RequiredXP(level); got != want {
			t.Errorf("RequiredXP(%d) = %d, want %d", level, got, want)
		}
	}
}

func TestRequiredXPStrictlyIncreasesFromLevelTwo(t *testing.T) {
	prev := RequiredXP(2)
	for level := 3; level < 200; level++ {
		got := RequiredXP(level)
		if got <= prev {
			t.Fatalf("RequiredXP(%d) = %d, not above %d", level, got, prev)
		}
		prev = got
	}
}

func TestAdvanceLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		xp        int
		wantLevel int
		wantNext  int
	}{
		{name: "fresh character", level: 1, xp: 0, wantLevel: 1, wantNext: 100},
		{name: "just below threshold", level: 1, xp: 99, wantLevel: 1, wantNext: 100},
		{name: "reaches level two", level: 1, xp: 100, wantLevel: 2, wantNext: 300},
		{name: "multiple levels", level: 1, xp: 1000, wantLevel: 5, wantNext: 1500},
		{name: "missing level", level: 0, xp: 250, wantLevel: 2, wantNext: 300},
		{name: "stored level kept", level: 4, xp: 0, wantLevel: 4, wantNext: 1000},
		{name: "negative xp", level: 1, xp: -50, wantLevel: 1, wantNext: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, next := AdvanceLevel(tt.level, tt.xp)
			if level != tt.wantLevel || next != tt.wantNext {
				t.Fatalf("AdvanceLevel(%d, %d) = (%d, %d), want (%d, %d)",
					tt.level, tt.xp, level, next, tt.wantLevel, tt.wantNext)
			}
		})
	}
}

func TestAdvanceLevelTerminatesBelowThreshold(t *testing.T) {
	xp := 2147483647
	level, next := AdvanceLevel(1, xp)
	if xp >= next {
		t.Fatalf("stopped at level %d with xp %d still >= next %d", level, xp, next)
	}
	if xp < RequiredXP(level) {
		t.Fatalf("level %d requires %d, more than earned %d", level, RequiredXP(level), xp)
	}
}

func TestAdvanceLevelCapsAtMaxLevel(t *testing.T) {
	level, _ := AdvanceLevel(MaxLevel+10, 0)
	if level != MaxLevel {
		t.Fatalf("level = %d, want %d", level, MaxLevel)
	}
}
