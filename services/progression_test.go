package services

import (
	"testing"

	"selfhack/models"
)

func newTestProfile() *models.Profile {
	return &models.Profile{
		Level:         1,
		XP:            0,
		XPToNextLevel: 1000,
		Rank:          "INITIATE",
		Plan:          models.PlanFree,
	}
}

func TestRankForLevelBoundaries(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, "INITIATE"},
		{4, "INITIATE"},
		{5, "PROTOCOL_RUNNER"},
		{9, "PROTOCOL_RUNNER"},
		{10, "MIND_ENGINEER"},
		{19, "MIND_ENGINEER"},
		{20, "NEURAL_OPTIMIZER"},
		{30, "SYSTEM_HACKER"},
		{40, "NEURAL_ARCHITECT"},
		{49, "NEURAL_ARCHITECT"},
		{50, "REALITY_MASTER"},
		{120, "REALITY_MASTER"},
	}
	for _, tc := range cases {
		if got := RankForLevel(tc.level); got != tc.want {
			t.Fatalf("RankForLevel(%d)=%s, want %s", tc.level, got, tc.want)
		}
	}
}

func TestRankForLevelMonotonic(t *testing.T) {
	order := map[string]int{
		"INITIATE": 0, "PROTOCOL_RUNNER": 1, "MIND_ENGINEER": 2,
		"NEURAL_OPTIMIZER": 3, "SYSTEM_HACKER": 4, "NEURAL_ARCHITECT": 5,
		"REALITY_MASTER": 6,
	}
	prev := -1
	for level := 1; level <= 60; level++ {
		cur := order[RankForLevel(level)]
		if cur < prev {
			t.Fatalf("rank order decreased at level %d", level)
		}
		prev = cur
	}
}

func TestApplyXPZeroIsNoOp(t *testing.T) {
	p := newTestProfile()
	p.XP = 450

	gained := ApplyXP(p, 0)
	if gained != 0 {
		t.Fatalf("gained=%d, want 0", gained)
	}
	if p.Level != 1 || p.XP != 450 || p.XPToNextLevel != 1000 || p.Rank != "INITIATE" {
		t.Fatalf("profile changed on zero award: %+v", p)
	}
}

func TestApplyXPSingleLevelUp(t *testing.T) {
	p := newTestProfile()
	p.XP = 900

	gained := ApplyXP(p, 200)
	if gained != 1 {
		t.Fatalf("gained=%d, want 1", gained)
	}
	if p.Level != 2 {
		t.Fatalf("level=%d, want 2", p.Level)
	}
	if p.XP != 100 {
		t.Fatalf("xp=%d, want 100", p.XP)
	}
	if p.XPToNextLevel != 1200 {
		t.Fatalf("xp_to_next=%d, want 1200", p.XPToNextLevel)
	}
}

func TestApplyXPMultiLevelJump(t *testing.T) {
	// Level 1, xp=900, threshold 1000, awarded 1500:
	// 2400 -> level 2 with 1400 left (threshold 1200)
	//      -> level 3 with 200 left (threshold 1440)
	p := newTestProfile()
	p.XP = 900

	gained := ApplyXP(p, 1500)
	if gained != 2 {
		t.Fatalf("gained=%d, want 2", gained)
	}
	if p.Level != 3 {
		t.Fatalf("level=%d, want 3", p.Level)
	}
	if p.XP != 200 {
		t.Fatalf("xp=%d, want 200", p.XP)
	}
	if p.XPToNextLevel != 1440 {
		t.Fatalf("xp_to_next=%d, want 1440", p.XPToNextLevel)
	}
	if p.Rank != "INITIATE" {
		t.Fatalf("rank=%s, want INITIATE (level 3 < 5)", p.Rank)
	}
}

func TestApplyXPInvariantHolds(t *testing.T) {
	p := newTestProfile()
	awards := []int{0, 1, 999, 1000, 1234, 50000, 3, 100000}
	for _, amount := range awards {
		ApplyXP(p, amount)
		if p.XP < 0 || p.XP >= p.XPToNextLevel {
			t.Fatalf("invariant violated after award %d: xp=%d next=%d", amount, p.XP, p.XPToNextLevel)
		}
		if p.Rank != RankForLevel(p.Level) {
			t.Fatalf("rank drifted: %s vs level %d", p.Rank, p.Level)
		}
	}
}

func TestApplyXPThresholdTruncates(t *testing.T) {
	p := newTestProfile()
	p.XPToNextLevel = 1441 // 1441 * 1.2 = 1729.2, must truncate to 1729

	ApplyXP(p, 1441)
	if p.XPToNextLevel != 1729 {
		t.Fatalf("xp_to_next=%d, want 1729", p.XPToNextLevel)
	}
}

func TestApplyXPNegativeIgnored(t *testing.T) {
	p := newTestProfile()
	p.XP = 500

	if gained := ApplyXP(p, -100); gained != 0 {
		t.Fatalf("gained=%d, want 0", gained)
	}
	if p.XP != 500 {
		t.Fatalf("xp=%d, want 500", p.XP)
	}
}
