package services

import (
	"errors"
	"testing"

	"selfhack/models"
)

func TestNewMentorServiceRequiresCredential(t *testing.T) {
	if _, err := NewMentorService("", ""); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("got %v, want ErrMissingCredential", err)
	}

	svc, err := NewMentorService("sk-test", "")
	if err != nil {
		t.Fatalf("construction with key failed: %v", err)
	}
	if svc == nil {
		t.Fatal("expected a client")
	}
}

func TestParseDecomposedPlan(t *testing.T) {
	raw := `{
		"title": "Master Deep Work",
		"description": "Rebuild your focus system.",
		"tasks": [
			{"title": "Block 2h daily", "difficulty": "easy", "xp": 20},
			{"title": "Kill notifications", "difficulty": "MEDIUM", "xp": 40},
			{"title": "Weekly review", "difficulty": "hard", "xp": 80}
		]
	}`

	plan, err := ParseDecomposedPlan(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if plan.Title != "Master Deep Work" {
		t.Fatalf("title=%q", plan.Title)
	}
	if len(plan.Tasks) != 3 {
		t.Fatalf("tasks=%d, want 3", len(plan.Tasks))
	}
	// Case-insensitive difficulty normalization.
	if plan.Tasks[1].Difficulty != models.DifficultyMedium {
		t.Fatalf("difficulty=%q, want medium", plan.Tasks[1].Difficulty)
	}
}

func TestParseDecomposedPlanSanitizes(t *testing.T) {
	raw := `{
		"title": "T",
		"description": "D",
		"tasks": [
			{"title": "a", "difficulty": "brutal", "xp": 5},
			{"title": "b", "difficulty": "easy", "xp": 9000},
			{"title": "c", "difficulty": "easy", "xp": 50},
			{"title": "d", "difficulty": "easy", "xp": 50},
			{"title": "e", "difficulty": "easy", "xp": 50},
			{"title": "f", "difficulty": "easy", "xp": 50}
		]
	}`

	plan, err := ParseDecomposedPlan(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(plan.Tasks) != MaxDecomposedTasks {
		t.Fatalf("tasks=%d, want capped at %d", len(plan.Tasks), MaxDecomposedTasks)
	}
	if plan.Tasks[0].Difficulty != models.DifficultyMedium {
		t.Fatalf("unknown difficulty not defaulted: %q", plan.Tasks[0].Difficulty)
	}
	if plan.Tasks[0].XP != 10 {
		t.Fatalf("xp=%d, want clamped to 10", plan.Tasks[0].XP)
	}
	if plan.Tasks[1].XP != 100 {
		t.Fatalf("xp=%d, want clamped to 100", plan.Tasks[1].XP)
	}
}

func TestParseDecomposedPlanMalformed(t *testing.T) {
	if _, err := ParseDecomposedPlan("not json at all"); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
