package services

import (
	"testing"

	"selfhack/models"
)

func tasksWithCompleted(done, total int) []models.Task {
	tasks := make([]models.Task, total)
	for i := range tasks {
		tasks[i].Completed = i < done
	}
	return tasks
}

func TestComputeProgress(t *testing.T) {
	cases := []struct {
		done, total  int
		wantProgress int
		wantStatus   string
	}{
		{0, 0, 0, models.HackStatusActive},
		{0, 4, 0, models.HackStatusActive},
		{2, 3, 67, models.HackStatusActive}, // round(200/3)
		{1, 3, 33, models.HackStatusActive},
		{3, 3, 100, models.HackStatusCompleted},
		{1, 2, 50, models.HackStatusActive},
		{5, 8, 63, models.HackStatusActive}, // round(62.5)
	}
	for _, tc := range cases {
		progress, status := ComputeProgress(tasksWithCompleted(tc.done, tc.total))
		if progress != tc.wantProgress || status != tc.wantStatus {
			t.Fatalf("ComputeProgress(%d/%d)=(%d,%s), want (%d,%s)",
				tc.done, tc.total, progress, status, tc.wantProgress, tc.wantStatus)
		}
	}
}

func TestComputeProgressIdempotent(t *testing.T) {
	tasks := tasksWithCompleted(2, 3)

	p1, s1 := ComputeProgress(tasks)
	p2, s2 := ComputeProgress(tasks)
	if p1 != p2 || s1 != s2 {
		t.Fatalf("recompute diverged: (%d,%s) vs (%d,%s)", p1, s1, p2, s2)
	}
}

func TestComputeProgressNeverFails(t *testing.T) {
	for done := 0; done <= 10; done++ {
		for total := done; total <= 10; total++ {
			_, status := ComputeProgress(tasksWithCompleted(done, total))
			if status == models.HackStatusFailed {
				t.Fatalf("aggregator produced failed at %d/%d", done, total)
			}
		}
	}
}
