package evaluator

import (
	"reflect"
	"testing"
)

// TestStarsForScore tests the score-to-stars boundaries
func TestStarsForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{score: 10, want: 5},
		{score: 9, want: 5},
		{score: 8.9, want: 4},
		{score: 7, want: 4},
		{score: 6.9, want: 3},
		{score: 5, want: 3},
		{score: 4.9, want: 2},
		{score: 3, want: 2},
		{score: 2.9, want: 1},
		{score: 1, want: 1},
		{score: 0, want: 1},
	}

	for _, tt := range tests {
		if got := StarsForScore(tt.score); got != tt.want {
			t.Errorf("StarsForScore(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

// TestProficiencyForScore tests the score-to-label boundaries
func TestProficiencyForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: 9, want: "Expert"},
		{score: 8.5, want: "Advanced"},
		{score: 7, want: "Advanced"},
		{score: 6, want: "Intermediate"},
		{score: 5, want: "Intermediate"},
		{score: 4, want: "Beginner"},
		{score: 3, want: "Beginner"},
		{score: 2, want: "Novice"},
		{score: 0, want: "Novice"},
	}

	for _, tt := range tests {
		if got := ProficiencyForScore(tt.score); got != tt.want {
			t.Errorf("ProficiencyForScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

// TestSkillRatings tests grouping, averaging, and the Not Assessed placeholder
func TestSkillRatings(t *testing.T) {
	scores := []SkillScore{
		{Skill: "Go", Score: 8},
		{Skill: "Go", Score: 9},
		{Skill: "SQL", Score: 4},
	}
	assessed := []string{"Go", "SQL", "Kubernetes"}

	ratings := SkillRatings(scores, assessed)

	if len(ratings) != 3 {
		t.Fatalf("got %d ratings, want 3", len(ratings))
	}

	goRating := ratings["Go"]
	if goRating.AverageScore != 8.5 {
		t.Errorf("Go.AverageScore = %v, want 8.5", goRating.AverageScore)
	}
	if goRating.StarRating != 4 {
		t.Errorf("Go.StarRating = %d, want 4", goRating.StarRating)
	}
	if goRating.ProficiencyLevel != "Advanced" {
		t.Errorf("Go.ProficiencyLevel = %q, want Advanced", goRating.ProficiencyLevel)
	}
	if goRating.QuestionsAnswered != 2 {
		t.Errorf("Go.QuestionsAnswered = %d, want 2", goRating.QuestionsAnswered)
	}
	if goRating.SkillSummary != "Go: 4/5 stars (Advanced)" {
		t.Errorf("Go.SkillSummary = %q", goRating.SkillSummary)
	}

	sqlRating := ratings["SQL"]
	if sqlRating.ProficiencyLevel != "Beginner" || sqlRating.StarRating != 2 {
		t.Errorf("SQL rating = %+v, want Beginner / 2 stars", sqlRating)
	}

	k8s := ratings["Kubernetes"]
	if k8s.ProficiencyLevel != "Not Assessed" {
		t.Errorf("Kubernetes.ProficiencyLevel = %q, want Not Assessed", k8s.ProficiencyLevel)
	}
	if k8s.AverageScore != 0 || k8s.QuestionsAnswered != 0 {
		t.Errorf("Kubernetes rating = %+v, want zero scores", k8s)
	}
	if k8s.SkillSummary != "Kubernetes: Not assessed" {
		t.Errorf("Kubernetes.SkillSummary = %q", k8s.SkillSummary)
	}
}

// TestSkillRatings_ExtraSkill tests that scores outside the assessed list are still rated
func TestSkillRatings_ExtraSkill(t *testing.T) {
	scores := []SkillScore{{Skill: "Docker", Score: 6}}

	ratings := SkillRatings(scores, []string{"Go"})

	if len(ratings) != 2 {
		t.Fatalf("got %d ratings, want 2", len(ratings))
	}
	if ratings["Docker"].ProficiencyLevel != "Intermediate" {
		t.Errorf("Docker.ProficiencyLevel = %q, want Intermediate", ratings["Docker"].ProficiencyLevel)
	}
	if ratings["Go"].ProficiencyLevel != "Not Assessed" {
		t.Errorf("Go.ProficiencyLevel = %q, want Not Assessed", ratings["Go"].ProficiencyLevel)
	}
}

// TestOverall tests averaging across assessed skills and exclusion of unassessed ones
func TestOverall(t *testing.T) {
	ratings := map[string]SkillRating{
		"Go":  {AverageScore: 9, StarRating: 5, ProficiencyLevel: "Expert", QuestionsAnswered: 2},
		"SQL": {AverageScore: 5, StarRating: 3, ProficiencyLevel: "Intermediate", QuestionsAnswered: 1},
		"K8s": {AverageScore: 0, StarRating: 1, ProficiencyLevel: "Not Assessed"},
	}

	overall := Overall(ratings)

	if overall.AverageScore != 7 {
		t.Errorf("AverageScore = %v, want 7", overall.AverageScore)
	}
	if overall.StarRating != 4 {
		t.Errorf("StarRating = %d, want 4", overall.StarRating)
	}
	if overall.ProficiencyLevel != "Advanced" {
		t.Errorf("ProficiencyLevel = %q, want Advanced", overall.ProficiencyLevel)
	}
	if overall.SkillsCount != 3 {
		t.Errorf("SkillsCount = %d, want 3", overall.SkillsCount)
	}
}

// TestOverall_Empty tests the zero case
func TestOverall_Empty(t *testing.T) {
	overall := Overall(nil)

	if overall.AverageScore != 0 || overall.SkillsCount != 0 {
		t.Errorf("got %+v, want zero values", overall)
	}
	if overall.ProficiencyLevel != "Novice" {
		t.Errorf("ProficiencyLevel = %q, want Novice", overall.ProficiencyLevel)
	}
}

// TestGroupByProficiency tests the level-to-skills inversion with sorted groups
func TestGroupByProficiency(t *testing.T) {
	ratings := map[string]SkillRating{
		"Go":     {ProficiencyLevel: "Advanced"},
		"Docker": {ProficiencyLevel: "Advanced"},
		"SQL":    {ProficiencyLevel: "Beginner"},
	}

	groups := GroupByProficiency(ratings)

	want := map[string][]string{
		"Advanced": {"Docker", "Go"},
		"Beginner": {"SQL"},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("GroupByProficiency() = %v, want %v", groups, want)
	}
}
