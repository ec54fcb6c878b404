package evaluator

import (
	"fmt"
	"math"
	"sort"
)

// SkillScore is one answered question's score tagged with the skill it assessed.
type SkillScore struct {
	Skill string
	Score float64
}

// SkillRating is the assessment of one skill across its questions.
type SkillRating struct {
	AverageScore      float64 `json:"average_score"`
	StarRating        int     `json:"star_rating"`
	ProficiencyLevel  string  `json:"proficiency_level"`
	QuestionsAnswered int     `json:"questions_answered"`
	SkillSummary      string  `json:"skill_summary"`
}

// OverallRating summarizes all skill ratings of one interview.
type OverallRating struct {
	AverageScore     float64 `json:"average_score"`
	StarRating       int     `json:"star_rating"`
	ProficiencyLevel string  `json:"proficiency_level"`
	SkillsCount      int     `json:"skills_count"`
}

// StarsForScore converts a 1-10 score to a 1-5 star rating.
func StarsForScore(score float64) int {
	switch {
	case score >= 9:
		return 5
	case score >= 7:
		return 4
	case score >= 5:
		return 3
	case score >= 3:
		return 2
	default:
		return 1
	}
}

// ProficiencyForScore maps a 1-10 score to a proficiency label.
func ProficiencyForScore(score float64) string {
	switch {
	case score >= 9:
		return "Expert"
	case score >= 7:
		return "Advanced"
	case score >= 5:
		return "Intermediate"
	case score >= 3:
		return "Beginner"
	default:
		return "Novice"
	}
}

// SkillRatings groups answered-question scores by skill and rates each one.
// Skills listed in assessed but absent from scores come back as "Not Assessed".
func SkillRatings(scores []SkillScore, assessed []string) map[string]SkillRating {
	grouped := make(map[string][]float64)
	for _, s := range scores {
		grouped[s.Skill] = append(grouped[s.Skill], s.Score)
	}

	ratings := make(map[string]SkillRating, len(assessed))

	rate := func(skill string, skillScores []float64) {
		if len(skillScores) == 0 {
			ratings[skill] = SkillRating{
				AverageScore:      0,
				StarRating:        1,
				ProficiencyLevel:  "Not Assessed",
				QuestionsAnswered: 0,
				SkillSummary:      fmt.Sprintf("%s: Not assessed", skill),
			}
			return
		}

		avg := mean(skillScores)
		stars := StarsForScore(avg)
		level := ProficiencyForScore(avg)
		ratings[skill] = SkillRating{
			AverageScore:      round2(avg),
			StarRating:        stars,
			ProficiencyLevel:  level,
			QuestionsAnswered: len(skillScores),
			SkillSummary:      fmt.Sprintf("%s: %d/5 stars (%s)", skill, stars, level),
		}
	}

	for _, skill := range assessed {
		rate(skill, grouped[skill])
		delete(grouped, skill)
	}
	// scores for skills not in the assessed list still get rated
	for skill, skillScores := range grouped {
		rate(skill, skillScores)
	}

	return ratings
}

// Overall averages the assessed skills' averages; unassessed skills are excluded.
func Overall(ratings map[string]SkillRating) OverallRating {
	var sum float64
	var n int
	for _, r := range ratings {
		if r.AverageScore > 0 {
			sum += r.AverageScore
			n++
		}
	}

	var avg float64
	if n > 0 {
		avg = sum / float64(n)
	}

	return OverallRating{
		AverageScore:     round2(avg),
		StarRating:       StarsForScore(avg),
		ProficiencyLevel: ProficiencyForScore(avg),
		SkillsCount:      len(ratings),
	}
}

// GroupByProficiency inverts ratings into proficiency level -> skills,
// omitting empty levels.
func GroupByProficiency(ratings map[string]SkillRating) map[string][]string {
	groups := make(map[string][]string)
	for skill, r := range ratings {
		groups[r.ProficiencyLevel] = append(groups[r.ProficiencyLevel], skill)
	}
	for _, skills := range groups {
		sort.Strings(skills)
	}
	return groups
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
