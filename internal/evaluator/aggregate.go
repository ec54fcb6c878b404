package evaluator

import (
	"fmt"
	"math"
	"sort"

	"github.com/bhushananokar/interview-assistant/pkg/model"
)

const (
	technicalWeight = 0.6
	otherWeight     = 0.4
	topListSize     = 5
)

// Aggregate folds per-question evaluations into an overall summary. Pure
// computation, no I/O; empty input is a valid case.
//
// When the records split into a non-empty technical group and a non-empty
// non-technical group, the overall score is a 0.6/0.4 blend of the two group
// means, favoring technical performance. With only one group populated the
// overall score is the plain average.
func Aggregate(records []Record) model.Summary {
	if len(records) == 0 {
		return model.Summary{
			OverallScore:  0,
			AverageScore:  0,
			Count:         0,
			KeyStrengths:  []string{},
			KeyWeaknesses: []string{},
			Summary:       "No evaluations provided.",
		}
	}

	var total float64
	var strengths, weaknesses []string
	var technical, other []float64

	for _, r := range records {
		score := r.Evaluation.Score
		total += score

		strengths = append(strengths, r.Evaluation.Strengths...)
		weaknesses = append(weaknesses, r.Evaluation.Weaknesses...)

		if r.Type == "technical" {
			technical = append(technical, score)
		} else {
			other = append(other, score)
		}
	}

	average := total / float64(len(records))

	overall := average
	if len(technical) > 0 && len(other) > 0 {
		overall = technicalWeight*mean(technical) + otherWeight*mean(other)
	}

	overall = round1(overall)

	return model.Summary{
		OverallScore:  overall,
		AverageScore:  round1(average),
		Count:         len(records),
		KeyStrengths:  topByFrequency(strengths, topListSize),
		KeyWeaknesses: topByFrequency(weaknesses, topListSize),
		Summary:       fmt.Sprintf("Overall interview performance score: %.1f/10", overall),
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// topByFrequency returns the n most frequent values, ties broken by first
// appearance. Counts stay internal; only the strings are returned.
func topByFrequency(values []string, n int) []string {
	counts := make(map[string]int, len(values))
	order := make([]string, 0, len(values))
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}
