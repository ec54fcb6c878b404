package handler

import (
	"errors"
	"time"

	"github.com/bhushananokar/interview-assistant/internal/evaluator"
	"github.com/bhushananokar/interview-assistant/pkg/model"
	"github.com/bhushananokar/interview-assistant/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// resultsView is the cached and served shape of one interview's results.
type resultsView struct {
	InterviewID    int64                            `json:"interview_id"`
	CandidateName  string                           `json:"candidate_name"`
	SkillArea      string                           `json:"skill_area"`
	Status         model.Status                     `json:"status"`
	CompletedAt    *time.Time                       `json:"completed_at"`
	Summary        model.Summary                    `json:"summary"`
	SkillRatings   map[string]evaluator.SkillRating `json:"skill_ratings"`
	OverallRating  evaluator.OverallRating          `json:"overall_rating"`
	ByProficiency  map[string][]string              `json:"skills_by_proficiency"`
	TotalSkills    int                              `json:"total_skills"`
	TotalQuestions int                              `json:"total_questions"`
}

// GetInterviewResults aggregates all evaluations of an interview into an
// overall summary plus per-skill star ratings. Results are cached in Redis
// until the next submission.
func (h *Handler) GetInterviewResults(c *gin.Context) {
	interviewID, ok := interviewIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var cached resultsView
	hit, err := h.Results.Get(ctx, interviewID, &cached)
	if err != nil {
		h.Logger.Warn("get_results: cache read failed",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
	}
	if hit {
		response.OK(c, cached)
		return
	}

	interview, err := h.Repository.GetInterviewByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Error("get_results: failed to fetch interview",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to fetch interview")
		return
	}

	records, err := h.evaluationRecords(ctx, interviewID)
	if err != nil {
		h.Logger.Error("get_results: failed to load evaluations",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to load evaluations")
		return
	}

	rows, err := h.Repository.ListSkillScores(ctx, interviewID, "")
	if err != nil {
		h.Logger.Error("get_results: failed to load scores",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to load scores")
		return
	}

	scores := make([]evaluator.SkillScore, 0, len(rows))
	for _, row := range rows {
		var score float64
		if row.Score != nil {
			score = *row.Score
		}
		scores = append(scores, evaluator.SkillScore{Skill: row.Skill, Score: score})
	}

	meta := h.skillsMetadata(interview)
	ratings := evaluator.SkillRatings(scores, meta.SkillsAssessed)
	_, total, err := h.Repository.CountProgress(ctx, interviewID)
	if err != nil {
		h.Logger.Error("get_results: failed to count questions",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to count questions")
		return
	}

	view := resultsView{
		InterviewID:    interview.ID,
		CandidateName:  interview.CandidateName,
		SkillArea:      interview.SkillArea,
		Status:         interview.Status,
		CompletedAt:    interview.CompletedAt,
		Summary:        evaluator.Aggregate(records),
		SkillRatings:   ratings,
		OverallRating:  evaluator.Overall(ratings),
		ByProficiency:  evaluator.GroupByProficiency(ratings),
		TotalSkills:    len(ratings),
		TotalQuestions: total,
	}

	if err := h.Results.Set(ctx, interviewID, view); err != nil {
		h.Logger.Warn("get_results: cache write failed",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
	}

	response.OK(c, view)
}
