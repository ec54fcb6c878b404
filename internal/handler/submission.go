package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bhushananokar/interview-assistant/internal/evaluator"
	"github.com/bhushananokar/interview-assistant/pkg/model"
	"github.com/bhushananokar/interview-assistant/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// skillRatingUpdate reports whether a skill finished with this submission and,
// if so, its rating.
type skillRatingUpdate struct {
	Skill             string  `json:"skill"`
	Completed         bool    `json:"completed"`
	StarRating        int     `json:"star_rating,omitempty"`
	AverageScore      float64 `json:"average_score,omitempty"`
	QuestionsAnswered int     `json:"questions_answered"`
	QuestionsTotal    int     `json:"questions_total,omitempty"`
}

// SubmitResponse stores a candidate's answer, evaluates it synchronously, and
// completes the interview once every question is answered. The candidate
// always receives an evaluation, even under total gateway failure.
func (h *Handler) SubmitResponse(c *gin.Context) {
	var req model.SubmitResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()

	q, err := h.Repository.GetQuestionByID(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "question not found")
			return
		}
		h.Logger.Error("submit_response: failed to fetch question",
			zap.Int64("question_id", req.QuestionID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to fetch question")
		return
	}

	if err := h.Repository.SaveResponse(ctx, q.ID, req.Response); err != nil {
		h.Logger.Error("submit_response: failed to save response",
			zap.Int64("question_id", q.ID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to save response")
		return
	}

	skillContext := fmt.Sprintf("This question specifically assesses the skill: %s. "+
		"Evaluate how well the response demonstrates knowledge and proficiency in %s.",
		q.Skill, q.Skill)

	ev := h.Evaluator.Evaluate(ctx, q.Question, req.Response, skillContext, q.Type)

	if err := h.Repository.SaveEvaluation(ctx, q.ID, &ev); err != nil {
		h.Logger.Error("submit_response: failed to save evaluation",
			zap.Int64("question_id", q.ID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to save evaluation")
		return
	}

	ratingUpdate := h.updateSkillRating(ctx, q.InterviewID, q.Skill)

	answered, total, err := h.Repository.CountProgress(ctx, q.InterviewID)
	if err != nil {
		h.Logger.Error("submit_response: failed to count progress",
			zap.Int64("interview_id", q.InterviewID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to determine interview progress")
		return
	}

	completed := total > 0 && answered == total
	if completed {
		h.completeInterview(ctx, q.InterviewID)
	}

	if err := h.Results.Invalidate(ctx, q.InterviewID); err != nil {
		h.Logger.Warn("submit_response: cache invalidation failed",
			zap.Int64("interview_id", q.InterviewID),
			zap.Error(err),
		)
	}

	nextStep := "Continue to next question"
	if completed {
		nextStep = fmt.Sprintf("/api/v1/interviews/%d/results", q.InterviewID)
	}

	response.OK(c, gin.H{
		"question_id":         q.ID,
		"evaluation":          ev.Public(),
		"skill_assessed":      q.Skill,
		"skill_rating_update": ratingUpdate,
		"interview_progress": model.Progress{
			Answered:  answered,
			Total:     total,
			Completed: completed,
		},
		"next_step": nextStep,
	})
}

// updateSkillRating recalculates one skill's rating when all of its questions
// are answered, and persists it into the interview's metadata blob. Failures
// here never block the submission; they are logged and an incomplete update
// is reported.
func (h *Handler) updateSkillRating(ctx context.Context, interviewID int64, skill string) skillRatingUpdate {
	update := skillRatingUpdate{Skill: skill}

	answeredRows, err := h.Repository.ListSkillScores(ctx, interviewID, skill)
	if err != nil {
		h.Logger.Error("skill_rating: failed to list scores",
			zap.Int64("interview_id", interviewID),
			zap.String("skill", skill),
			zap.Error(err),
		)
		return update
	}

	total, err := h.Repository.CountSkillQuestions(ctx, interviewID, skill)
	if err != nil {
		h.Logger.Error("skill_rating: failed to count questions",
			zap.Int64("interview_id", interviewID),
			zap.String("skill", skill),
			zap.Error(err),
		)
		return update
	}

	update.QuestionsAnswered = len(answeredRows)
	update.QuestionsTotal = total

	if len(answeredRows) != total || total == 0 {
		return update
	}

	var sum float64
	for _, row := range answeredRows {
		if row.Score != nil {
			sum += *row.Score
		}
	}
	avg := sum / float64(len(answeredRows))

	update.Completed = true
	update.StarRating = evaluator.StarsForScore(avg)
	update.AverageScore = round1(avg)

	h.storeSkillRating(ctx, interviewID, skill, update.StarRating, avg)
	return update
}

func (h *Handler) storeSkillRating(ctx context.Context, interviewID int64, skill string, stars int, avg float64) {
	interview, err := h.Repository.GetInterviewByID(ctx, interviewID)
	if err != nil {
		h.Logger.Error("skill_rating: failed to fetch interview",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		return
	}

	meta := h.skillsMetadata(interview)
	if meta.SkillRatings == nil {
		meta.SkillRatings = make(map[string]model.StoredSkillScore)
	}
	meta.SkillRatings[skill] = model.StoredSkillScore{
		StarRating:   stars,
		AverageScore: avg,
		CompletedAt:  time.Now().UTC(),
	}

	blob, _ := json.Marshal(meta)
	if err := h.Repository.UpdateInterview(ctx, interviewID, map[string]interface{}{
		"feedback": string(blob),
	}); err != nil {
		h.Logger.Error("skill_rating: failed to store rating",
			zap.Int64("interview_id", interviewID),
			zap.String("skill", skill),
			zap.Error(err),
		)
	}
}

// completeInterview marks the interview completed and stores its aggregate score.
func (h *Handler) completeInterview(ctx context.Context, interviewID int64) {
	records, err := h.evaluationRecords(ctx, interviewID)
	if err != nil {
		h.Logger.Error("complete_interview: failed to load evaluations",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		return
	}

	summary := evaluator.Aggregate(records)

	if err := h.Repository.UpdateInterview(ctx, interviewID, map[string]interface{}{
		"status":       model.StatusCompleted,
		"score":        summary.OverallScore,
		"completed_at": time.Now().UTC(),
	}); err != nil {
		h.Logger.Error("complete_interview: failed to update",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		return
	}

	h.Logger.Info("complete_interview: interview completed",
		zap.Int64("interview_id", interviewID),
		zap.Float64("overall_score", summary.OverallScore),
	)
}

// evaluationRecords loads all answered questions of one interview as
// aggregation records.
func (h *Handler) evaluationRecords(ctx context.Context, interviewID int64) ([]evaluator.Record, error) {
	rows, err := h.Repository.ListSkillScores(ctx, interviewID, "")
	if err != nil {
		return nil, err
	}

	records := make([]evaluator.Record, 0, len(rows))
	for _, row := range rows {
		if row.Evaluation == nil {
			continue
		}
		resp := ""
		if row.Response != nil {
			resp = *row.Response
		}
		records = append(records, evaluator.Record{
			Question:   row.Question,
			Response:   resp,
			Type:       row.Type,
			Evaluation: *row.Evaluation,
		})
	}
	return records, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
