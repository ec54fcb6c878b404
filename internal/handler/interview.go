package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/bhushananokar/interview-assistant/internal/question"
	"github.com/bhushananokar/interview-assistant/pkg"
	"github.com/bhushananokar/interview-assistant/pkg/model"
	"github.com/bhushananokar/interview-assistant/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const defaultQuestionsPerSkill = 3

// StartInterview creates a new skill-based interview session. The row is
// created as pending immediately; question generation runs in the background
// and flips the status to in_progress once questions are stored.
func (h *Handler) StartInterview(c *gin.Context) {
	var req model.StartInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	candidate := pkg.SanitizeInput(req.CandidateName)
	if candidate == "" {
		candidate = "Anonymous"
	}
	skills := pkg.SanitizeInput(req.Skills)
	if skills == "" {
		skills = "general skills"
	}
	skillArea := pkg.SanitizeInput(req.SkillArea)
	if skillArea == "" {
		skillArea = "general"
	}
	perSkill := req.QuestionsPerSkill
	if perSkill == 0 {
		perSkill = defaultQuestionsPerSkill
	}

	interviewID, err := h.Repository.CreateInterview(c.Request.Context(), &model.Interview{
		CandidateName: candidate,
		SkillArea:     fmt.Sprintf("%s: %s", skillArea, skills),
		Status:        model.StatusPending,
	})
	if err != nil {
		h.Logger.Error("start_interview: failed to create", zap.Error(err))
		response.InternalError(c, "failed to create interview")
		return
	}

	h.Logger.Info("start_interview: interview created",
		zap.Int64("interview_id", *interviewID),
		zap.String("skills", skills),
		zap.Int("questions_per_skill", perSkill),
	)

	response.Created(c, gin.H{
		"interview_id":        *interviewID,
		"message":             "Skill-based interview started successfully",
		"skills_assessed":     skills,
		"questions_per_skill": perSkill,
		"next_step":           fmt.Sprintf("/api/v1/interviews/%d/questions", *interviewID),
	})

	// background question generation
	go h.generateQuestions(*interviewID, skills, perSkill)
}

func (h *Handler) generateQuestions(interviewID int64, skills string, perSkill int) {
	ctx := context.Background()

	jobDescription := question.JobDescription(question.ParseSkills(skills))
	set := h.Questions.ForSkills(ctx, skills, jobDescription, perSkill)

	qs := make([]model.Question, len(set.Questions))
	for i, sq := range set.Questions {
		qs[i] = model.Question{
			InterviewID: interviewID,
			Question:    sq.Question,
			Type:        sq.Type,
			Skill:       sq.Skill,
		}
	}

	if err := h.Repository.CreateQuestions(ctx, qs); err != nil {
		h.Logger.Error("generate_questions: failed to store",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		meta := model.SkillsMetadata{GenerationError: err.Error()}
		blob, _ := json.Marshal(meta)
		_ = h.Repository.UpdateInterview(ctx, interviewID, map[string]interface{}{
			"feedback": string(blob),
		})
		return
	}

	meta := model.SkillsMetadata{
		SkillsAssessed:    set.SkillsAssessed,
		QuestionsPerSkill: perSkill,
		TotalQuestions:    set.TotalQuestions,
	}
	blob, _ := json.Marshal(meta)

	if err := h.Repository.UpdateInterview(ctx, interviewID, map[string]interface{}{
		"status":   model.StatusInProgress,
		"feedback": string(blob),
	}); err != nil {
		h.Logger.Error("generate_questions: failed to update interview",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		return
	}

	h.Logger.Info("generate_questions: questions stored",
		zap.Int64("interview_id", interviewID),
		zap.Int("total_questions", set.TotalQuestions),
		zap.Strings("skills", set.SkillsAssessed),
	)
}

// ListInterviews returns recent interviews, newest first.
func (h *Handler) ListInterviews(c *gin.Context) {
	var q model.ListInterviewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	interviews, err := h.Repository.ListRecentInterviews(c.Request.Context(), q.Limit)
	if err != nil {
		h.Logger.Error("list_interviews: failed to fetch", zap.Error(err))
		response.InternalError(c, "failed to fetch interviews")
		return
	}

	items := make([]gin.H, 0, len(interviews))
	for _, iv := range interviews {
		items = append(items, gin.H{
			"id":             iv.ID,
			"candidate_name": iv.CandidateName,
			"skill_area":     iv.SkillArea,
			"status":         iv.Status,
			"score":          iv.Score,
			"created_at":     iv.CreatedAt,
			"completed_at":   iv.CompletedAt,
		})
	}

	response.OK(c, gin.H{"interviews": items, "total": len(items)})
}

// GetInterviewQuestions returns all questions of an interview with progress counts.
func (h *Handler) GetInterviewQuestions(c *gin.Context) {
	interviewID, ok := interviewIDParam(c)
	if !ok {
		return
	}

	interview, err := h.Repository.GetInterviewByID(c.Request.Context(), interviewID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Error("get_questions: failed to fetch interview",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to fetch interview")
		return
	}

	questions, err := h.Repository.ListQuestionsByInterviewID(c.Request.Context(), interviewID)
	if err != nil {
		h.Logger.Error("get_questions: failed to fetch questions",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to fetch questions")
		return
	}

	answered := 0
	items := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		if q.Response != nil {
			answered++
		}
		items = append(items, gin.H{
			"id":            q.ID,
			"question":      q.Question,
			"question_type": q.Type,
			"skill":         q.Skill,
			"response":      q.Response,
			"score":         q.Score,
		})
	}

	meta := h.skillsMetadata(interview)

	response.OK(c, gin.H{
		"interview_id":        interview.ID,
		"candidate_name":      interview.CandidateName,
		"skill_area":          interview.SkillArea,
		"status":              interview.Status,
		"questions":           items,
		"total_questions":     len(items),
		"answered_questions":  answered,
		"skills_assessed":     meta.SkillsAssessed,
		"questions_per_skill": meta.QuestionsPerSkill,
	})
}

// DeleteInterview removes an interview and its questions in one transaction.
func (h *Handler) DeleteInterview(c *gin.Context) {
	interviewID, ok := interviewIDParam(c)
	if !ok {
		return
	}

	if err := h.Repository.DeleteInterview(c.Request.Context(), interviewID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Error("delete_interview: failed to delete",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to delete interview")
		return
	}

	if err := h.Results.Invalidate(c.Request.Context(), interviewID); err != nil {
		h.Logger.Warn("delete_interview: cache invalidation failed",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
	}

	h.Logger.Info("delete_interview: interview deleted", zap.Int64("interview_id", interviewID))
	response.Message(c, "interview deleted successfully")
}

// skillsMetadata decodes the metadata blob from the feedback column;
// a missing or malformed blob yields the zero value.
func (h *Handler) skillsMetadata(interview *model.Interview) model.SkillsMetadata {
	var meta model.SkillsMetadata
	if interview.Feedback == nil || *interview.Feedback == "" {
		return meta
	}
	if err := json.Unmarshal([]byte(*interview.Feedback), &meta); err != nil {
		h.Logger.Warn("malformed skills metadata",
			zap.Int64("interview_id", interview.ID),
			zap.Error(err),
		)
	}
	return meta
}

func interviewIDParam(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	interviewID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid interview id")
		return 0, false
	}
	return interviewID, true
}
