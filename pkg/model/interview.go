package model

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Interview struct {
	ID            int64      `json:"id" db:"id"`
	CandidateName string     `json:"candidate_name" db:"candidate_name"`
	SkillArea     string     `json:"skill_area" db:"skill_area"`
	Status        Status     `json:"status" db:"status"`
	Score         *float64   `json:"score" db:"score"`
	Feedback      *string    `json:"feedback" db:"feedback"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	CompletedAt   *time.Time `json:"completed_at" db:"completed_at"`
}

type StartInterviewReq struct {
	CandidateName     string `json:"candidate_name"`
	Skills            string `json:"skills"`
	SkillArea         string `json:"skill_area"`
	QuestionsPerSkill int    `json:"questions_per_skill" binding:"omitempty,min=1,max=5"`
}

type ListInterviewsQuery struct {
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// Progress counts answered vs. total questions for one interview.
type Progress struct {
	Answered  int  `json:"answered"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
}

// SkillsMetadata is persisted in the interview feedback column, mirroring the
// shape produced at question-generation time plus ratings added as skills complete.
type SkillsMetadata struct {
	SkillsAssessed    []string                    `json:"skills_assessed"`
	QuestionsPerSkill int                         `json:"questions_per_skill"`
	TotalQuestions    int                         `json:"total_questions"`
	SkillRatings      map[string]StoredSkillScore `json:"skill_ratings,omitempty"`
	GenerationError   string                      `json:"generation_error,omitempty"`
}

// StoredSkillScore is one completed skill's rating inside SkillsMetadata.
type StoredSkillScore struct {
	StarRating   int       `json:"star_rating"`
	AverageScore float64   `json:"average_score"`
	CompletedAt  time.Time `json:"completed_at"`
}
