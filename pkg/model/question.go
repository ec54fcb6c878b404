package model

import "time"

type Question struct {
	ID          int64       `json:"id" db:"id"`
	InterviewID int64       `json:"interview_id" db:"interview_id"`
	Question    string      `json:"question" db:"question"`
	Type        string      `json:"question_type" db:"question_type"`
	Skill       string      `json:"skill" db:"skill"`
	Response    *string     `json:"response" db:"response"`
	Evaluation  *Evaluation `json:"evaluation" db:"evaluation"`
	Score       *float64    `json:"score" db:"score"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

type SubmitResponseReq struct {
	QuestionID int64  `json:"question_id" binding:"required"`
	Response   string `json:"response" binding:"required"`
}
