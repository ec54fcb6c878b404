package model

// Evaluation is the structured scoring result for one candidate response.
// Score is always within [1,10]; Error and RawLLMResponse are only set on
// the heuristic fallback path and are meant for logs, not end users.
type Evaluation struct {
	Score          float64  `json:"score"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Feedback       string   `json:"feedback"`
	Error          string   `json:"error,omitempty"`
	RawLLMResponse string   `json:"raw_llm_response,omitempty"`
}

// Public returns a copy safe to show end users: the fallback diagnostics
// (error tag and raw upstream text) stay in logs and storage only.
func (e Evaluation) Public() Evaluation {
	e.Error = ""
	e.RawLLMResponse = ""
	return e
}

// Summary is the aggregate result across all evaluated questions of one interview.
type Summary struct {
	OverallScore  float64  `json:"overall_score"`
	AverageScore  float64  `json:"average_score"`
	Count         int      `json:"count"`
	KeyStrengths  []string `json:"key_strengths"`
	KeyWeaknesses []string `json:"key_weaknesses"`
	Summary       string   `json:"summary"`
}
