package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/bhushananokar/interview-assistant/internal/groq"
	"github.com/bhushananokar/interview-assistant/pkg/model"
	"go.uber.org/zap"
)

// ChatClient is the gateway boundary to the hosted chat-completion API.
type ChatClient interface {
	Chat(ctx context.Context, req groq.ChatRequest) (string, error)
}

// Evaluator scores candidate responses. Every failure inside Evaluate
// degrades to a heuristic default; nothing propagates to the caller.
type Evaluator struct {
	client ChatClient
	logger *zap.Logger
}

func New(client ChatClient, logger *zap.Logger) *Evaluator {
	return &Evaluator{client: client, logger: logger}
}

const (
	defaultFeedback = "No detailed feedback available."

	fallbackFeedback = "The system was unable to perform a detailed analysis of this response. " +
		"Basic evaluation provided based on response length and structure."
)

func systemPrompt(questionType string) string {
	switch questionType {
	case "technical":
		return "You are an expert technical interviewer. Evaluate the candidate's response to a technical interview question, focusing on accuracy, depth of knowledge, problem-solving skills, and clarity."
	case "behavioral":
		return "You are an expert behavioral interviewer. Evaluate the candidate's response to a behavioral question, focusing on the STAR method (Situation, Task, Action, Result), communication skills, and relevant experience."
	case "job_specific":
		return "You are an expert job interviewer. Evaluate the candidate's response to a job-specific question, focusing on their understanding of the role, relevant experience, and alignment with job requirements."
	default:
		return "You are an expert interviewer. Evaluate the candidate's response to an interview question, focusing on content, clarity, and relevance."
	}
}

// Evaluate scores one candidate response on a 1-10 scale. jobDescription may
// be empty; questionType selects the evaluation lens and falls back to the
// general prompt for unknown values.
func (e *Evaluator) Evaluate(ctx context.Context, question, response, jobDescription, questionType string) model.Evaluation {
	var contextBlock string
	if jobDescription != "" {
		contextBlock = fmt.Sprintf("JOB DESCRIPTION:\n%s\n\n", jobDescription)
	}

	userContent := fmt.Sprintf("%sQUESTION:\n%s\n\nCANDIDATE RESPONSE:\n%s\n\n"+
		"Please evaluate this response on a scale of 1-10 and provide feedback. "+
		"Return a JSON object with the following structure:\n"+
		"{\n  \"score\": <score between 1-10>,\n  \"strengths\": [<list of strengths>],\n"+
		"  \"weaknesses\": [<list of areas for improvement>],\n  \"feedback\": \"<detailed feedback>\"\n}",
		contextBlock, question, response)

	req := groq.ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": systemPrompt(questionType)},
			{"role": "user", "content": userContent},
		},
		Temperature: 0.3,
	}

	content, err := e.client.Chat(ctx, req)
	if err != nil {
		e.logger.Error("llm evaluation failed",
			zap.String("question_type", questionType),
			zap.Error(err),
		)
		return defaultEvaluation(response, "")
	}

	if ev, ok := parseEvaluation(content); ok {
		return ev
	}

	e.logger.Error("failed to parse evaluation response",
		zap.String("question_type", questionType),
		zap.String("raw", content),
	)
	return defaultEvaluation(response, content)
}

// fencedBlock matches the first fenced code block, language tag optional.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\n(.*?)\\n```")

// parseEvaluation runs the first two stages of the parse chain: strict JSON,
// then re-parse of the first fenced code block. The heuristic default is the
// caller's third stage.
func parseEvaluation(content string) (model.Evaluation, bool) {
	if ev, ok := decodeEvaluation(content); ok {
		return ev, true
	}
	if m := fencedBlock.FindStringSubmatch(content); m != nil {
		if ev, ok := decodeEvaluation(m[1]); ok {
			return ev, true
		}
	}
	return model.Evaluation{}, false
}

// rawEvaluation is the closed set of recognized keys in an LLM reply.
// Pointers distinguish missing keys from zero values so normalize can back-fill.
type rawEvaluation struct {
	Score      *float64 `json:"score"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Feedback   *string  `json:"feedback"`
}

func decodeEvaluation(s string) (model.Evaluation, bool) {
	// a pointer target rejects a bare JSON null, which would otherwise
	// decode as an all-defaults evaluation
	var raw *rawEvaluation
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &raw); err != nil || raw == nil {
		return model.Evaluation{}, false
	}
	return normalize(*raw), true
}

// normalize back-fills defaults for missing keys and clamps the score into [1,10].
// A partially-correct payload is never rejected.
func normalize(raw rawEvaluation) model.Evaluation {
	ev := model.Evaluation{
		Score:      5,
		Strengths:  []string{},
		Weaknesses: []string{},
		Feedback:   defaultFeedback,
	}
	if raw.Score != nil {
		ev.Score = clampScore(*raw.Score)
	}
	if raw.Strengths != nil {
		ev.Strengths = raw.Strengths
	}
	if raw.Weaknesses != nil {
		ev.Weaknesses = raw.Weaknesses
	}
	if raw.Feedback != nil && *raw.Feedback != "" {
		ev.Feedback = *raw.Feedback
	}
	return ev
}

func clampScore(score float64) float64 {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// defaultEvaluation scores purely by whitespace-delimited word count.
// Used whenever the gateway errors or its output cannot be parsed.
func defaultEvaluation(response, raw string) model.Evaluation {
	words := len(strings.Fields(response))

	var score float64
	switch {
	case words < 10:
		score = 2
	case words < 25:
		score = 4
	case words < 50:
		score = 6
	case words < 100:
		score = 7
	default:
		score = 8
	}

	return model.Evaluation{
		Score:          score,
		Strengths:      []string{"Response provided"},
		Weaknesses:     []string{"Unable to perform detailed analysis"},
		Feedback:       fallbackFeedback,
		Error:          "LLM evaluation failed",
		RawLLMResponse: raw,
	}
}

// Item is one question/response pair for batch evaluation.
type Item struct {
	Question       string `json:"question"`
	Response       string `json:"response"`
	JobDescription string `json:"job_description,omitempty"`
	Type           string `json:"type,omitempty"`
}

// Record pairs an evaluated item with its result; the unit the aggregator consumes.
type Record struct {
	Question   string           `json:"question"`
	Response   string           `json:"response"`
	Type       string           `json:"type"`
	Evaluation model.Evaluation `json:"evaluation"`
}

// EvaluateMany evaluates items in order, one blocking call each. An item
// without its own job description uses jobDescriptionDefault; an item without
// a type is evaluated as general. Individual failures fall back independently.
func (e *Evaluator) EvaluateMany(ctx context.Context, items []Item, jobDescriptionDefault string) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		jobDescription := item.JobDescription
		if jobDescription == "" {
			jobDescription = jobDescriptionDefault
		}
		questionType := item.Type
		if questionType == "" {
			questionType = "general"
		}

		ev := e.Evaluate(ctx, item.Question, item.Response, jobDescription, questionType)
		records = append(records, Record{
			Question:   item.Question,
			Response:   item.Response,
			Type:       questionType,
			Evaluation: ev,
		})
	}
	return records
}
