package question

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/bhushananokar/interview-assistant/internal/groq"
	"go.uber.org/zap"
)

// ChatClient is the gateway boundary to the hosted chat-completion API.
type ChatClient interface {
	Chat(ctx context.Context, req groq.ChatRequest) (string, error)
}

// Generator produces skill-specific interview questions. Gateway failures and
// unparseable replies fall back to a canned question bank; generation never
// fails outward.
type Generator struct {
	client ChatClient
	logger *zap.Logger
}

func New(client ChatClient, logger *zap.Logger) *Generator {
	return &Generator{client: client, logger: logger}
}

// SkillQuestion is one generated question tagged with the skill it assesses.
type SkillQuestion struct {
	Question   string `json:"question"`
	Skill      string `json:"skill"`
	Type       string `json:"question_type"`
	SkillIndex int    `json:"skill_index"`
}

// SkillMeta records which slice of the question sequence belongs to one skill.
type SkillMeta struct {
	QuestionCount int `json:"question_count"`
	StartIndex    int `json:"start_index"`
	EndIndex      int `json:"end_index"`
}

// AssessmentSet is the full question set for one interview.
type AssessmentSet struct {
	Questions         []SkillQuestion      `json:"questions"`
	SkillsAssessed    []string             `json:"skills_assessed"`
	QuestionsPerSkill int                  `json:"questions_per_skill"`
	TotalQuestions    int                  `json:"total_questions"`
	Metadata          map[string]SkillMeta `json:"skills_metadata"`
}

// ParseSkills splits a comma-separated skills string, trims whitespace, and
// drops case-insensitive duplicates while preserving order. Empty input maps
// to a single generic entry.
func ParseSkills(input string) []string {
	fields := strings.Split(input, ",")

	seen := make(map[string]bool, len(fields))
	skills := make([]string, 0, len(fields))
	for _, f := range fields {
		skill := strings.TrimSpace(f)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, skill)
	}

	if len(skills) == 0 {
		return []string{"general skills"}
	}
	return skills
}

// JobDescription synthesizes a job-description context block from the skill list.
func JobDescription(skills []string) string {
	bullets := make([]string, len(skills))
	for i, skill := range skills {
		bullets[i] = "- " + skill
	}

	return fmt.Sprintf(`Position requiring expertise in %s.

The ideal candidate should demonstrate proficiency in each of these areas:
%s

This role involves practical application of these skills in real-world scenarios.
Candidates will be assessed on their depth of knowledge, problem-solving abilities,
and hands-on experience with each skill area.`,
		strings.Join(skills, ", "), strings.Join(bullets, "\n"))
}

// ForSkills generates n questions for every parsed skill, in input order.
func (g *Generator) ForSkills(ctx context.Context, skillsInput, jobDescription string, perSkill int) *AssessmentSet {
	skills := ParseSkills(skillsInput)

	set := &AssessmentSet{
		SkillsAssessed:    skills,
		QuestionsPerSkill: perSkill,
		Metadata:          make(map[string]SkillMeta, len(skills)),
	}

	for _, skill := range skills {
		questions := g.ForSkill(ctx, skill, jobDescription, perSkill)

		start := len(set.Questions)
		set.Questions = append(set.Questions, questions...)
		set.Metadata[skill] = SkillMeta{
			QuestionCount: len(questions),
			StartIndex:    start,
			EndIndex:      len(set.Questions),
		}
	}

	set.TotalQuestions = len(set.Questions)
	return set
}

// ForSkill generates n questions assessing one skill.
func (g *Generator) ForSkill(ctx context.Context, skill, jobDescription string, n int) []SkillQuestion {
	systemContent := fmt.Sprintf(`You are an expert interviewer specializing in assessing specific skills.

Your task is to generate %d focused questions that specifically assess the skill: %q

Analyze the skill to understand its domain and generate questions that:
1. Test practical knowledge and application of this specific skill
2. Use appropriate terminology and concepts for this skill's domain
3. Range from basic to advanced aspects of this skill
4. Focus on real-world scenarios where this skill is applied
5. Allow assessment of the candidate's proficiency level in this skill

Generate questions that will help determine if the candidate is a beginner, intermediate, or expert in this specific skill.`, n, skill)

	userContent := fmt.Sprintf(`Generate exactly %d questions to assess the skill: %q

Job context: %s

Requirements:
1. Each question should specifically test %q - not general knowledge
2. Questions should help determine proficiency level (beginner/intermediate/expert)
3. Use domain-appropriate language and terminology for %q
4. Focus on practical application and real-world scenarios

Return ONLY a JSON array of question strings:
["question 1", "question 2", "question 3"]`, n, skill, jobDescription, skill, skill)

	req := groq.ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": systemContent},
			{"role": "user", "content": userContent},
		},
		Temperature: 0.7,
	}

	content, err := g.client.Chat(ctx, req)
	if err != nil {
		g.logger.Error("question generation failed",
			zap.String("skill", skill),
			zap.Error(err),
		)
		return fallbackQuestions(skill, n)
	}

	questions, ok := parseQuestionList(content)
	if !ok || len(questions) < n {
		g.logger.Warn("could not parse generated questions, using fallback",
			zap.String("skill", skill),
			zap.String("raw", content),
		)
		return fallbackQuestions(skill, n)
	}

	return tagQuestions(questions[:n], skill)
}

// fencedBlock matches the first fenced code block, language tag optional.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\n(.*?)\\n```")

// bulletLine matches numbered or bulleted list items.
var bulletLine = regexp.MustCompile(`^(\d+\.|\*|-|•)\s+`)

// parseQuestionList recovers a list of question strings from an LLM reply:
// strict JSON array first, then the first fenced code block, then a scan for
// numbered or bulleted lines that look like questions.
func parseQuestionList(content string) ([]string, bool) {
	if qs, ok := decodeStringArray(content); ok {
		return qs, true
	}
	if m := fencedBlock.FindStringSubmatch(content); m != nil {
		if qs, ok := decodeStringArray(m[1]); ok {
			return qs, true
		}
	}

	var questions []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !bulletLine.MatchString(line) {
			continue
		}
		q := strings.TrimSpace(bulletLine.ReplaceAllString(line, ""))
		if q != "" && strings.Contains(q, "?") {
			questions = append(questions, q)
		}
	}
	if len(questions) > 0 {
		return questions, true
	}

	return nil, false
}

func decodeStringArray(s string) ([]string, bool) {
	var out []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &out); err != nil {
		return nil, false
	}
	return out, true
}

// fallbackQuestions cycles a fixed bank when generation fails.
func fallbackQuestions(skill string, n int) []SkillQuestion {
	bank := []string{
		fmt.Sprintf("How would you rate your proficiency in %s and why?", skill),
		fmt.Sprintf("Describe a challenging situation where you had to use your %s skills.", skill),
		fmt.Sprintf("What are the most important aspects to consider when applying %s?", skill),
		fmt.Sprintf("How do you stay updated with best practices in %s?", skill),
		fmt.Sprintf("Tell me about a project where %s was crucial to success.", skill),
	}

	questions := make([]string, n)
	for i := 0; i < n; i++ {
		questions[i] = bank[i%len(bank)]
	}
	return tagQuestions(questions, skill)
}

func tagQuestions(questions []string, skill string) []SkillQuestion {
	tagged := make([]SkillQuestion, len(questions))
	for i, q := range questions {
		tagged[i] = SkillQuestion{
			Question:   q,
			Skill:      skill,
			Type:       "skill_specific",
			SkillIndex: i + 1,
		}
	}
	return tagged
}
