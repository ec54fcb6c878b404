package question

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bhushananokar/interview-assistant/internal/groq"
	"go.uber.org/zap"
)

// fakeChat returns a canned reply or error for every Chat call.
type fakeChat struct {
	reply string
	err   error
	calls int
}

func (f *fakeChat) Chat(_ context.Context, _ groq.ChatRequest) (string, error) {
	f.calls++
	return f.reply, f.err
}

// TestParseSkills tests splitting, trimming, dedupe, and the empty-input default
func TestParseSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple list",
			input: "Go, SQL, Docker",
			want:  []string{"Go", "SQL", "Docker"},
		},
		{
			name:  "case-insensitive dedupe keeps first casing",
			input: "python, Python, PYTHON, sql",
			want:  []string{"python", "sql"},
		},
		{
			name:  "empty fields skipped",
			input: "Go,, ,SQL,",
			want:  []string{"Go", "SQL"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{"general skills"},
		},
		{
			name:  "whitespace only",
			input: "  ,  ,  ",
			want:  []string{"general skills"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSkills(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSkills(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseQuestionList tests the three-stage recovery chain
func TestParseQuestionList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantOK  bool
	}{
		{
			name:    "strict JSON array",
			content: `["What is X?", "How does Y work?"]`,
			want:    []string{"What is X?", "How does Y work?"},
			wantOK:  true,
		},
		{
			name:    "fenced code block",
			content: "Sure:\n```json\n[\"What is X?\", \"How does Y work?\"]\n```\nDone.",
			want:    []string{"What is X?", "How does Y work?"},
			wantOK:  true,
		},
		{
			name:    "numbered lines",
			content: "1. What is X?\n2. How does Y work?\nNot a question line",
			want:    []string{"What is X?", "How does Y work?"},
			wantOK:  true,
		},
		{
			name:    "bulleted lines",
			content: "- What is X?\n* How does Y work?",
			want:    []string{"What is X?", "How does Y work?"},
			wantOK:  true,
		},
		{
			name:    "bulleted lines without question marks dropped",
			content: "- This is a statement\n- Another statement",
			wantOK:  false,
		},
		{
			name:    "plain prose",
			content: "I could not generate questions this time.",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseQuestionList(tt.content)
			if ok != tt.wantOK {
				t.Fatalf("parseQuestionList() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseQuestionList() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestForSkill_Success tests tagging of generated questions
func TestForSkill_Success(t *testing.T) {
	client := &fakeChat{reply: `["What is a goroutine?", "Explain channels?", "What is select?"]`}
	g := New(client, zap.NewNop())

	questions := g.ForSkill(context.Background(), "Go", "jd", 3)

	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
	for i, q := range questions {
		if q.Skill != "Go" {
			t.Errorf("questions[%d].Skill = %q, want Go", i, q.Skill)
		}
		if q.Type != "skill_specific" {
			t.Errorf("questions[%d].Type = %q, want skill_specific", i, q.Type)
		}
		if q.SkillIndex != i+1 {
			t.Errorf("questions[%d].SkillIndex = %d, want %d", i, q.SkillIndex, i+1)
		}
	}
}

// TestForSkill_Truncates tests that extra generated questions are dropped
func TestForSkill_Truncates(t *testing.T) {
	client := &fakeChat{reply: `["q1?", "q2?", "q3?", "q4?", "q5?"]`}
	g := New(client, zap.NewNop())

	questions := g.ForSkill(context.Background(), "Go", "jd", 2)

	if len(questions) != 2 {
		t.Errorf("got %d questions, want 2", len(questions))
	}
}

// TestForSkill_Fallback tests the canned bank on gateway error and short replies
func TestForSkill_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeChat
	}{
		{name: "gateway error", client: &fakeChat{err: errors.New("timeout")}},
		{name: "unparseable reply", client: &fakeChat{reply: "no questions here"}},
		{name: "too few questions", client: &fakeChat{reply: `["only one?"]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.client, zap.NewNop())

			questions := g.ForSkill(context.Background(), "Docker", "jd", 3)

			if len(questions) != 3 {
				t.Fatalf("got %d questions, want 3", len(questions))
			}
			if !strings.Contains(questions[0].Question, "Docker") {
				t.Errorf("fallback question missing skill name: %q", questions[0].Question)
			}
			if questions[0].Type != "skill_specific" {
				t.Errorf("Type = %q, want skill_specific", questions[0].Type)
			}
		})
	}
}

// TestForSkill_FallbackCycles tests that the bank wraps when n exceeds its size
func TestForSkill_FallbackCycles(t *testing.T) {
	questions := fallbackQuestions("Go", 7)

	if len(questions) != 7 {
		t.Fatalf("got %d questions, want 7", len(questions))
	}
	if questions[5].Question != questions[0].Question {
		t.Errorf("questions[5] = %q, want the bank to cycle back to %q", questions[5].Question, questions[0].Question)
	}
}

// TestForSkills tests per-skill metadata and question ordering
func TestForSkills(t *testing.T) {
	client := &fakeChat{reply: `["q1?", "q2?"]`}
	g := New(client, zap.NewNop())

	set := g.ForSkills(context.Background(), "Go, SQL", "jd", 2)

	if !reflect.DeepEqual(set.SkillsAssessed, []string{"Go", "SQL"}) {
		t.Errorf("SkillsAssessed = %v, want [Go SQL]", set.SkillsAssessed)
	}
	if set.TotalQuestions != 4 {
		t.Errorf("TotalQuestions = %d, want 4", set.TotalQuestions)
	}
	if set.QuestionsPerSkill != 2 {
		t.Errorf("QuestionsPerSkill = %d, want 2", set.QuestionsPerSkill)
	}
	if client.calls != 2 {
		t.Errorf("chat calls = %d, want one per skill", client.calls)
	}

	goMeta := set.Metadata["Go"]
	if goMeta.StartIndex != 0 || goMeta.EndIndex != 2 || goMeta.QuestionCount != 2 {
		t.Errorf("Go metadata = %+v, want slice [0,2)", goMeta)
	}
	sqlMeta := set.Metadata["SQL"]
	if sqlMeta.StartIndex != 2 || sqlMeta.EndIndex != 4 {
		t.Errorf("SQL metadata = %+v, want slice [2,4)", sqlMeta)
	}
	if set.Questions[2].Skill != "SQL" {
		t.Errorf("Questions[2].Skill = %q, want SQL", set.Questions[2].Skill)
	}
}

// TestJobDescription tests the synthesized context block
func TestJobDescription(t *testing.T) {
	jd := JobDescription([]string{"Go", "SQL"})

	if !strings.Contains(jd, "Go, SQL") {
		t.Errorf("job description missing joined skill list: %q", jd)
	}
	if !strings.Contains(jd, "- Go\n- SQL") {
		t.Errorf("job description missing skill bullets: %q", jd)
	}
}
