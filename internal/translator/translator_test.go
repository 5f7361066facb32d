package translator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/medquery/medquery/internal/config"
	"github.com/medquery/medquery/internal/translator"
)

type stubGenerator struct {
	out   string
	err   error
	parts []string
}

func (s *stubGenerator) Generate(_ context.Context, parts []string) (string, error) {
	s.parts = parts
	return s.out, s.err
}

func (s *stubGenerator) ListModels(context.Context) ([]string, error) {
	return []string{"stub-model"}, nil
}

func (s *stubGenerator) Provider() string { return "stub" }
func (s *stubGenerator) Model() string    { return "stub-model" }

func TestCleanSQL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```sql SELECT 1; ```", "SELECT 1;"},
		{"```sql\nSELECT name, age FROM PATIENT WHERE age > 60;\n```", "SELECT name, age FROM PATIENT WHERE age > 60;"},
		{"```\nSELECT id FROM PATIENT\n```", "SELECT id FROM PATIENT"},
		{"  SELECT 1;  \n", "SELECT 1;"},
		{"SELECT name FROM PATIENT WHERE condition = 'flu';", "SELECT name FROM PATIENT WHERE condition = 'flu';"},
		{"```sql```", ""},
	}
	for _, tt := range tests {
		if got := translator.CleanSQL(tt.in); got != tt.want {
			t.Errorf("CleanSQL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTranslateSendsPromptThenQuestion(t *testing.T) {
	gen := &stubGenerator{out: "```sql\nSELECT name, age FROM PATIENT WHERE age > 60;\n```"}
	tr := translator.New(gen)

	question := "Get the names and ages of all patients older than 60"
	sql, err := tr.Translate(context.Background(), question)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if sql != "SELECT name, age FROM PATIENT WHERE age > 60;" {
		t.Errorf("sql = %q", sql)
	}
	if len(gen.parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(gen.parts))
	}
	if gen.parts[0] != translator.PromptTemplate {
		t.Error("first part should be the prompt template")
	}
	if gen.parts[1] != question {
		t.Errorf("second part = %q, want question", gen.parts[1])
	}
}

func TestTranslateWrapsModelError(t *testing.T) {
	tr := translator.New(&stubGenerator{err: errors.New("429 quota exceeded")})

	_, err := tr.Translate(context.Background(), "count patients")
	if !errors.Is(err, translator.ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
	if !strings.Contains(err.Error(), "429 quota exceeded") {
		t.Errorf("error %q should contain the underlying failure", err)
	}
	if !strings.HasPrefix(err.Error(), "error generating response: ") {
		t.Errorf("error = %q", err)
	}
}

func TestTranslateEmptyOutput(t *testing.T) {
	tr := translator.New(&stubGenerator{out: "```sql\n```"})

	if _, err := tr.Translate(context.Background(), "count patients"); !errors.Is(err, translator.ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
}

func TestPromptTemplateDescribesSchema(t *testing.T) {
	for _, col := range []string{
		"Table: PATIENT", "id", "name", "age", "gender", "condition",
		"admitted_date", "lab_results_pending", "emergency_visit_today", "SQLite",
	} {
		if !strings.Contains(translator.PromptTemplate, col) {
			t.Errorf("prompt template missing %q", col)
		}
	}
}

func TestNewGenerator(t *testing.T) {
	gen, err := translator.NewGenerator(config.LLMConfig{
		Provider: config.ProviderAnthropic, Model: "claude-sonnet-4-6", AnthropicAPIKey: "k",
	})
	if err != nil {
		t.Fatalf("NewGenerator(anthropic) error = %v", err)
	}
	if gen.Provider() != "anthropic" || gen.Model() != "claude-sonnet-4-6" {
		t.Errorf("generator = %s/%s", gen.Provider(), gen.Model())
	}

	gen, err = translator.NewGenerator(config.LLMConfig{
		Provider: config.ProviderOpenAI, Model: "gpt-4o", OpenAIAPIKey: "k",
	})
	if err != nil {
		t.Fatalf("NewGenerator(openai) error = %v", err)
	}
	if gen.Provider() != "openai" {
		t.Errorf("provider = %s", gen.Provider())
	}
}

func TestNewGeneratorInvalidModel(t *testing.T) {
	cases := []config.LLMConfig{
		{Provider: config.ProviderAnthropic, Model: "  ", AnthropicAPIKey: "k"},
		{Provider: "gemini", Model: "gemini-1.5-pro"},
	}
	for _, cfg := range cases {
		_, err := translator.NewGenerator(cfg)
		if !errors.Is(err, translator.ErrModelInit) {
			t.Errorf("NewGenerator(%+v) error = %v, want ErrModelInit", cfg, err)
		}
	}
}
