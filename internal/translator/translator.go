// Package translator turns natural-language questions about patients into SQL by
// prompting a hosted model with a fixed schema description.
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medquery/medquery/internal/observability"
	"github.com/rs/zerolog/log"
)

// ErrGeneration wraps every failure of the model call.
var ErrGeneration = errors.New("error generating response")

// Translator pairs the prompt template with a generator. It holds no mutable state.
type Translator struct {
	gen    Generator
	prompt string
}

func New(gen Generator) *Translator {
	return &Translator{gen: gen, prompt: PromptTemplate}
}

// Model reports the model ID behind the translator.
func (t *Translator) Model() string { return t.gen.Model() }

// Translate sends [prompt, question] to the model and returns the bare SQL it produced.
// The SQL is not checked against the schema.
func (t *Translator) Translate(ctx context.Context, question string) (string, error) {
	start := time.Now()
	text, err := t.gen.Generate(ctx, []string{t.prompt, question})
	// Empty output is a generation failure. Executing "" would succeed with no rows and
	// hide the fault from the caller.
	if err == nil && CleanSQL(text) == "" {
		err = errors.New("model returned empty SQL")
	}
	observability.ObserveTranslation(t.gen.Provider(), err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	sql := CleanSQL(text)
	log.Debug().
		Str("provider", t.gen.Provider()).
		Str("model", t.gen.Model()).
		Dur("elapsed", time.Since(start)).
		Int("sql_len", len(sql)).
		Msg("question translated")
	return sql, nil
}

// CleanSQL removes code-fence markers anywhere in text and trims surrounding whitespace.
func CleanSQL(text string) string {
	text = strings.ReplaceAll(text, "```sql", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
