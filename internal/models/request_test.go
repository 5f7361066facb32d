package models_test

import (
	"errors"
	"testing"

	"github.com/medquery/medquery/internal/models"
)

func TestDecodeQueryRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{"empty body", "", "", models.ErrNoInput},
		{"whitespace", "  \n", "", models.ErrNoInput},
		{"null", "null", "", models.ErrNoInput},
		{"empty object", "{}", "", models.ErrNoInput},
		{"malformed", `{"question":`, "", models.ErrNoInput},
		{"array", `["question"]`, "", models.ErrNoInput},
		{"no question", `{"prompt": "x"}`, "", models.ErrQuestionMissing},
		{"empty question", `{"question": ""}`, "", models.ErrQuestionMissing},
		{"null question", `{"question": null}`, "", models.ErrQuestionMissing},
		{"numeric question", `{"question": 42}`, "", models.ErrQuestionMissing},
		{"ok", `{"question": "How many patients are there?"}`, "How many patients are there?", nil},
		{"extra fields", `{"question": "list patients", "lang": "en"}`, "list patients", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := models.DecodeQueryRequest([]byte(tt.body))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DecodeQueryRequest(%q) error = %v, want %v", tt.body, err, tt.wantErr)
			}
			if req.Question != tt.want {
				t.Errorf("Question = %q, want %q", req.Question, tt.want)
			}
		})
	}
}
