package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	ErrNoInput         = errors.New("No input data provided")
	ErrQuestionMissing = errors.New("The 'question' field is missing")
)

// QueryRequest for POST /post/query
type QueryRequest struct {
	Question string `json:"question"`
}

// DecodeQueryRequest parses body into a QueryRequest. Empty, null, malformed and
// non-object bodies, and {} all count as no input; a question that is absent, not a
// string or empty counts as missing.
func DecodeQueryRequest(body []byte) (QueryRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return QueryRequest{}, ErrNoInput
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return QueryRequest{}, ErrNoInput
	}

	raw, ok := fields["question"]
	if !ok {
		return QueryRequest{}, ErrQuestionMissing
	}
	var req QueryRequest
	if err := json.Unmarshal(raw, &req.Question); err != nil || req.Question == "" {
		return QueryRequest{}, ErrQuestionMissing
	}
	return req, nil
}
