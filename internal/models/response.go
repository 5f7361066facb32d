package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// QueryResponse is returned by POST /post/query
type QueryResponse struct {
	Query   string  `json:"query"`
	Results [][]any `json:"results"`
}
