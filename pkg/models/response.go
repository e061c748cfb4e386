package models

import "time"

// CreateJobDescriptionResponse is returned after a successful insert
type CreateJobDescriptionResponse struct {
	Success bool            `json:"success"`
	Data    *JobDescription `json:"data"`
}

// ListJobDescriptionsResponse wraps the caller's records, newest first
type ListJobDescriptionsResponse struct {
	Data []*JobDescription `json:"data"`
}

// JobDescriptionStatsResponse wraps the per-user aggregation
type JobDescriptionStatsResponse struct {
	Data *JobDescriptionStats `json:"data"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response. Details carries the raw
// underlying cause for store failures and is empty otherwise.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
