// Package server provides the HTTP server for the Job Finder API.
// It includes handlers, middleware, routes, and DTOs separated from domain types.
package server

import (
	"github.com/maauso/jobfinder-api/internal/jsearch"
	"github.com/maauso/jobfinder-api/internal/savedjobs"
)

// Fallbacks shown when a listing lacks a description or highlights.
const (
	noDescription = "No data provided"
	noHighlight   = "N/A"
)

// SearchQuery holds the query string of GET /jobs/search.
type SearchQuery struct {
	// Query is the free text search, e.g. "React developer in Berlin".
	Query string `validate:"required"`
	// Page is the 1-based result page.
	Page int `validate:"min=0,max=100"`
	// NumPages is how many pages to return in one call.
	NumPages int `validate:"min=0,max=20"`
}

// SearchResponse is the HTTP response for the listing endpoints.
type SearchResponse struct {
	// Data holds the matching listings, never null.
	Data []jsearch.Job `json:"data"`
}

// JobDetailsResponse is a listing with display fallbacks applied.
type JobDetailsResponse struct {
	jsearch.Job
	// ShareURL is the canonical link to share for this job.
	ShareURL string `json:"share_url"`
}

// ShareResponse is the HTTP response for GET /jobs/{id}/share.
type ShareResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// SavedJobsResponse is the HTTP response for GET /saved-jobs.
type SavedJobsResponse struct {
	Data []savedjobs.JobRecord `json:"data"`
}

// SaveOrUpdateResponse is the HTTP response for PUT /saved-jobs/{id}.
type SaveOrUpdateResponse struct {
	// Replaced reports whether an existing entry with the same job_id was overwritten.
	Replaced bool `json:"replaced"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}

func newJobDetailsResponse(job jsearch.Job) JobDetailsResponse {
	if job.JobDescription == nil || *job.JobDescription == "" {
		desc := noDescription
		job.JobDescription = &desc
	}

	highlights := jsearch.JobHighlights{}
	if job.JobHighlights != nil {
		highlights = *job.JobHighlights
	}
	if len(highlights.Qualifications) == 0 {
		highlights.Qualifications = []string{noHighlight}
	}
	if len(highlights.Responsibilities) == 0 {
		highlights.Responsibilities = []string{noHighlight}
	}
	job.JobHighlights = &highlights

	return JobDetailsResponse{
		Job:      job,
		ShareURL: savedjobs.ShareURL(job.JobGoogleLink),
	}
}
