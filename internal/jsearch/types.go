// Package jsearch provides an HTTP client for the JSearch job-listing API.
package jsearch

// Job is a single listing as returned by the API.
// Every field may be missing; pointers distinguish "absent" from "empty".
type Job struct {
	JobID             string         `json:"job_id"`
	EmployerName      *string        `json:"employer_name,omitempty"`
	EmployerLogo      *string        `json:"employer_logo,omitempty"`
	EmployerWebsite   *string        `json:"employer_website,omitempty"`
	JobPublisher      *string        `json:"job_publisher,omitempty"`
	JobEmploymentType *string        `json:"job_employment_type,omitempty"`
	JobTitle          *string        `json:"job_title,omitempty"`
	JobApplyLink      *string        `json:"job_apply_link,omitempty"`
	JobDescription    *string        `json:"job_description,omitempty"`
	JobIsRemote       bool           `json:"job_is_remote"`
	JobPostedAt       *string        `json:"job_posted_at_datetime_utc,omitempty"`
	JobCity           *string        `json:"job_city,omitempty"`
	JobState          *string        `json:"job_state,omitempty"`
	JobCountry        *string        `json:"job_country,omitempty"`
	JobGoogleLink     *string        `json:"job_google_link,omitempty"`
	JobHighlights     *JobHighlights `json:"job_highlights,omitempty"`
}

// JobHighlights groups the bullet lists extracted from a listing.
type JobHighlights struct {
	Qualifications   []string `json:"Qualifications,omitempty"`
	Responsibilities []string `json:"Responsibilities,omitempty"`
	Benefits         []string `json:"Benefits,omitempty"`
}

// SearchParams are the query parameters for a search request.
type SearchParams struct {
	Query    string // Free text, e.g. "React developer in Berlin"
	Page     int    // 1-based page (default: 1)
	NumPages int    // Pages to return in one call (default: 1)
}

// listResponse is the envelope shared by the /search and /job-details endpoints.
type listResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
	Data      []Job  `json:"data"`
	Error     *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}
