// Package savedjobs manages the user's saved job snapshots.
// Records are kept as one ordered collection in the document store.
package savedjobs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/maauso/jobfinder-api/internal/jsearch"
)

// DefaultShareURL is used when a listing has no Google link.
const DefaultShareURL = "https://careers.google.com/jobs/results"

// JobID is an opaque job identifier that may arrive as a JSON string or
// number. It re-encodes in the form it was decoded from.
type JobID struct {
	value   string
	numeric bool
}

// StringID returns a string-valued JobID.
func StringID(s string) JobID {
	return JobID{value: s}
}

// NumericID returns a number-valued JobID.
func NumericID(n int64) JobID {
	return JobID{value: strconv.FormatInt(n, 10), numeric: true}
}

// String returns the identifier text without quotes.
func (id JobID) String() string {
	return id.value
}

// IsZero reports whether the id is unset.
func (id JobID) IsZero() bool {
	return id.value == "" && !id.numeric
}

// Equal compares the identifier text, ignoring whether it was a number.
// "42" and 42 refer to the same job.
func (id JobID) Equal(other JobID) bool {
	return id.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (id JobID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *JobID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = JobID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("job_id must be a string or number: %w", err)
	}
	*id = JobID{value: n.String(), numeric: true}
	return nil
}

// JobHighlights holds the bullet lists shown on the job details tabs.
type JobHighlights struct {
	Responsibilities []string `json:"Responsibilities,omitempty"`
	Qualifications   []string `json:"Qualifications,omitempty"`
}

// JobRecord is the snapshot of a listing persisted when the user saves it.
type JobRecord struct {
	JobID             JobID         `json:"job_id,omitzero"`
	JobTitle          *string       `json:"job_title,omitempty"`
	JobDescription    *string       `json:"job_description,omitempty"`
	EmployerLogo      *string       `json:"employer_logo,omitempty"`
	EmployerName      *string       `json:"employer_name,omitempty"`
	JobCountry        *string       `json:"job_country,omitempty"`
	JobGoogleLink     *string       `json:"job_google_link,omitempty"`
	JobEmploymentType *string       `json:"job_employment_type,omitempty"`
	JobHighlights     JobHighlights `json:"job_highlights"`
}

// ErrJobIDRequired is returned when an operation needs a record's job_id.
var ErrJobIDRequired = errors.New("savedjobs: job_id is required")

// FromListing captures the saved subset of a remote listing.
func FromListing(job jsearch.Job) JobRecord {
	rec := JobRecord{
		JobTitle:          job.JobTitle,
		JobDescription:    job.JobDescription,
		EmployerLogo:      job.EmployerLogo,
		EmployerName:      job.EmployerName,
		JobCountry:        job.JobCountry,
		JobGoogleLink:     job.JobGoogleLink,
		JobEmploymentType: job.JobEmploymentType,
	}
	if job.JobID != "" {
		rec.JobID = StringID(job.JobID)
	}
	if job.JobHighlights != nil {
		rec.JobHighlights = JobHighlights{
			Responsibilities: job.JobHighlights.Responsibilities,
			Qualifications:   job.JobHighlights.Qualifications,
		}
	}
	return rec
}

// ShareURL returns the link to share for this job.
func (r JobRecord) ShareURL() string {
	return ShareURL(r.JobGoogleLink)
}

// ShareURL returns link, or DefaultShareURL when link is missing or empty.
func ShareURL(link *string) string {
	if link == nil || *link == "" {
		return DefaultShareURL
	}
	return *link
}

// ShareMessage formats the text posted when sharing a job link.
func ShareMessage(url string) string {
	return "Job Finder: " + url
}
