package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/jobfinder-api/internal/docstore"
	"github.com/maauso/jobfinder-api/internal/jsearch"
	"github.com/maauso/jobfinder-api/internal/savedjobs"
)

const (
	defaultPopularQuery = "React developer"
	defaultNearbyQuery  = "React Native developer"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	saved        *savedjobs.Service
	listings     jsearch.Client
	validator    *validator.Validate
	logger       *slog.Logger
	popularQuery string
	nearbyQuery  string
}

// HandlerOption is a function that configures a Handlers instance.
type HandlerOption func(*Handlers)

// WithPopularQuery sets the search text behind GET /jobs/popular.
func WithPopularQuery(q string) HandlerOption {
	return func(h *Handlers) {
		if q != "" {
			h.popularQuery = q
		}
	}
}

// WithNearbyQuery sets the search text behind GET /jobs/nearby.
func WithNearbyQuery(q string) HandlerOption {
	return func(h *Handlers) {
		if q != "" {
			h.nearbyQuery = q
		}
	}
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(saved *savedjobs.Service, listings jsearch.Client, logger *slog.Logger, opts ...HandlerOption) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{
		saved:        saved,
		listings:     listings,
		validator:    validator.New(),
		logger:       logger,
		popularQuery: defaultPopularQuery,
		nearbyQuery:  defaultNearbyQuery,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// SearchJobs handles GET /jobs/search requests.
func (h *Handlers) SearchJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("query") == "" {
		writeError(w, http.StatusBadRequest, "query is required", "MISSING_QUERY")
		return
	}

	params := SearchQuery{Query: q.Get("query")}
	var err error
	if params.Page, err = intParam(q.Get("page")); err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer", "INVALID_QUERY")
		return
	}
	if params.NumPages, err = intParam(q.Get("num_pages")); err != nil {
		writeError(w, http.StatusBadRequest, "num_pages must be an integer", "INVALID_QUERY")
		return
	}

	if err := h.validator.Struct(params); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	h.search(w, r, jsearch.SearchParams{
		Query:    params.Query,
		Page:     params.Page,
		NumPages: params.NumPages,
	})
}

// PopularJobs handles GET /jobs/popular requests.
func (h *Handlers) PopularJobs(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, jsearch.SearchParams{Query: h.popularQuery, Page: 1, NumPages: 1})
}

// NearbyJobs handles GET /jobs/nearby requests.
func (h *Handlers) NearbyJobs(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, jsearch.SearchParams{Query: h.nearbyQuery, Page: 1, NumPages: 1})
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request, params jsearch.SearchParams) {
	jobs, err := h.listings.Search(r.Context(), params)
	if err != nil {
		h.logger.Error("job search failed",
			slog.String("query", params.Query),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, err.Error(), "UPSTREAM_FAILED")
		return
	}
	if jobs == nil {
		jobs = []jsearch.Job{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Data: jobs})
}

// GetJob handles GET /jobs/{id} requests.
func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	listing, ok := h.lookupJob(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, newJobDetailsResponse(listing))
}

// ShareJob handles GET /jobs/{id}/share requests.
func (h *Handlers) ShareJob(w http.ResponseWriter, r *http.Request) {
	listing, ok := h.lookupJob(w, r)
	if !ok {
		return
	}

	url := savedjobs.ShareURL(listing.JobGoogleLink)
	writeJSON(w, http.StatusOK, ShareResponse{
		URL:     url,
		Message: savedjobs.ShareMessage(url),
	})
}

// SaveListing handles POST /jobs/{id}/save requests.
// It snapshots the listing's current details into the saved jobs collection.
func (h *Handlers) SaveListing(w http.ResponseWriter, r *http.Request) {
	listing, ok := h.lookupJob(w, r)
	if !ok {
		return
	}

	rec := savedjobs.FromListing(listing)
	if rec.JobID.IsZero() {
		rec.JobID = savedjobs.StringID(r.PathValue("id"))
	}

	if err := h.saved.Save(r.Context(), rec); err != nil {
		h.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// ListSavedJobs handles GET /saved-jobs requests.
func (h *Handlers) ListSavedJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.saved.List(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SavedJobsResponse{Data: jobs})
}

// SaveJob handles POST /saved-jobs requests.
func (h *Handlers) SaveJob(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decodeRecord(w, r)
	if !ok {
		return
	}

	if err := h.saved.Save(r.Context(), rec); err != nil {
		h.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// SaveOrUpdateJob handles PUT /saved-jobs/{id} requests.
// The path id wins over any job_id in the body.
func (h *Handlers) SaveOrUpdateJob(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decodeRecord(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if !rec.JobID.Equal(savedjobs.StringID(id)) {
		rec.JobID = savedjobs.StringID(id)
	}

	replaced, err := h.saved.SaveOrUpdate(r.Context(), rec)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SaveOrUpdateResponse{Replaced: replaced})
}

// ClearSavedJobs handles DELETE /saved-jobs requests.
func (h *Handlers) ClearSavedJobs(w http.ResponseWriter, r *http.Request) {
	if err := h.saved.Clear(r.Context()); err != nil {
		h.writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lookupJob fetches the listing named by the {id} path value. On failure it
// writes the error response and returns false.
func (h *Handlers) lookupJob(w http.ResponseWriter, r *http.Request) (jsearch.Job, bool) {
	jobID := r.PathValue("id")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "job ID is required", "MISSING_JOB_ID")
		return jsearch.Job{}, false
	}

	jobs, err := h.listings.Details(r.Context(), jobID)
	if err != nil {
		h.logger.Error("failed to fetch job details",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, err.Error(), "UPSTREAM_FAILED")
		return jsearch.Job{}, false
	}
	if len(jobs) == 0 {
		writeError(w, http.StatusNotFound, "job not found", "JOB_NOT_FOUND")
		return jsearch.Job{}, false
	}

	return jobs[0], true
}

func (h *Handlers) decodeRecord(w http.ResponseWriter, r *http.Request) (savedjobs.JobRecord, bool) {
	var rec savedjobs.JobRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return rec, false
	}
	if rec.JobID.IsZero() && r.PathValue("id") == "" {
		writeError(w, http.StatusBadRequest, savedjobs.ErrJobIDRequired.Error(), "VALIDATION_ERROR")
		return rec, false
	}
	return rec, true
}

// writeStoreError maps document store failures to error responses.
func (h *Handlers) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case docstore.IsReadError(err):
		writeError(w, http.StatusInternalServerError, err.Error(), "STORAGE_READ_FAILED")
	case docstore.IsWriteError(err):
		writeError(w, http.StatusInternalServerError, err.Error(), "STORAGE_WRITE_FAILED")
	case errors.Is(err, docstore.ErrEncode):
		writeError(w, http.StatusInternalServerError, err.Error(), "ENCODE_FAILED")
	case errors.Is(err, savedjobs.ErrJobIDRequired):
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		h.logger.Error("unexpected store error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// intParam parses an optional integer query parameter; empty means zero.
func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
