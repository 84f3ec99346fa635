package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/career-agent/internal/extraction"
	"github.com/jonathan/career-agent/internal/recommend"
	"github.com/jonathan/career-agent/internal/search"
	"github.com/jonathan/career-agent/internal/server/middleware"
	"github.com/jonathan/career-agent/internal/types"
)

// resumeField is the multipart field holding an uploaded résumé
const resumeField = "resume"

// SearchResponse is returned by the search and recommend endpoints
type SearchResponse struct {
	Query   string            `json:"query"`
	Results []types.JobResult `json:"results"`
}

// ExtractResponse is returned by /resume/extract
type ExtractResponse struct {
	Filename string               `json:"filename"`
	Format   types.DocumentFormat `json:"format"`
	Text     string               `json:"text"`
}

// OptimizeResponse is returned by /resume/optimize
type OptimizeResponse struct {
	OptimizedResume string `json:"optimized_resume"`
}

// optimizeBody distinguishes a missing key from an empty string
type optimizeBody struct {
	ResumeText     *string `json:"resume_text"`
	JobDescription *string `json:"job_description"`
}

// handleSearchJobs runs the search box flow: the query is used as typed
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearchRequest(w, r)
	if !ok {
		return
	}

	results, err := s.recommender.FromQuery(r.Context(), req.Query, req.MaxResults)
	if err != nil {
		s.failRequest(w, r, "job search", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SearchResponse{Query: search.DirectQuery(req.Query), Results: results})
}

// handleSearchJobsStream runs the search box flow and pushes each posting as
// an SSE "job" event as soon as it is parsed
func (s *Server) handleSearchJobsStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearchRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	results, err := s.recommender.Stream(r.Context(), search.DirectQuery(req.Query), req.MaxResults, func(p recommend.Progress) {
		if err := sse.WriteEvent("job", JobEvent{Index: p.Index, Total: p.Total, Result: p.Result}); err != nil {
			log.Printf("[%s] error writing SSE event: %v", middleware.RequestIDFromContext(r.Context()), err)
		}
	})
	if err != nil {
		log.Printf("[%s] job search failed: %v", middleware.RequestIDFromContext(r.Context()), err)
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(len(results))
}

// handleExtractResume returns the text of an uploaded résumé. Unsupported
// formats yield empty text, not an error.
func (s *Server) handleExtractResume(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	text, err := extraction.Extract(doc)
	if err != nil {
		s.failRequest(w, r, "resume extraction", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ExtractResponse{Filename: doc.Name, Format: doc.Format, Text: text})
}

// handleRecommendFromResume extracts an uploaded résumé and recommends
// postings with the résumé query
func (s *Server) handleRecommendFromResume(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	opts := types.RecommendOptions{MaxResults: s.maxResults}
	if raw := r.FormValue("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "max_results must be an integer")
			return
		}
		opts.MaxResults = n
	}
	if err := opts.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	text, err := extraction.Extract(doc)
	if err != nil {
		s.failRequest(w, r, "resume extraction", err)
		return
	}

	results, err := s.recommender.FromResume(r.Context(), text, opts.MaxResults)
	if err != nil {
		s.failRequest(w, r, "job recommendation", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SearchResponse{Query: search.ResumeQuery(text), Results: results})
}

// handleOptimize sends the résumé and job description to the model
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var body optimizeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.ResumeText == nil {
		s.errorResponse(w, http.StatusBadRequest, "resume_text is required")
		return
	}
	if body.JobDescription == nil {
		s.errorResponse(w, http.StatusBadRequest, "job_description is required")
		return
	}

	optimized, err := s.optimizer.Optimize(r.Context(), types.OptimizationRequest{
		ResumeText:     *body.ResumeText,
		JobDescription: *body.JobDescription,
	})
	if err != nil {
		s.failRequest(w, r, "resume optimization", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, OptimizeResponse{OptimizedResume: optimized})
}

// decodeSearchRequest parses and validates a SearchJobsRequest, writing the
// error response itself when it returns false
func (s *Server) decodeSearchRequest(w http.ResponseWriter, r *http.Request) (*types.SearchJobsRequest, bool) {
	var req types.SearchJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return nil, false
	}
	if req.MaxResults == 0 {
		req.MaxResults = s.maxResults
	}
	return &req, true
}

// readUpload reads the résumé file from a multipart form
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (types.UploadedDocument, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return types.UploadedDocument{}, false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return types.UploadedDocument{}, false
	}

	file, header, err := r.FormFile(resumeField)
	if err != nil {
		err := &ErrValidation{Field: resumeField, Message: "file is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return types.UploadedDocument{}, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return types.UploadedDocument{}, false
	}

	return extraction.NewDocument(header.Filename, data), true
}

// failRequest logs err and writes it with its mapped status
func (s *Server) failRequest(w http.ResponseWriter, r *http.Request, operation string, err error) {
	log.Printf("[%s] %s failed: %v", middleware.RequestIDFromContext(r.Context()), operation, err)
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
