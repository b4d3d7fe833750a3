package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"autoblog/internal/apperr"
	"autoblog/internal/core"
	"autoblog/internal/pipeline"
	"autoblog/internal/render"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// BlogsResponse wraps a page of blog links.
type BlogsResponse struct {
	Blogs []core.Link `json:"blogs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: time.Now().UTC()})
}

// generationHandler adapts one of the request-driven pipeline operations.
func (s *Server) generationHandler(run func(context.Context, core.GenerationRequest) (*core.GenerationResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := s.readGenerationRequest(w, r)
		if !ok {
			return
		}
		result, err := run(r.Context(), req)
		if err != nil {
			s.respondFailure(w, err)
			return
		}
		s.respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleGenerateDOCX(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readGenerationRequest(w, r)
	if !ok {
		return
	}

	result, err := s.blogs.GenerateWithArtifacts(r.Context(), req)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	if !result.Success || result.BlogPost == nil || len(result.BlogPost.DOCX) == 0 {
		msg := result.Error
		if msg == "" {
			msg = "Failed to generate DOCX document"
		}
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	s.respondFile(w, render.DOCXContentType, core.Slug(result.BlogPost.Title)+".docx", result.BlogPost.DOCX)
}

func (s *Server) handleDownloadDOCX(w http.ResponseWriter, r *http.Request) {
	s.download(w, r, "DOCX", ".docx", render.DOCXContentType, render.ToDOCX)
}

func (s *Server) handleDownloadHTML(w http.ResponseWriter, r *http.Request) {
	s.download(w, r, "HTML", ".html", render.HTMLContentType, render.ToHTML)
}

// download renders a client-supplied post into a file.
func (s *Server) download(w http.ResponseWriter, r *http.Request, kind, ext, contentType string, renderFn func(*core.GeneratedPost) ([]byte, error)) {
	body, err := readBody(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to generate %s document: %v", kind, err))
		return
	}
	post, err := decodeBlogPost(body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to generate %s document: %v", kind, err))
		return
	}

	data, err := renderFn(post)
	if err != nil {
		s.log.Error("Document render failed", "kind", kind, "title", post.Title, "error", err)
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to generate %s document: %v", kind, err))
		return
	}
	s.respondFile(w, contentType, core.Slug(post.Title)+ext, data)
}

func (s *Server) handleGenerateTrending(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.blogs.GenerateFromTrending(r.Context()))
}

func (s *Server) handleGenerateTrendingBatch(w http.ResponseWriter, r *http.Request) {
	count := pipeline.DefaultTrendingCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid count %q", raw))
			return
		}
		count = n
	}

	posts, err := s.blogs.GenerateTrending(r.Context(), count)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	if posts == nil {
		posts = []*core.GeneratedPost{}
	}
	s.respondJSON(w, http.StatusOK, posts)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, nonNil(s.blogs.AvailableTopics()))
}

func (s *Server) handleSuggestedTopics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, nonNil(s.blogs.SuggestedTopics(r.Context())))
}

func (s *Server) handleSeparatedLinks(w http.ResponseWriter, r *http.Request) {
	c := s.blogs.Links(r.Context())
	c.Resources = nonNil(c.Resources)
	c.Blogs = nonNil(c.Blogs)
	s.respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleLoadMoreBlogs(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		s.respondError(w, http.StatusBadRequest, "Invalid page number")
		return
	}

	blogs, err := s.blogs.LoadMoreBlogs(r.Context(), page)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, BlogsResponse{Blogs: nonNil(blogs)})
}

func (s *Server) handleTrendingTopics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, nonNil(s.blogs.TrendingTopics(r.Context())))
}

func (s *Server) handleRandomTopic(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.blogs.RandomTopic(r.Context()))
}

func (s *Server) handleTriggerWeekly(w http.ResponseWriter, r *http.Request) {
	if !s.requireScheduler(w) {
		return
	}
	s.respondJSON(w, http.StatusOK, s.sched.TriggerWeekly(r.Context()))
}

func (s *Server) handleTriggerDaily(w http.ResponseWriter, r *http.Request) {
	if !s.requireScheduler(w) {
		return
	}
	s.respondJSON(w, http.StatusOK, s.sched.TriggerDaily(r.Context()))
}

func (s *Server) handleSchedulerStatus(w http.ResponseWriter, r *http.Request) {
	if !s.requireScheduler(w) {
		return
	}
	s.respondJSON(w, http.StatusOK, s.sched.Status())
}

func (s *Server) requireScheduler(w http.ResponseWriter) bool {
	if s.sched == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Scheduler is not running")
		return false
	}
	return true
}

func (s *Server) readGenerationRequest(w http.ResponseWriter, r *http.Request) (core.GenerationRequest, bool) {
	body, err := readBody(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return core.GenerationRequest{}, false
	}
	req, err := decodeGenerationRequest(body)
	if err != nil {
		s.respondFailure(w, err)
		return core.GenerationRequest{}, false
	}
	return req, true
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

// respondFailure maps an operation error onto a status code.
func (s *Server) respondFailure(w http.ResponseWriter, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		s.respondError(w, http.StatusBadRequest, ve.Error())
		return
	}
	s.log.Error("Request failed", "error", err)
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Success: false, Error: message})
}

func (s *Server) respondFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.Error("Failed to write file response", "file", filename, "error", err)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
