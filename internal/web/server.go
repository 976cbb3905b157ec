// Package web serves the resource center JSON API: content queries,
// related-resource lookups, the quiz, and lead capture.
package web

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/elevara-labs/resourcehub/internal/content"
	"github.com/elevara-labs/resourcehub/internal/leads"
	"github.com/elevara-labs/resourcehub/internal/logger"
	"github.com/elevara-labs/resourcehub/internal/quiz"
)

// Server holds the API's dependencies. The repository is swappable at
// runtime so watch mode can publish a fresh snapshot without a restart.
type Server struct {
	mu        sync.RWMutex
	repo      *content.Repository
	quiz      *quiz.Definition
	submitter leads.Submitter
	log       logger.Logger
	version   string
}

// NewServer builds a Server. submitter may be nil, which disables lead
// capture; a nil log discards.
func NewServer(repo *content.Repository, submitter leads.Submitter, log logger.Logger, version string) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		repo:      repo,
		quiz:      quiz.Default(),
		submitter: submitter,
		log:       log,
		version:   version,
	}
}

// SetRepository atomically swaps the content snapshot. In-flight requests
// keep the snapshot they already resolved.
func (s *Server) SetRepository(repo *content.Repository) {
	s.mu.Lock()
	s.repo = repo
	s.mu.Unlock()
}

func (s *Server) repository() *content.Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo
}

// Handler returns the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/content", s.handleContent)
	mux.HandleFunc("/api/content/", s.handleContentBySlug) // /api/content/{type}/{slug}
	mux.HandleFunc("/api/related/", s.handleRelated)       // /api/related/{type}/{slug}
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/tags", s.handleTags)
	mux.HandleFunc("/api/quiz", s.handleQuiz)
	mux.HandleFunc("/api/leads", s.handleLeads)

	return s.requestLog(securityHeaders(mux))
}

// Serve listens on addr and serves the API until the listener fails.
func (s *Server) Serve(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.log.Info("resource center api listening",
		logger.String("addr", listener.Addr().String()))
	return http.Serve(listener, s.Handler())
}

// --- Middleware ---

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Any("duration", time.Since(start)))
	})
}

// --- Handlers ---

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	repo := s.repository()
	counts := repo.CountByType()
	writeJSON(w, map[string]any{
		"version":  s.version,
		"records":  repo.Len(),
		"articles": counts[content.TypeArticle],
		"podcasts": counts[content.TypePodcast],
		"offers":   counts[content.TypeOffer],
	})
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	text := q.Get("q")
	if len(text) > 200 {
		writeError(w, http.StatusBadRequest, "oversized query")
		return
	}

	sortOrder := content.SortNewest
	switch v := q.Get("sort"); v {
	case "", "newest":
	case "oldest":
		sortOrder = content.SortOldest
	case "title":
		sortOrder = content.SortTitle
	default:
		writeError(w, http.StatusBadRequest, "unknown sort order")
		return
	}

	results := s.repository().Query(content.QueryOptions{
		Text:     text,
		Type:     q.Get("type"),
		Category: q.Get("category"),
		Sort:     sortOrder,
	})
	writeJSON(w, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleContentBySlug(w http.ResponseWriter, r *http.Request) {
	typ, slug, ok := splitTypeSlug(r.URL.Path, "/api/content/")
	if !ok {
		writeError(w, http.StatusBadRequest, "expected /api/content/{type}/{slug}")
		return
	}

	rec, found := s.repository().BySlug(typ, slug)
	if !found {
		writeError(w, http.StatusNotFound, "no such content")
		return
	}
	writeJSON(w, rec)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	typ, slug, ok := splitTypeSlug(r.URL.Path, "/api/related/")
	if !ok {
		writeError(w, http.StatusBadRequest, "expected /api/related/{type}/{slug}")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 20 {
			writeError(w, http.StatusBadRequest, "limit must be 1-20")
			return
		}
		limit = n
	}

	related, found := s.repository().RelatedBySlug(typ, slug, limit)
	if !found {
		writeError(w, http.StatusNotFound, "no such content")
		return
	}
	writeJSON(w, map[string]any{
		"count":   len(related),
		"results": related,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"categories": s.repository().Categories()})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"tags": s.repository().Tags()})
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.quiz)
}

type leadRequest struct {
	Email   string            `json:"email"`
	Name    string            `json:"name"`
	Source  string            `json:"source"`
	Answers map[string]string `json:"answers"`
}

func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	if s.submitter == nil {
		writeError(w, http.StatusServiceUnavailable, "lead capture not configured")
		return
	}

	var req leadRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "valid email required")
		return
	}

	lead := &leads.Lead{
		Email:   req.Email,
		Name:    req.Name,
		Source:  req.Source,
		Answers: req.Answers,
	}

	resp := map[string]any{}
	if len(req.Answers) > 0 {
		result, err := quiz.Score(s.quiz, req.Answers)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("quiz answers: %v", err))
			return
		}
		lead.Archetype = result.Archetype.Name
		if lead.Source == "" {
			lead.Source = "quiz:" + s.quiz.Slug
		}
		resp["archetype"] = result.Archetype
		resp["recommended"] = s.recommendFor(result.Archetype)
	}

	if err := s.submitter.Submit(r.Context(), lead); err != nil {
		s.log.Error("lead submission failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "could not store lead")
		return
	}

	resp["id"] = lead.ID
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// recommendFor picks content for an archetype by treating its tag list as
// a reference record and ranking by shared labels.
func (s *Server) recommendFor(a quiz.Archetype) []content.Record {
	ref := content.Record{Slug: "archetype:" + a.Name, Tags: a.Tags}
	return s.repository().Related(ref, 3)
}

// --- Helpers ---

// splitTypeSlug parses "{type}/{slug}" from the path after prefix.
func splitTypeSlug(path, prefix string) (content.Type, string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	typ := content.Type(parts[0])
	switch typ {
	case content.TypeArticle, content.TypePodcast, content.TypeOffer:
		return typ, parts[1], true
	}
	return "", "", false
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
