// Package apitest runs an in-memory job board backend for tests. It speaks
// the same envelope, cookie session and upload protocols as the real API.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UploadMode selects the descriptor returned by POST /uploads/signature.
type UploadMode int

const (
	// SignedForm returns Cloudinary-style form fields.
	SignedForm UploadMode = iota
	// Presigned returns an S3 presigned PUT URL.
	Presigned
)

const (
	SessionCookie = "token"
	CloudName     = "jobboard-test"
	APIKey        = "test-api-key"
	ResumeBucket  = "resumes"

	apiSecret   = "test-api-secret"
	sessionTTL  = 7 * 24 * time.Hour
	defaultPage = 10
)

type account struct {
	user     models.User
	password passwordHash
}

type failure struct {
	status  int
	message string
}

// Server is a fake backend. All exported methods are safe for concurrent
// use; seed data before handing the URL to a client.
type Server struct {
	*httptest.Server

	Now        func() time.Time
	UploadMode UploadMode

	mu       sync.Mutex
	secret   []byte
	accounts map[string]*account // by id
	jobs     map[string]*models.Job
	jobOrder []string
	apps     map[string]*models.Application
	appOrder []string
	objects  map[string][]byte
	calls    []string
	failures map[string][]failure
	holds    map[string]*hold
}

type hold struct {
	ch   chan struct{}
	once sync.Once
}

func (h *hold) open() { h.once.Do(func() { close(h.ch) }) }

// New starts a server. It is closed with t.Cleanup by the caller.
func New() *Server {
	s := &Server{
		Now:      time.Now,
		secret:   []byte(uuid.NewString()),
		accounts: make(map[string]*account),
		jobs:     make(map[string]*models.Job),
		apps:     make(map[string]*models.Application),
		objects:  make(map[string][]byte),
		failures: make(map[string][]failure),
		holds:    make(map[string]*hold),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// APIURL is the base URL clients should be configured with.
func (s *Server) APIURL() string { return s.URL + "/api" }

// UploadURL is the base of the signed-form upload endpoint.
func (s *Server) UploadURL() string { return s.URL + "/storage" }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.inject)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Get("/jobs", s.handleSearchJobs)
		r.Get("/jobs/{id}", s.handleGetJob)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticated)

			r.Get("/auth/me", s.handleMe)

			r.Post("/jobs", s.handleCreateJob)
			r.Get("/jobs/employer/jobs", s.handleEmployerJobs)
			r.Put("/jobs/{id}", s.handleUpdateJob)
			r.Delete("/jobs/{id}", s.handleDeleteJob)
			r.Get("/jobs/{id}/applications", s.handleJobApplications)

			r.Post("/applications", s.handleSubmit)
			r.Get("/applications", s.handleMyApplications)
			r.Put("/applications/{id}/status", s.handleUpdateStatus)
			r.Put("/applications/{id}/withdraw", s.handleWithdraw)

			r.Post("/uploads/signature", s.handleSignature)
		})
	})

	r.Post("/storage/{cloud}/raw/upload", s.handleFormUpload)
	r.Put("/"+ResumeBucket+"/*", s.handlePresignedPut)
	r.Get("/files/*", s.handleFile)

	return r
}

// Calls returns every request seen so far as "METHOD /path?query", with
// the /api prefix removed.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CallCount counts recorded calls equal to "METHOD /path?query".
func (s *Server) CallCount(call string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Fail makes the next request to method+path (without /api) fail with
// status and message. Calls stack.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := method + " " + path
	s.failures[k] = append(s.failures[k], failure{status: status, message: message})
}

// Hold blocks requests to method+path until the returned func is called.
func (s *Server) Hold(method, path string) (release func()) {
	k := method + " " + path
	h := &hold{ch: make(chan struct{})}
	s.mu.Lock()
	s.holds[k] = h
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		if s.holds[k] == h {
			delete(s.holds, k)
		}
		s.mu.Unlock()
		h.open()
	}
}

// Close releases held requests and shuts the server down.
func (s *Server) Close() {
	s.mu.Lock()
	for k, h := range s.holds {
		h.open()
		delete(s.holds, k)
	}
	s.mu.Unlock()
	s.Server.Close()
}

func apiPath(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/api")
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := r.Method + " " + apiPath(r)
		if r.URL.RawQuery != "" && strings.HasPrefix(r.URL.Path, "/api") {
			c += "?" + r.URL.RawQuery
		}
		s.mu.Lock()
		s.calls = append(s.calls, c)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		k := r.Method + " " + apiPath(r)

		s.mu.Lock()
		hold := s.holds[k]
		var f *failure
		if q := s.failures[k]; len(q) > 0 {
			f = &q[0]
			s.failures[k] = q[1:]
		}
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold.ch:
			case <-r.Context().Done():
				return
			}
		}
		if f != nil {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type envelope struct {
	Success bool             `json:"success"`
	Data    any              `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
	Meta    *models.PageMeta `json:"meta,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any, meta *models.PageMeta) {
	writeJSON(w, status, envelope{Success: true, Data: data, Meta: meta})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func paginate(r *http.Request, total int) (start, end int, meta *models.PageMeta) {
	page := atoiDefault(r.URL.Query().Get("page"), 1)
	limit := atoiDefault(r.URL.Query().Get("limit"), defaultPage)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPage
	}
	pages := (total + limit - 1) / limit
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end, &models.PageMeta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
