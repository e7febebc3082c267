package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/abhisek/skillproof/internal/assessment"
	"github.com/abhisek/skillproof/internal/auth"
	"github.com/abhisek/skillproof/internal/resume"
	"github.com/abhisek/skillproof/internal/storage"
	"github.com/abhisek/skillproof/internal/store"
)

// Server wires the HTTP surface to the domain services.
type Server struct {
	users   store.UserRepo
	resumes store.ResumeRepo
	results store.ResultRepo

	tokens *auth.Tokens
	files  *storage.FileStore
	parser *resume.Parser
	issuer *assessment.Issuer
	grader *assessment.Grader

	log    *zap.Logger
	router *mux.Router
}

// Deps collects everything the server needs.
type Deps struct {
	Users   store.UserRepo
	Resumes store.ResumeRepo
	Results store.ResultRepo
	Tokens  *auth.Tokens
	Files   *storage.FileStore
	Parser  *resume.Parser
	Issuer  *assessment.Issuer
	Grader  *assessment.Grader
	Log     *zap.Logger
}

// New builds the server and its route table.
func New(d Deps) *Server {
	s := &Server{
		users:   d.Users,
		resumes: d.Resumes,
		results: d.Results,
		tokens:  d.Tokens,
		files:   d.Files,
		parser:  d.Parser,
		issuer:  d.Issuer,
		grader:  d.Grader,
		log:     d.Log,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)

	authed.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	authed.HandleFunc("/resumes/upload", s.handleResumeUpload).Methods(http.MethodPost)
	authed.HandleFunc("/resumes/my-resume", s.handleMyResume).Methods(http.MethodGet)

	authed.HandleFunc("/tests/generate", s.handleGenerateTest).Methods(http.MethodPost)
	authed.HandleFunc("/tests/submit", s.handleSubmitTest).Methods(http.MethodPost)

	authed.HandleFunc("/recruiter/applicants", s.handleApplicants).Methods(http.MethodGet)

	return r
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
