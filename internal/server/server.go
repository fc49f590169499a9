package server

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"userhub/internal/auth"
	"userhub/internal/config"
)

// UserDirectory is the slice of the user repository the read and
// admin handlers need.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
	FindAll(ctx context.Context, params auth.ListParams) ([]auth.User, int64, error)
	Update(ctx context.Context, id, email, password string) (*auth.User, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type Server struct {
	Workflow *auth.Workflow
	Users    UserDirectory
	Sessions auth.SessionManager
	Config   config.Config

	trustedProxies []net.IPNet
}

func NewServer(cfg config.Config, wf *auth.Workflow, users UserDirectory, sessions auth.SessionManager) *Server {
	return &Server{
		Workflow:       wf,
		Users:          users,
		Sessions:       sessions,
		Config:         cfg,
		trustedProxies: parseProxyCIDRs(cfg.TrustedProxies),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	formatter := &middleware.DefaultLogFormatter{
		Logger:  log.New(log.Writer(), "", log.Flags()),
		NoColor: true,
	}
	r.Use(middleware.RequestLogger(formatter))
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders)

	r.Post("/api/invite", s.handleInvite)
	r.Post("/api/register", s.handleRegister)
	r.Post("/api/sign-in", s.handleSignIn)
	r.Post("/api/sign-out", s.handleSignOut)
	r.Get("/api/who-am-i", s.handleWhoAmI)

	r.Get("/api/users", s.handleListUsers)
	r.Get("/api/users/{id}", s.handleGetUser)

	r.Group(func(pr chi.Router) {
		pr.Use(s.requireSession)
		pr.Put("/api/users/{id}", s.handleUpdateUser)
		pr.Delete("/api/users/{id}", s.handleDeleteUser)
	})

	return r
}
