package api

import (
	"net/http"
	"time"

	"fundtrack/src/api/handlers"
	"fundtrack/src/config"
	"fundtrack/src/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	TokenAuth *jwtauth.JWTAuth
	Logger    *logrus.Logger
}

func NewServer(handler *handlers.Handler, tokenAuth *jwtauth.JWTAuth, logger *logrus.Logger) *Server {
	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   handler,
		TokenAuth: tokenAuth,
		Logger:    logger,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}).Handler)
	s.Router.Use(handlers.RequestLogger(s.Logger))

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Get("/api/health", handlers.Healthcheck)

	loginLimiter := handlers.NewRateLimiter(5, handlers.KeyByIP)
	apiLimiter := handlers.NewRateLimiter(60, handlers.KeyByUser)

	s.Router.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", s.Handler.Signup)
		r.With(loginLimiter.Middleware).Post("/login", s.Handler.Login)
	})

	s.Router.Route("/api/funds", func(r chi.Router) {
		r.Get("/", s.Handler.ListFunds)
		r.Get("/{schemeCode}/history", s.Handler.FundNavHistory)
	})

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.TokenAuth))
		r.Use(jwtauth.Authenticator)
		r.Use(apiLimiter.Middleware)

		r.Route("/api/portfolio", func(r chi.Router) {
			r.Get("/", s.Handler.ListHoldings)
			r.Post("/add", s.Handler.AddHolding)
			r.Delete("/remove/{schemeCode}", s.Handler.RemoveHolding)
			r.Get("/value", s.Handler.PortfolioValue)
			r.Get("/history", s.Handler.PortfolioHistory)
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(handlers.RequireRole(string(models.RoleAdmin)))
			r.Get("/users", s.Handler.AdminListUsers)
			r.Get("/holdings", s.Handler.AdminListHoldings)
			r.Get("/popular-funds", s.Handler.AdminPopularFunds)
			r.Get("/stats", s.Handler.AdminStats)
			r.Post("/sync-navs", s.Handler.AdminTriggerNavSync)
		})
	})
}

func NewHTTPServer(cfg *config.Config, server *Server) *http.Server {
	// WriteTimeout must cover the inline admin NAV sync, which fans out
	// to the upstream API with retries.
	return &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		Handler:      server,
	}
}
