package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes configura e retorna o roteador Chi
func (h *Handler) Routes(corsOrigin string) http.Handler {
	r := chi.NewRouter()

	// Middlewares globais
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	// O frontend roda em outra origem, então o CORS vale para todas as rotas
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // Tempo de cache da preflight
	}))

	// Endpoints públicos
	r.Post("/registrar", h.handleRegistrar)
	r.Post("/login", h.handleLogin)
	r.Post("/recuperar-senha", h.handleRecuperarSenha)
	r.Post("/atualizar-senha", h.handleAtualizarSenha)

	// Endpoints protegidos (requerem token de sessão)
	r.Group(func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		r.Get("/perfil", h.handlePerfil)
	})

	return r
}
