package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"petscare-backend/internal/auth"
	"petscare-backend/internal/models"
	"petscare-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

// Handler gerencia as dependências para os handlers HTTP
type Handler struct {
	userService  *service.UserService
	tokenService *auth.TokenService
	validate     *validator.Validate
}

// NewHandler cria uma nova instância do Handler
func NewHandler(userSvc *service.UserService, tokenSvc *auth.TokenService) *Handler {
	return &Handler{
		userService:  userSvc,
		tokenService: tokenSvc,
		validate:     validator.New(),
	}
}

// UsuarioResponse é a projeção do usuário sem o campo de senha
type UsuarioResponse struct {
	ID          int64  `json:"id"`
	Nome        string `json:"nome"`
	NomeUsuario string `json:"nome_usuario"`
	CPF         string `json:"cpf"`
	Email       string `json:"email"`
}

func novaUsuarioResponse(usuario *models.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:          usuario.ID,
		Nome:        usuario.Nome,
		NomeUsuario: usuario.NomeUsuario,
		CPF:         usuario.CPF,
		Email:       usuario.Email,
	}
}

// === Funções Auxiliares de Resposta ===

func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"erro": message})
}

func (h *Handler) respondWithMessage(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"mensagem": message})
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("falha ao serializar resposta JSON", "erro", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"erro":"Erro interno do servidor"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// handleServiceError traduz erros de negócio em status HTTP; qualquer erro
// desconhecido (banco, infraestrutura) vira o 500 genérico, sem vazar detalhes
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNomeUsuarioEmUso),
		errors.Is(err, service.ErrEmailJaCadastrado),
		errors.Is(err, service.ErrCPFJaCadastrado):
		h.respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCredenciaisInvalidas):
		h.respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailNaoEncontrado),
		errors.Is(err, service.ErrUsuarioNaoEncontrado):
		h.respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEnvioEmail):
		h.respondWithError(w, http.StatusInternalServerError, err.Error())
	default:
		slog.Error("erro interno não tratado", "erro", err)
		h.respondWithError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// === Handlers ===

// handleRegistrar (POST /registrar)
func (h *Handler) handleRegistrar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NomeUsuario string `json:"nome_usuario" validate:"required"`
		Nome        string `json:"nome" validate:"required"`
		CPF         string `json:"cpf" validate:"required"`
		Email       string `json:"email" validate:"required"`
		Senha       string `json:"senha" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Payload JSON inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Todos os campos são obrigatórios")
		return
	}

	_, err := h.userService.Registrar(r.Context(), req.NomeUsuario, req.Nome, req.CPF, req.Email, req.Senha)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondWithMessage(w, http.StatusCreated, "Usuário registrado com sucesso")
}

// handleLogin (POST /login)
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NomeUsuario string `json:"nome_usuario"`
		Senha       string `json:"senha"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Payload JSON inválido")
		return
	}

	// Campos vazios caem no 401 genérico, como qualquer credencial errada
	usuario, token, err := h.userService.Login(r.Context(), req.NomeUsuario, req.Senha)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"usuario": novaUsuarioResponse(usuario),
		"token":   token,
	})
}

// handleRecuperarSenha (POST /recuperar-senha)
func (h *Handler) handleRecuperarSenha(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Payload JSON inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Email não fornecido")
		return
	}

	if err := h.userService.RecuperarSenha(r.Context(), req.Email); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondWithMessage(w, http.StatusOK, "Email de recuperação enviado com sucesso")
}

// handleAtualizarSenha (POST /atualizar-senha)
func (h *Handler) handleAtualizarSenha(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email" validate:"required"`
		NovaSenha string `json:"nova_senha" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Payload JSON inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Email e nova senha são obrigatórios")
		return
	}

	if err := h.userService.AtualizarSenha(r.Context(), req.Email, req.NovaSenha); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondWithMessage(w, http.StatusOK, "Senha atualizada com sucesso")
}

// handlePerfil (GET /perfil)
func (h *Handler) handlePerfil(w http.ResponseWriter, r *http.Request) {
	usuario, ok := r.Context().Value(userContextKey).(*models.Usuario)
	if !ok || usuario == nil {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"usuario": novaUsuarioResponse(usuario),
	})
}
