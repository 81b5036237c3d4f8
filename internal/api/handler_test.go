package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petscare-backend/internal/auth"
	"petscare-backend/internal/repository"
	"petscare-backend/internal/service"
)

type fakeSender struct {
	enviados []string
	falha    error
}

func (f *fakeSender) EnviarRecuperacao(ctx context.Context, destinatario string) error {
	if f.falha != nil {
		return f.falha
	}
	f.enviados = append(f.enviados, destinatario)
	return nil
}

func novaAPI(t *testing.T) (http.Handler, *fakeSender) {
	t.Helper()
	store := repository.NewInMemoryStore()
	sender := &fakeSender{}
	tokens, err := auth.NewTokenService("segredo-de-teste")
	require.NoError(t, err)

	userSvc := service.NewUserService(store, auth.NewScryptHasher(), sender, tokens)
	handler := NewHandler(userSvc, tokens)
	return handler.Routes("http://localhost:3000"), sender
}

func doPost(t *testing.T, api http.Handler, path string, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func payloadAna() map[string]string {
	return map[string]string{
		"nome_usuario": "ana",
		"nome":         "Ana Silva",
		"cpf":          "12345678900",
		"email":        "ana@x.com",
		"senha":        "Secr3t!",
	}
}

func registrarAna(t *testing.T, api http.Handler) {
	t.Helper()
	rec := doPost(t, api, "/registrar", payloadAna())
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegistrar(t *testing.T) {
	t.Run("registro com sucesso", func(t *testing.T) {
		api, _ := novaAPI(t)

		rec := doPost(t, api, "/registrar", payloadAna())
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, decode(t, rec), "mensagem")
	})

	t.Run("campo ausente", func(t *testing.T) {
		api, _ := novaAPI(t)
		payload := payloadAna()
		delete(payload, "cpf")

		rec := doPost(t, api, "/registrar", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "erro")
	})

	t.Run("cada conflito tem a sua mensagem, na ordem nome-email-cpf", func(t *testing.T) {
		api, _ := novaAPI(t)
		registrarAna(t, api)

		nomeDup := payloadAna()
		rec := doPost(t, api, "/registrar", nomeDup)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Nome de usuário já existe", decode(t, rec)["erro"])

		emailDup := payloadAna()
		emailDup["nome_usuario"] = "bia"
		emailDup["cpf"] = "98765432100"
		rec = doPost(t, api, "/registrar", emailDup)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email já cadastrado", decode(t, rec)["erro"])

		cpfDup := payloadAna()
		cpfDup["nome_usuario"] = "bia"
		cpfDup["email"] = "bia@x.com"
		rec = doPost(t, api, "/registrar", cpfDup)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "CPF já cadastrado", decode(t, rec)["erro"])
	})

	t.Run("payload que não é JSON", func(t *testing.T) {
		api, _ := novaAPI(t)

		req := httptest.NewRequest(http.MethodPost, "/registrar", bytes.NewReader([]byte("não é json")))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("cenário registro-login-senha errada", func(t *testing.T) {
		api, _ := novaAPI(t)
		registrarAna(t, api)

		rec := doPost(t, api, "/login", map[string]string{"nome_usuario": "ana", "senha": "Secr3t!"})
		require.Equal(t, http.StatusOK, rec.Code)

		resposta := decode(t, rec)
		assert.NotEmpty(t, resposta["token"])

		usuario, ok := resposta["usuario"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "ana@x.com", usuario["email"])
		assert.Equal(t, "ana", usuario["nome_usuario"])
		assert.NotContains(t, usuario, "senha")
		assert.NotContains(t, rec.Body.String(), "Secr3t")
		assert.NotContains(t, rec.Body.String(), "$scrypt$")

		rec = doPost(t, api, "/login", map[string]string{"nome_usuario": "ana", "senha": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("usuário desconhecido e senha errada são indistinguíveis", func(t *testing.T) {
		api, _ := novaAPI(t)
		registrarAna(t, api)

		recDesconhecido := doPost(t, api, "/login", map[string]string{"nome_usuario": "ninguem", "senha": "Secr3t!"})
		recSenhaErrada := doPost(t, api, "/login", map[string]string{"nome_usuario": "ana", "senha": "errada"})

		assert.Equal(t, http.StatusUnauthorized, recDesconhecido.Code)
		assert.Equal(t, recDesconhecido.Code, recSenhaErrada.Code)
		assert.Equal(t, recDesconhecido.Body.String(), recSenhaErrada.Body.String())
	})

	t.Run("campos ausentes caem no 401 genérico", func(t *testing.T) {
		api, _ := novaAPI(t)
		registrarAna(t, api)

		rec := doPost(t, api, "/login", map[string]string{"nome_usuario": "ana"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRecuperarSenha(t *testing.T) {
	t.Run("envia email para usuário cadastrado", func(t *testing.T) {
		api, sender := novaAPI(t)
		registrarAna(t, api)

		rec := doPost(t, api, "/recuperar-senha", map[string]string{"email": "ana@x.com"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, decode(t, rec), "mensagem")
		assert.Equal(t, []string{"ana@x.com"}, sender.enviados)
	})

	t.Run("email ausente", func(t *testing.T) {
		api, _ := novaAPI(t)

		rec := doPost(t, api, "/recuperar-senha", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("email não cadastrado", func(t *testing.T) {
		api, sender := novaAPI(t)

		rec := doPost(t, api, "/recuperar-senha", map[string]string{"email": "x@x.com"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Email não encontrado", decode(t, rec)["erro"])
		assert.Empty(t, sender.enviados)
	})

	t.Run("falha de envio vira 500", func(t *testing.T) {
		api, sender := novaAPI(t)
		registrarAna(t, api)
		sender.falha = errors.New("smtp: connection refused")

		rec := doPost(t, api, "/recuperar-senha", map[string]string{"email": "ana@x.com"})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestAtualizarSenha(t *testing.T) {
	t.Run("atualiza e a nova senha passa a valer", func(t *testing.T) {
		api, _ := novaAPI(t)
		registrarAna(t, api)

		rec := doPost(t, api, "/atualizar-senha", map[string]string{"email": "ana@x.com", "nova_senha": "NovaSenha1"})
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doPost(t, api, "/login", map[string]string{"nome_usuario": "ana", "senha": "Secr3t!"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = doPost(t, api, "/login", map[string]string{"nome_usuario": "ana", "senha": "NovaSenha1"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("email não cadastrado", func(t *testing.T) {
		api, _ := novaAPI(t)

		rec := doPost(t, api, "/atualizar-senha", map[string]string{"email": "x@x.com", "nova_senha": "NovaSenha1"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Email não encontrado", decode(t, rec)["erro"])
	})

	t.Run("campos ausentes", func(t *testing.T) {
		api, _ := novaAPI(t)

		rec := doPost(t, api, "/atualizar-senha", map[string]string{"email": "ana@x.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPerfil(t *testing.T) {
	t.Run("token válido devolve o perfil", func(t *testing.T) {
		api, _ := novaAPI(t)
		registrarAna(t, api)

		rec := doPost(t, api, "/login", map[string]string{"nome_usuario": "ana", "senha": "Secr3t!"})
		require.Equal(t, http.StatusOK, rec.Code)
		token, _ := decode(t, rec)["token"].(string)
		require.NotEmpty(t, token)

		req := httptest.NewRequest(http.MethodGet, "/perfil", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		recPerfil := httptest.NewRecorder()
		api.ServeHTTP(recPerfil, req)

		assert.Equal(t, http.StatusOK, recPerfil.Code)
		usuario, ok := decode(t, recPerfil)["usuario"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "ana", usuario["nome_usuario"])
	})

	t.Run("sem token", func(t *testing.T) {
		api, _ := novaAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/perfil", nil)
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token adulterado", func(t *testing.T) {
		api, _ := novaAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/perfil", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
