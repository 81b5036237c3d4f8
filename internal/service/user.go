package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"petscare-backend/internal/auth"
	"petscare-backend/internal/models"
	"petscare-backend/internal/repository"
)

// PasswordHasher gera e verifica hashes de senha
type PasswordHasher interface {
	Hash(senha string) (string, error)
	Verify(senha, hash string) (bool, error)
}

// RecoverySender envia o email de recuperação de senha
type RecoverySender interface {
	EnviarRecuperacao(ctx context.Context, destinatario string) error
}

// UserService lida com a lógica de negócios de usuários
type UserService struct {
	store        repository.UserStore
	hasher       PasswordHasher
	sender       RecoverySender
	tokenService *auth.TokenService
}

// NewUserService cria um novo serviço de usuário
func NewUserService(store repository.UserStore, hasher PasswordHasher, sender RecoverySender, tokenService *auth.TokenService) *UserService {
	return &UserService{
		store:        store,
		hasher:       hasher,
		sender:       sender,
		tokenService: tokenService,
	}
}

// Registrar cria um novo usuário. As três checagens de unicidade rodam
// nesta ordem: nome de usuário, email, CPF — a primeira que falhar vence.
func (s *UserService) Registrar(ctx context.Context, nomeUsuario, nome, cpf, email, senha string) (*models.Usuario, error) {
	if _, err := s.store.GetUsuarioByNomeUsuario(ctx, nomeUsuario); err == nil {
		return nil, ErrNomeUsuarioEmUso
	} else if !errors.Is(err, repository.ErrNaoEncontrado) {
		return nil, fmt.Errorf("falha ao checar nome de usuário: %w", err)
	}

	if _, err := s.store.GetUsuarioByEmail(ctx, email); err == nil {
		return nil, ErrEmailJaCadastrado
	} else if !errors.Is(err, repository.ErrNaoEncontrado) {
		return nil, fmt.Errorf("falha ao checar email: %w", err)
	}

	if _, err := s.store.GetUsuarioByCPF(ctx, cpf); err == nil {
		return nil, ErrCPFJaCadastrado
	} else if !errors.Is(err, repository.ErrNaoEncontrado) {
		return nil, fmt.Errorf("falha ao checar CPF: %w", err)
	}

	// Gerar hash da senha (nunca armazene senha em texto plano)
	hash, err := s.hasher.Hash(senha)
	if err != nil {
		return nil, fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}

	usuario := &models.Usuario{
		NomeUsuario: nomeUsuario,
		Nome:        nome,
		CPF:         cpf,
		Email:       email,
		SenhaHash:   hash,
	}

	if err := s.store.CreateUsuario(ctx, usuario); err != nil {
		// Corrida entre a checagem e o insert: a constraint do banco decide
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, ErrNomeUsuarioEmUso
		}
		return nil, fmt.Errorf("falha ao salvar usuário: %w", err)
	}

	slog.Info("usuário registrado", "nome_usuario", usuario.NomeUsuario, "id", usuario.ID)
	return usuario, nil
}

// Login autentica um usuário e retorna o registro com um token de sessão.
// Usuário inexistente e senha errada produzem o mesmo erro, para evitar
// enumeração de usuários.
func (s *UserService) Login(ctx context.Context, nomeUsuario, senha string) (*models.Usuario, string, error) {
	usuario, err := s.store.GetUsuarioByNomeUsuario(ctx, nomeUsuario)
	if err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return nil, "", ErrCredenciaisInvalidas
		}
		return nil, "", fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	// Hash malformado conta como "não confere", nunca como erro fatal
	ok, err := s.hasher.Verify(senha, usuario.SenhaHash)
	if err != nil {
		slog.Warn("hash de senha ilegível", "nome_usuario", nomeUsuario)
	}
	if !ok {
		return nil, "", ErrCredenciaisInvalidas
	}

	token, err := s.tokenService.NewToken(usuario.ID)
	if err != nil {
		return nil, "", fmt.Errorf("falha ao gerar token: %w", err)
	}

	slog.Info("login bem sucedido", "nome_usuario", nomeUsuario)
	return usuario, token, nil
}

// RecuperarSenha dispara o email de recuperação para um email cadastrado.
// Nenhum registro é alterado por esta operação.
func (s *UserService) RecuperarSenha(ctx context.Context, email string) error {
	if _, err := s.store.GetUsuarioByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			if emails, listErr := s.store.GetAllEmails(ctx); listErr == nil {
				slog.Debug("email de recuperação não cadastrado", "emails_cadastrados", len(emails))
			}
			return ErrEmailNaoEncontrado
		}
		return fmt.Errorf("falha ao buscar usuário por email: %w", err)
	}

	if err := s.sender.EnviarRecuperacao(ctx, email); err != nil {
		slog.Error("falha no envio do email de recuperação", "erro", err)
		return ErrEnvioEmail
	}
	return nil
}

// AtualizarSenha substitui a senha do usuário com o email informado
func (s *UserService) AtualizarSenha(ctx context.Context, email, novaSenha string) error {
	if _, err := s.store.GetUsuarioByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return ErrEmailNaoEncontrado
		}
		return fmt.Errorf("falha ao buscar usuário por email: %w", err)
	}

	hash, err := s.hasher.Hash(novaSenha)
	if err != nil {
		return fmt.Errorf("falha ao gerar hash da nova senha: %w", err)
	}

	if err := s.store.UpdateSenha(ctx, email, hash); err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return ErrEmailNaoEncontrado
		}
		return fmt.Errorf("falha ao atualizar senha: %w", err)
	}

	slog.Info("senha atualizada", "email", email)
	return nil
}

// GetUsuarioByID busca um usuário pelo ID
func (s *UserService) GetUsuarioByID(ctx context.Context, id int64) (*models.Usuario, error) {
	usuario, err := s.store.GetUsuarioByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, fmt.Errorf("falha ao buscar usuário por ID: %w", err)
	}
	return usuario, nil
}
