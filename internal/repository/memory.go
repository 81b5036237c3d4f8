package repository

import (
	"context"
	"sort"
	"sync"

	"petscare-backend/internal/models"
)

// InMemoryStore é uma implementação em-memória da interface UserStore.
// Replica as mesmas regras de unicidade da tabela `usuario`.
type InMemoryStore struct {
	mu             sync.RWMutex
	proximoID      int64
	usuariosByID   map[int64]*models.Usuario
	usuariosByNome map[string]*models.Usuario
	usuariosByMail map[string]*models.Usuario
	usuariosByCPF  map[string]*models.Usuario
}

// NewInMemoryStore cria uma nova instância do store em memória
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		proximoID:      1,
		usuariosByID:   make(map[int64]*models.Usuario),
		usuariosByNome: make(map[string]*models.Usuario),
		usuariosByMail: make(map[string]*models.Usuario),
		usuariosByCPF:  make(map[string]*models.Usuario),
	}
}

func (s *InMemoryStore) CreateUsuario(ctx context.Context, usuario *models.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usuariosByNome[usuario.NomeUsuario]; exists {
		return ErrDuplicado
	}
	if _, exists := s.usuariosByMail[usuario.Email]; exists {
		return ErrDuplicado
	}
	if _, exists := s.usuariosByCPF[usuario.CPF]; exists {
		return ErrDuplicado
	}

	usuario.ID = s.proximoID
	s.proximoID++

	copia := *usuario
	s.usuariosByID[copia.ID] = &copia
	s.usuariosByNome[copia.NomeUsuario] = &copia
	s.usuariosByMail[copia.Email] = &copia
	s.usuariosByCPF[copia.CPF] = &copia
	return nil
}

func (s *InMemoryStore) GetUsuarioByNomeUsuario(ctx context.Context, nomeUsuario string) (*models.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usuario, exists := s.usuariosByNome[nomeUsuario]
	if !exists {
		return nil, ErrNaoEncontrado
	}
	copia := *usuario
	return &copia, nil
}

func (s *InMemoryStore) GetUsuarioByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usuario, exists := s.usuariosByMail[email]
	if !exists {
		return nil, ErrNaoEncontrado
	}
	copia := *usuario
	return &copia, nil
}

func (s *InMemoryStore) GetUsuarioByCPF(ctx context.Context, cpf string) (*models.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usuario, exists := s.usuariosByCPF[cpf]
	if !exists {
		return nil, ErrNaoEncontrado
	}
	copia := *usuario
	return &copia, nil
}

func (s *InMemoryStore) GetUsuarioByID(ctx context.Context, id int64) (*models.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usuario, exists := s.usuariosByID[id]
	if !exists {
		return nil, ErrNaoEncontrado
	}
	copia := *usuario
	return &copia, nil
}

func (s *InMemoryStore) UpdateSenha(ctx context.Context, email, senhaHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	usuario, exists := s.usuariosByMail[email]
	if !exists {
		return ErrNaoEncontrado
	}
	usuario.SenhaHash = senhaHash
	return nil
}

func (s *InMemoryStore) GetAllEmails(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emails := make([]string, 0, len(s.usuariosByMail))
	for email := range s.usuariosByMail {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails, nil
}
