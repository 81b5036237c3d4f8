package repository

import (
	"context"

	"petscare-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserStore define a interface para operações de usuário no DB
type UserStore interface {
	CreateUsuario(ctx context.Context, usuario *models.Usuario) error
	GetUsuarioByNomeUsuario(ctx context.Context, nomeUsuario string) (*models.Usuario, error)
	GetUsuarioByEmail(ctx context.Context, email string) (*models.Usuario, error)
	GetUsuarioByCPF(ctx context.Context, cpf string) (*models.Usuario, error)
	GetUsuarioByID(ctx context.Context, id int64) (*models.Usuario, error)
	UpdateSenha(ctx context.Context, email, senhaHash string) error

	// GetAllEmails existe apenas para fins de diagnóstico
	GetAllEmails(ctx context.Context) ([]string, error)
}

// PgxIface é o subconjunto do pgxpool.Pool usado pelo PostgresStore.
// Permite injetar um pool real ou um mock nos testes.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}
