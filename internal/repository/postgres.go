package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"petscare-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore é a implementação da interface UserStore para o PostgreSQL
type PostgresStore struct {
	db PgxIface
}

// NewPostgresStore cria uma nova instância do PostgresStore e pool de conexões
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("não foi possível criar pool de conexão: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("não foi possível pingar o banco de dados: %w", err)
	}

	slog.Info("pool de conexão com PostgreSQL estabelecido")
	return &PostgresStore{db: pool}, nil
}

// NewPostgresStoreWithDB cria um PostgresStore sobre um pool já existente (ou mock)
func NewPostgresStoreWithDB(db PgxIface) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close fecha o pool de conexões
func (s *PostgresStore) Close() {
	s.db.Close()
}

// RunMigrations executa o script SQL de migração
func (s *PostgresStore) RunMigrations(ctx context.Context, migrationSQL string) error {
	_, err := s.db.Exec(ctx, migrationSQL)
	if err != nil {
		return fmt.Errorf("falha ao executar migração: %w", err)
	}
	return nil
}

const colunasUsuario = `id, nome_usuario, nome, cpf, email, senha`

func scanUsuario(row pgx.Row) (*models.Usuario, error) {
	usuario := &models.Usuario{}
	err := row.Scan(
		&usuario.ID,
		&usuario.NomeUsuario,
		&usuario.Nome,
		&usuario.CPF,
		&usuario.Email,
		&usuario.SenhaHash,
	)
	if err != nil {
		return nil, err
	}
	return usuario, nil
}

// CreateUsuario insere um novo usuário; o ID é gerado pelo banco
func (s *PostgresStore) CreateUsuario(ctx context.Context, usuario *models.Usuario) error {
	sql := `
        INSERT INTO usuario (nome_usuario, nome, cpf, email, senha)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	err := s.db.QueryRow(ctx, sql,
		usuario.NomeUsuario,
		usuario.Nome,
		usuario.CPF,
		usuario.Email,
		usuario.SenhaHash,
	).Scan(&usuario.ID)

	if err != nil {
		// Violação de constraint de unicidade (corrida entre a checagem e o insert)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // 23505 = unique_violation
			return ErrDuplicado
		}
		return fmt.Errorf("falha ao criar usuário: %w", err)
	}
	return nil
}

// GetUsuarioByNomeUsuario busca um usuário pelo nome de usuário
func (s *PostgresStore) GetUsuarioByNomeUsuario(ctx context.Context, nomeUsuario string) (*models.Usuario, error) {
	sql := `
        SELECT ` + colunasUsuario + `
        FROM usuario
        WHERE nome_usuario = $1`

	usuario, err := scanUsuario(s.db.QueryRow(ctx, sql, nomeUsuario))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, fmt.Errorf("falha ao buscar usuário por nome de usuário: %w", err)
	}
	return usuario, nil
}

// GetUsuarioByEmail busca um usuário pelo email
func (s *PostgresStore) GetUsuarioByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	sql := `
        SELECT ` + colunasUsuario + `
        FROM usuario
        WHERE email = $1`

	usuario, err := scanUsuario(s.db.QueryRow(ctx, sql, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, fmt.Errorf("falha ao buscar usuário por email: %w", err)
	}
	return usuario, nil
}

// GetUsuarioByCPF busca um usuário pelo CPF
func (s *PostgresStore) GetUsuarioByCPF(ctx context.Context, cpf string) (*models.Usuario, error) {
	sql := `
        SELECT ` + colunasUsuario + `
        FROM usuario
        WHERE cpf = $1`

	usuario, err := scanUsuario(s.db.QueryRow(ctx, sql, cpf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, fmt.Errorf("falha ao buscar usuário por CPF: %w", err)
	}
	return usuario, nil
}

// GetUsuarioByID busca um usuário pelo ID
func (s *PostgresStore) GetUsuarioByID(ctx context.Context, id int64) (*models.Usuario, error) {
	sql := `
        SELECT ` + colunasUsuario + `
        FROM usuario
        WHERE id = $1`

	usuario, err := scanUsuario(s.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, fmt.Errorf("falha ao buscar usuário por ID: %w", err)
	}
	return usuario, nil
}

// UpdateSenha substitui o hash de senha do usuário com o email informado
func (s *PostgresStore) UpdateSenha(ctx context.Context, email, senhaHash string) error {
	sql := `
        UPDATE usuario
        SET senha = $1
        WHERE email = $2`

	tag, err := s.db.Exec(ctx, sql, senhaHash, email)
	if err != nil {
		return fmt.Errorf("falha ao atualizar senha: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

// GetAllEmails lista todos os emails cadastrados (apenas diagnóstico)
func (s *PostgresStore) GetAllEmails(ctx context.Context) ([]string, error) {
	sql := `
        SELECT email
        FROM usuario
        ORDER BY email`

	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar emails: %w", err)
	}
	defer rows.Close()

	// Inicializa como slice vazio para consistência de JSON
	emails := []string{}

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("falha ao escanear linha de email: %w", err)
		}
		emails = append(emails, email)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os emails: %w", err)
	}

	return emails, nil
}
