package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petscare-backend/internal/api"
	"petscare-backend/internal/auth"
	"petscare-backend/internal/config"
	"petscare-backend/internal/mail"
	"petscare-backend/internal/repository"
	"petscare-backend/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// Carrega o .env antes da configuração; em produção as variáveis
	// podem vir direto do ambiente (Docker/K8s)
	if err := godotenv.Load(); err != nil {
		slog.Warn("não foi possível carregar o arquivo .env, usando variáveis de ambiente existentes", "erro", err)
	}

	var cfg config.Config
	if err := config.Load(&cfg); err != nil {
		slog.Error("falha ao carregar configuração", "erro", err)
		os.Exit(1)
	}

	// Camada de repositório (PostgreSQL)
	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelInit()

	store, err := repository.NewPostgresStore(initCtx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("falha ao conectar ao banco de dados", "erro", err)
		os.Exit(1)
	}
	defer store.Close()

	// Migrations
	migrationSQL, err := os.ReadFile("./migrations/001_init.sql")
	if err != nil {
		slog.Error("falha ao ler arquivo de migração", "erro", err)
		os.Exit(1)
	}
	if err := store.RunMigrations(initCtx, string(migrationSQL)); err != nil {
		slog.Warn("aviso ao rodar migrações, continuando", "erro", err)
	} else {
		slog.Info("migrações do banco de dados aplicadas com sucesso")
	}

	// Camada de autenticação
	tokenService, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		slog.Error("falha ao iniciar TokenService", "erro", err)
		os.Exit(1)
	}

	// Camada de serviço
	sender := mail.NewRecoverySender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPAppPassword, cfg.ResetLinkBase)
	userService := service.NewUserService(store, auth.NewScryptHasher(), sender, tokenService)

	// Camada de API
	handler := api.NewHandler(userService, tokenService)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      handler.Routes(cfg.CORSOrigin),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("servidor iniciado", "porta", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("erro ao iniciar servidor", "erro", err)
			os.Exit(1)
		}
	}()

	// Aguardar sinal de interrupção
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("recebido sinal de desligamento, encerrando servidor")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("erro no graceful shutdown", "erro", err)
		os.Exit(1)
	}
	slog.Info("servidor encerrado")
}
