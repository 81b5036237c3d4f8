package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config armazena a configuração da aplicação
type Config struct {
	ServerPort  int    `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`

	// Credenciais do relay SMTP usado pela recuperação de senha
	SMTPHost        string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort        int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser        string `envconfig:"SMTP_USER" required:"true"`
	SMTPAppPassword string `envconfig:"SMTP_APP_PASSWORD" required:"true"`

	// Base do link que o email de recuperação aponta (frontend)
	ResetLinkBase string `envconfig:"RESET_LINK_BASE" default:"http://localhost:8000"`
	CORSOrigin    string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`
}

// Load carrega a configuração das variáveis de ambiente
func Load(cfg *Config) error {
	return envconfig.Process("", cfg)
}
