// Package mail envia o email de recuperação de senha do PETs Care.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	gomail "github.com/wneessen/go-mail"
)

// RecoverySender envia emails de recuperação de senha
type RecoverySender struct {
	host          string
	port          int
	remetente     string
	senhaApp      string
	resetLinkBase string
}

// NewRecoverySender cria um novo sender de recuperação
func NewRecoverySender(host string, port int, remetente, senhaApp, resetLinkBase string) *RecoverySender {
	return &RecoverySender{
		host:          host,
		port:          port,
		remetente:     remetente,
		senhaApp:      senhaApp,
		resetLinkBase: resetLinkBase,
	}
}

// EnviarRecuperacao envia um email de recuperação de senha para o destinatário.
// Uma sessão SMTP autenticada (STARTTLS) por chamada, sem retry. Qualquer falha
// de transporte, autenticação ou protocolo vira erro para o handler traduzir em 500.
func (s *RecoverySender) EnviarRecuperacao(ctx context.Context, destinatario string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.remetente); err != nil {
		return fmt.Errorf("remetente inválido: %w", err)
	}
	if err := msg.To(destinatario); err != nil {
		return fmt.Errorf("destinatário inválido: %w", err)
	}
	msg.Subject("Recuperação de Senha - PETs Care")

	corpo := fmt.Sprintf(`Você solicitou a recuperação de senha.

Para criar uma nova senha, clique no link abaixo:
%s/reset-password.html?email=%s

Se você não solicitou esta recuperação, ignore este email.
`, s.resetLinkBase, url.QueryEscape(destinatario))
	msg.SetBodyString(gomail.TypeTextPlain, corpo)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
		gomail.WithUsername(s.remetente),
		gomail.WithPassword(s.senhaApp),
	)
	if err != nil {
		return fmt.Errorf("falha ao criar cliente SMTP: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("falha ao enviar email de recuperação: %w", err)
	}

	slog.Info("email de recuperação enviado", "destinatario", destinatario)
	return nil
}
