package service

import "errors"

// Erros de negócio retornados pelos serviços. As mensagens são as
// mensagens visíveis ao usuário; o handler as mapeia para status HTTP.
var (
	ErrNomeUsuarioEmUso     = errors.New("Nome de usuário já existe")
	ErrEmailJaCadastrado    = errors.New("Email já cadastrado")
	ErrCPFJaCadastrado      = errors.New("CPF já cadastrado")
	ErrCredenciaisInvalidas = errors.New("Usuário ou senha inválidos")
	ErrEmailNaoEncontrado   = errors.New("Email não encontrado")
	ErrEnvioEmail           = errors.New("Erro ao enviar email de recuperação")
	ErrUsuarioNaoEncontrado = errors.New("Usuário não encontrado")
)
