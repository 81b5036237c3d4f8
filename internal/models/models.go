package models

// Usuario representa um registro da tabela `usuario`
type Usuario struct {
	ID          int64  `json:"id"`
	NomeUsuario string `json:"nome_usuario"`
	Nome        string `json:"nome"`
	CPF         string `json:"cpf"`
	Email       string `json:"email"`
	SenhaHash   string `json:"-"` // Nunca expor em JSON
}
