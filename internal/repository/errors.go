package repository

import "errors"

// ErrNaoEncontrado indica que nenhum registro corresponde à busca.
// Os serviços usam errors.Is para distinguir ausência de falha de infraestrutura.
var ErrNaoEncontrado = errors.New("registro não encontrado")

// ErrDuplicado indica violação de uma das constraints de unicidade
// (nome_usuario, cpf ou email).
var ErrDuplicado = errors.New("registro duplicado")
