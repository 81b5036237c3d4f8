package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Parâmetros scrypt (N = 2^ln)
const (
	scryptLN      = 15 // N = 32768
	scryptR       = 8
	scryptP       = 1
	scryptSaltLen = 16 // bytes de salt
	scryptKeyLen  = 32 // bytes de saída
)

// ScryptHasher gera e verifica hashes de senha com scrypt
type ScryptHasher struct{}

// NewScryptHasher cria um novo ScryptHasher
func NewScryptHasher() *ScryptHasher {
	return &ScryptHasher{}
}

// Hash gera o hash scrypt da senha com salt aleatório.
// Formato: $scrypt$ln=15,r=8,p=1$<salt>$<hash>
func (h *ScryptHasher) Hash(senha string) (string, error) {
	if senha == "" {
		return "", fmt.Errorf("senha não pode ser vazia")
	}

	salt := make([]byte, scryptSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("falha ao gerar salt: %w", err)
	}

	hash, err := scrypt.Key([]byte(senha), salt, 1<<scryptLN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("falha ao gerar hash scrypt: %w", err)
	}

	encoded := fmt.Sprintf(
		"$scrypt$ln=%d,r=%d,p=%d$%s$%s",
		scryptLN,
		scryptR,
		scryptP,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

// Verify compara a senha com o hash armazenado.
// Retorna (true, nil) quando confere, (false, nil) quando não confere e
// (false, err) quando o hash é malformado — o chamador deve tratar erro
// como "não confere", nunca como falha fatal.
func (h *ScryptHasher) Verify(senha, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 5 {
		return false, fmt.Errorf("formato de hash inválido")
	}

	if parts[1] != "scrypt" {
		return false, fmt.Errorf("algoritmo de hash não suportado: %s", parts[1])
	}

	var ln, r, p int
	if _, err := fmt.Sscanf(parts[2], "ln=%d,r=%d,p=%d", &ln, &r, &p); err != nil {
		return false, fmt.Errorf("parâmetros de hash inválidos: %w", err)
	}
	if ln <= 0 || ln > 30 || r <= 0 || p <= 0 {
		return false, fmt.Errorf("parâmetros de hash fora do intervalo")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, fmt.Errorf("salt inválido: %w", err)
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("hash inválido: %w", err)
	}
	if len(expected) == 0 {
		return false, fmt.Errorf("hash vazio")
	}

	computed, err := scrypt.Key([]byte(senha), salt, 1<<ln, r, p, len(expected))
	if err != nil {
		return false, fmt.Errorf("falha ao recomputar hash: %w", err)
	}

	// Comparação em tempo constante
	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return true, nil
	}

	return false, nil
}
