package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Papéis aceitos nos tokens de serviço
const (
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Claims são as informações carregadas no token das rotas administrativas
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
