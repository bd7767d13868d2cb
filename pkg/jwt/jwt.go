package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims emitidos por el proveedor de identidad. El servicio no emite tokens en producción:
// Generate existe para el seeder y los tests.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"` // "admin" | "manager" | "operator"
}

// Identity es lo que el resto de la aplicación necesita saber del usuario autenticado.
type Identity struct {
	UserID    string
	CompanyID string
	Email     string
	Role      string
}

// Generate firma un token HS256 para id con expiración en minutos.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    id.UserID,
		CompanyID: id.CompanyID,
		Email:     id.Email,
		Role:      id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma, expiración y (si issuer no es vacío) el emisor.
// Un token sin company_id no sirve para rutas de empresa y se rechaza aquí.
func Parse(secret, issuer, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	if claims.CompanyID == "" || claims.UserID == "" {
		return Identity{}, fmt.Errorf("token sin empresa o usuario")
	}
	return Identity{UserID: claims.UserID, CompanyID: claims.CompanyID, Email: claims.Email, Role: claims.Role}, nil
}
