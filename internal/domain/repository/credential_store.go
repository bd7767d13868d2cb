package repository

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

// CredentialStore guarda el token OAuth de Gmail/Calendar por (empresa, usuario).
// Get devuelve (nil, nil) si el usuario no ha conectado su cuenta.
type CredentialStore interface {
	Get(ctx context.Context, companyID, userID string) (*entity.OAuthCredential, error)
	Save(ctx context.Context, cred *entity.OAuthCredential) error
	Clear(ctx context.Context, companyID, userID string) error
}
