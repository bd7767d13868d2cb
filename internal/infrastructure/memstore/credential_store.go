package memstore

import (
	"context"
	"sync"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
)

var _ repository.CredentialStore = (*CredentialStore)(nil)

// CredentialStore guarda credenciales OAuth en memoria (tests y desarrollo).
type CredentialStore struct {
	mu    sync.RWMutex
	creds map[string]entity.OAuthCredential
}

// NewCredentialStore construye el almacén vacío.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{creds: make(map[string]entity.OAuthCredential)}
}

func credKey(companyID, userID string) string { return companyID + "/" + userID }

func (s *CredentialStore) Get(_ context.Context, companyID, userID string) (*entity.OAuthCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.creds[credKey(companyID, userID)]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *CredentialStore) Save(_ context.Context, cred *entity.OAuthCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[credKey(cred.CompanyID, cred.UserID)] = *cred
	return nil
}

func (s *CredentialStore) Clear(_ context.Context, companyID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, credKey(companyID, userID))
	return nil
}
