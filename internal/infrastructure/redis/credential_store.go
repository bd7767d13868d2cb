// Package redis guarda las credenciales OAuth de Gmail/Calendar en Redis, cifradas.
package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
)

var _ repository.CredentialStore = (*CredentialStore)(nil)

const nonceSize = 24

// ErrCorruptCredential el valor guardado no se pudo descifrar con la clave actual.
var ErrCorruptCredential = errors.New("credencial guardada ilegible")

// CredentialStore una clave por (empresa, usuario); el valor es el token sellado con secretbox.
type CredentialStore struct {
	client *goredis.Client
	key    [32]byte
	prefix string
}

// NewClient abre la conexión y comprueba que responde.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewCredentialStore construye el almacén. sealKeyHex debe ser 32 bytes en hex.
func NewCredentialStore(client *goredis.Client, sealKeyHex, prefix string) (*CredentialStore, error) {
	key, err := ParseSealKey(sealKeyHex)
	if err != nil {
		return nil, err
	}
	return &CredentialStore{client: client, key: key, prefix: prefix}, nil
}

// ParseSealKey decodifica la clave de sellado.
func ParseSealKey(s string) ([32]byte, error) {
	var key [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("redis: clave de sellado no es hex: %w", err)
	}
	if len(raw) != len(key) {
		return key, fmt.Errorf("redis: clave de sellado de %d bytes, se esperaban 32", len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

func (s *CredentialStore) redisKey(companyID, userID string) string {
	return s.prefix + companyID + ":" + userID
}

type sealedCredential struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	TokenType    string    `json:"tokenType,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scope        string    `json:"scope,omitempty"`
}

// Get devuelve (nil, nil) si no hay credencial.
func (s *CredentialStore) Get(ctx context.Context, companyID, userID string) (*entity.OAuthCredential, error) {
	raw, err := s.client.Get(ctx, s.redisKey(companyID, userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get credencial: %w", err)
	}
	plain, err := open(s.key, raw)
	if err != nil {
		return nil, err
	}
	var rec sealedCredential
	if err := json.Unmarshal(plain, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCredential, err)
	}
	return &entity.OAuthCredential{
		CompanyID:    companyID,
		UserID:       userID,
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
		TokenType:    rec.TokenType,
		Expiry:       rec.Expiry,
		Scope:        rec.Scope,
	}, nil
}

// Save sobrescribe la credencial. Sin TTL: se borra al desconectar o al ser rechazada.
func (s *CredentialStore) Save(ctx context.Context, cred *entity.OAuthCredential) error {
	plain, err := json.Marshal(sealedCredential{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    cred.TokenType,
		Expiry:       cred.Expiry,
		Scope:        cred.Scope,
	})
	if err != nil {
		return fmt.Errorf("redis: codificar credencial: %w", err)
	}
	sealed, err := seal(s.key, plain)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.redisKey(cred.CompanyID, cred.UserID), sealed, 0).Err(); err != nil {
		return fmt.Errorf("redis: set credencial: %w", err)
	}
	return nil
}

// Clear borra la credencial; no existir no es error.
func (s *CredentialStore) Clear(ctx context.Context, companyID, userID string) error {
	if err := s.client.Del(ctx, s.redisKey(companyID, userID)).Err(); err != nil {
		return fmt.Errorf("redis: borrar credencial: %w", err)
	}
	return nil
}

// seal devuelve nonce || secretbox(plain).
func seal(key [32]byte, plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("redis: generar nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &key), nil
}

func open(key [32]byte, sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrCorruptCredential
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &key)
	if !ok {
		return nil, ErrCorruptCredential
	}
	return plain, nil
}
