// Package services contains the application services of the sx client: the
// token store that feeds credentials to the API client and the dashboard
// service that drives authentication, export, listing and rename.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sxclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sxclient/internal/dbx"
)

const (
	// TokenKey is the store slot of the access token.
	TokenKey = "sx_access_token"

	// TokenSavedAtKey records when the token was last written (RFC 3339).
	TokenSavedAtKey = "sx_access_token_saved_at"
)

// TokenStore persists the single access token of a profile.
type TokenStore interface {
	// Token returns the stored token, or "" when none is set.
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error

	// SavedAt reports when the token was last written; ok is false when
	// no token was ever saved.
	SavedAt(ctx context.Context) (t time.Time, ok bool, err error)
}

// TokenService is the sqlite-backed TokenStore. It also satisfies
// client.CredentialProvider.
type TokenService struct {
	db  *sql.DB
	now func() time.Time
}

func NewTokenService(db *sql.DB) *TokenService {
	return &TokenService{db: db, now: time.Now}
}

func (s *TokenService) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *TokenService) Token(ctx context.Context) (string, error) {
	token, _, err := s.repo(s.db).Get(ctx, TokenKey)
	if err != nil {
		return "", err
	}
	return token, nil
}

// SetToken overwrites the stored token. Any string is accepted, the empty
// one included.
func (s *TokenService) SetToken(ctx context.Context, token string) error {
	savedAt := s.now().UTC().Format(time.RFC3339)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, TokenKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, TokenSavedAtKey, savedAt)
	})
}

func (s *TokenService) ClearToken(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, TokenKey, TokenSavedAtKey)
}

// SavedAt reports when the token was last written. ok is false if no token
// was ever saved.
func (s *TokenService) SavedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	raw, found, err := s.repo(s.db).Get(ctx, TokenSavedAtKey)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", TokenSavedAtKey, err)
	}
	return t, true, nil
}

// Seed stores token only when the store holds none. It reports whether the
// token was written.
func (s *TokenService) Seed(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	current, err := s.Token(ctx)
	if err != nil {
		return false, err
	}
	if current != "" {
		return false, nil
	}
	if err := s.SetToken(ctx, token); err != nil {
		return false, err
	}
	return true, nil
}
