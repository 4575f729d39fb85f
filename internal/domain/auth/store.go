package auth

import (
	"context"

	"hranalytics/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

type Credentials struct {
	UserID       string
	Email        string
	PasswordHash string
	Role         string
}

func (s *Store) CredentialsByEmail(ctx context.Context, email string) (Credentials, error) {
	var creds Credentials
	err := s.DB.QueryRow(ctx, `
    SELECT id::text, email, password_hash, role
    FROM users
    WHERE lower(email) = lower($1) AND is_active
  `, email).Scan(&creds.UserID, &creds.Email, &creds.PasswordHash, &creds.Role)
	if err != nil {
		return Credentials{}, err
	}
	return creds, nil
}
