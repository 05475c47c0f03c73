package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"time"
)

const tokenTTL = 24 * time.Hour

// CreateToken issues a new browser session token.
func (s *Store) CreateToken() (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	now := time.Now()
	_, err = s.db.Exec(
		`INSERT INTO auth_tokens (id, created_at, expires_at) VALUES (?, ?, ?)`,
		token, now, now.Add(tokenTTL),
	)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidToken reports whether token exists and has not expired.
// Expired tokens are removed as a side effect.
func (s *Store) ValidToken(token string) (bool, error) {
	var expiresAt time.Time
	err := s.db.QueryRow(
		`SELECT expires_at FROM auth_tokens WHERE id = ?`, token,
	).Scan(&expiresAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if time.Now().After(expiresAt) {
		_ = s.DeleteToken(token)
		return false, nil
	}
	return true, nil
}

// DeleteToken removes a session token.
func (s *Store) DeleteToken(token string) error {
	_, err := s.db.Exec(`DELETE FROM auth_tokens WHERE id = ?`, token)
	return err
}

// DeleteAllTokens removes every session token. Used on logout so no stale
// browser keeps a live session after the identity is cleared.
func (s *Store) DeleteAllTokens() error {
	_, err := s.db.Exec(`DELETE FROM auth_tokens`)
	return err
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
