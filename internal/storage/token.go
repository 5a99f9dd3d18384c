package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TokenStorage хранит отозванные (после logout) токены до истечения их срока.
type TokenStorage interface {
	// RevokeToken помечает токен отозванным; повторный отзыв не считается ошибкой.
	RevokeToken(ctx context.Context, jti uuid.UUID, userID int64, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti uuid.UUID) (bool, error)
}

type tokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) TokenStorage {
	return &tokenRepository{db: db}
}

// RevokeToken заодно удаляет записи, срок которых уже истек: такие токены
// отклоняются проверкой exp и без blacklist.
func (r *tokenRepository) RevokeToken(ctx context.Context, jti uuid.UUID, userID int64, expiresAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM revoked_tokens WHERE expires_at < NOW()"); err != nil {
		return fmt.Errorf("failed to prune revoked tokens: %w", err)
	}

	query := `INSERT INTO revoked_tokens (jti, user_id, expires_at, revoked_at)
	          VALUES ($1, $2, $3, NOW())
	          ON CONFLICT (jti) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, jti, userID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *tokenRepository) IsTokenRevoked(ctx context.Context, jti uuid.UUID) (bool, error) {
	var revoked bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)", jti,
	).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return revoked, nil
}
