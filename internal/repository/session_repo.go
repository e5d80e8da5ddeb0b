package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"todo-app/internal/domain"
)

// PgSessionRepository persiste sesiones en la tabla sessions. Se usa como
// session store cuando no hay Redis configurado.
// La tabla es fija (migracion 000002); SESSION_COLLECTION solo aplica a Redis.
type PgSessionRepository struct {
	pool Querier
}

func NewPgSessionRepository(pool Querier) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.Session) error {
	const query = `
		INSERT INTO sessions (id, is_authenticated, user_id, email, username, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.IsAuthenticated,
		session.User.UserID,
		session.User.Email,
		session.User.Username,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if constraint, ok := uniqueViolation(err); ok && constraint == sessionsPKConstraint {
		return ErrDuplicateSession
	}
	return err
}

// Get ignora sesiones vencidas aunque el janitor todavia no las haya borrado.
func (r *PgSessionRepository) Get(ctx context.Context, id string) (domain.Session, error) {
	const query = `
		SELECT id, is_authenticated, user_id, email, username, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > now()
	`
	var session domain.Session
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.IsAuthenticated,
		&session.User.UserID,
		&session.User.Email,
		&session.User.Username,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// DeleteExpired borra las sesiones vencidas y devuelve cuantas elimino.
func (r *PgSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
