package repository

import (
	"context"

	"todo-app/internal/domain"
)

type TodoRepository interface {
	Create(ctx context.Context, todo domain.Todo) error
}

type PgTodoRepository struct {
	pool Querier
}

func NewPgTodoRepository(pool Querier) *PgTodoRepository {
	return &PgTodoRepository{pool: pool}
}

func (r *PgTodoRepository) Create(ctx context.Context, todo domain.Todo) error {
	const query = `
		INSERT INTO todos (id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		todo.ID,
		todo.UserID,
		todo.Text,
		todo.CreatedAt,
	)
	return err
}
