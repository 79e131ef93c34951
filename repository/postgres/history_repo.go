package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/repository"
)

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository returns a Postgres-backed implementation of HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) repository.HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	const query = `
	SELECT h.id, h.agent_id, COALESCE(a.name, ''), h.user_id, h.input, h.output, h.created_at
	FROM history h
	LEFT JOIN agents a ON a.id = h.agent_id
	WHERE h.user_id = $1
	ORDER BY h.created_at DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var input []byte
		if err := rows.Scan(&entry.ID, &entry.AgentID, &entry.AgentName, &entry.UserID, &input, &entry.Output, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(input) > 0 {
			_ = json.Unmarshal(input, &entry.Input)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *historyRepository) Create(ctx context.Context, entry *domain.HistoryEntry) (*domain.HistoryEntry, error) {
	if entry == nil {
		return nil, domain.ErrInvalidPayload
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO history (id, agent_id, user_id, input, output)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.AgentID,
		entry.UserID,
		marshalJSON(entry.Input),
		entry.Output,
	).Scan(&entry.CreatedAt); err != nil {
		return nil, err
	}
	return entry, nil
}
