package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/repository"
)

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository returns a Postgres-backed implementation of AgentRepository.
// The tags column is normalized through domain.NormalizeTags on read because
// historical rows carry several encodings.
func NewAgentRepository(pool *pgxpool.Pool) repository.AgentRepository {
	return &agentRepository{pool: pool}
}

func (r *agentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	const query = `
	SELECT id, name, description, prompt, tags, inputs, created_at, updated_at
	FROM agents
	ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *agent)
	}
	return agents, rows.Err()
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	const query = `
	SELECT id, name, description, prompt, tags, inputs, created_at, updated_at
	FROM agents
	WHERE id = $1
	`
	return scanAgent(r.pool.QueryRow(ctx, query, id))
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	if agent == nil {
		return nil, domain.ErrInvalidPayload
	}
	if agent.ID == "" {
		agent.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO agents (id, name, description, prompt, tags, inputs)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		agent.ID,
		agent.Name,
		agent.Description,
		agent.Prompt,
		marshalJSON(agent.Tags),
		marshalJSON(agent.Inputs),
	).Scan(&agent.CreatedAt, &agent.UpdatedAt); err != nil {
		return nil, err
	}
	return agent, nil
}

func (r *agentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	if agent == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE agents
	SET name = $2,
		description = $3,
		prompt = $4,
		tags = $5,
		inputs = $6,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		agent.ID,
		agent.Name,
		agent.Description,
		agent.Prompt,
		marshalJSON(agent.Tags),
		marshalJSON(agent.Inputs),
	).Scan(&agent.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAgentNotFound
		}
		return err
	}
	return nil
}

func (r *agentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

func scanAgent(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Agent, error) {
	var agent domain.Agent
	var (
		tags   []byte
		inputs []byte
	)

	if err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Description,
		&agent.Prompt,
		&tags,
		&inputs,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, err
	}

	agent.Tags = domain.NormalizeTags(tags)
	if len(inputs) > 0 {
		if err := json.Unmarshal(inputs, &agent.Inputs); err != nil {
			return nil, err
		}
	}
	if agent.Inputs == nil {
		agent.Inputs = []domain.AgentInput{}
	}
	return &agent, nil
}
