package repository

import (
	"context"

	"github.com/rafaelrch/koplai/domain"
)

type AgentRepository interface {
	List(ctx context.Context) ([]domain.Agent, error)
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	Update(ctx context.Context, agent *domain.Agent) error
	Delete(ctx context.Context, id string) error
}

type HistoryRepository interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error)
	Create(ctx context.Context, entry *domain.HistoryEntry) (*domain.HistoryEntry, error)
}
