package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/repository"
)

// Message is one turn of a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer abstracts the LLM provider.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// UseCase manages prompt-template agents and their runs.
type UseCase struct {
	agents    repository.AgentRepository
	history   repository.HistoryRepository
	completer Completer
	logger    *zap.Logger
}

func New(agents repository.AgentRepository, history repository.HistoryRepository, completer Completer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		agents:    agents,
		history:   history,
		completer: completer,
		logger:    logger,
	}
}

func (uc *UseCase) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return uc.agents.List(ctx)
}

func (uc *UseCase) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	return uc.agents.GetByID(ctx, id)
}

func (uc *UseCase) CreateAgent(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	if agent == nil || strings.TrimSpace(agent.Name) == "" || strings.TrimSpace(agent.Prompt) == "" {
		return nil, domain.ErrInvalidPayload
	}
	created, err := uc.agents.Create(ctx, agent)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar agente", err)
	}
	return created, nil
}

func (uc *UseCase) UpdateAgent(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	if agent == nil || agent.ID == "" || strings.TrimSpace(agent.Name) == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.agents.Update(ctx, agent); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao salvar agente", err)
	}
	return agent, nil
}

func (uc *UseCase) DeleteAgent(ctx context.Context, id string) error {
	return uc.agents.Delete(ctx, id)
}

// RunAgent renders the agent's prompt with the submitted inputs, requests a
// completion and records the run in the user's history.
func (uc *UseCase) RunAgent(ctx context.Context, agentID, userID string, inputs map[string]string) (*domain.HistoryEntry, error) {
	agent, err := uc.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	output, err := uc.completer.Complete(ctx, BuildMessages(agent, inputs))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao gerar resposta", err)
	}

	entry := &domain.HistoryEntry{
		AgentID: agent.ID,
		UserID:  userID,
		Input:   inputs,
		Output:  output,
	}
	saved, err := uc.history.Create(ctx, entry)
	if err != nil {
		// The generation succeeded; losing the history row should not hide
		// the result from the user.
		uc.logger.Error("failed to record agent run", zap.String("agent_id", agentID), zap.Error(err))
		entry.AgentName = agent.Name
		return entry, nil
	}
	saved.AgentName = agent.Name
	return saved, nil
}

func (uc *UseCase) ListHistory(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	return uc.history.ListByUser(ctx, userID, limit)
}

// BuildMessages assembles the chat-completion conversation: the agent's
// prompt as the system message and the filled-in inputs, labeled and in a
// stable order, as the user message.
func BuildMessages(agent *domain.Agent, inputs map[string]string) []Message {
	var lines []string
	for _, field := range agent.Inputs {
		value, ok := inputs[field.Name]
		if !ok || value == "" {
			continue
		}
		label := field.Label
		if label == "" {
			label = field.Name
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, value))
	}

	// inputs the agent does not declare are still forwarded, sorted for
	// determinism
	declared := make(map[string]bool, len(agent.Inputs))
	for _, field := range agent.Inputs {
		declared[field.Name] = true
	}
	var extra []string
	for name, value := range inputs {
		if !declared[name] && value != "" {
			extra = append(extra, fmt.Sprintf("%s: %s", name, value))
		}
	}
	sort.Strings(extra)
	lines = append(lines, extra...)

	return []Message{
		{Role: "system", Content: agent.Prompt},
		{Role: "user", Content: strings.Join(lines, "\n")},
	}
}
