package agent

import (
	"context"

	"go-support/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AgentService interface {
	ListActiveAgents(ctx context.Context) ([]Agent, error)
	AgentsByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*Agent, error)
}

type AgentServiceImpl struct {
	Repo AgentRepository
}

func NewAgentService(repo AgentRepository) AgentService {
	return &AgentServiceImpl{Repo: repo}
}

func (s *AgentServiceImpl) ListActiveAgents(ctx context.Context) ([]Agent, error) {
	agents, err := s.Repo.FindActive(ctx)
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch agents", err)
	}
	return agents, nil
}

// AgentsByID loads the referenced agents keyed by id, active or not.
func (s *AgentServiceImpl) AgentsByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*Agent, error) {
	agents, err := s.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*Agent, len(agents))
	for i := range agents {
		byID[agents[i].ID] = &agents[i]
	}
	return byID, nil
}
