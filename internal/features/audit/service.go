package audit

import (
	"context"

	common_models "go-support/internal/common/models"
	"go-support/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxHistory = 100

type AuditService interface {
	LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error
	ListLogs(ctx context.Context, module, recordID string, page, limit int64) ([]common_models.AuditLog, error)
	History(ctx context.Context, module, recordID string) ([]common_models.AuditLog, error)
}

type AuditServiceImpl struct {
	Repo AuditRepository
}

func NewAuditService(repo AuditRepository) AuditService {
	return &AuditServiceImpl{Repo: repo}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	log := common_models.AuditLog{
		ID:        primitive.NewObjectID(),
		Action:    action,
		Module:    module,
		RecordID:  recordID,
		Changes:   changes,
		Timestamp: utils.Now(),
	}
	return s.Repo.Create(ctx, log)
}

func (s *AuditServiceImpl) ListLogs(ctx context.Context, module, recordID string, page, limit int64) ([]common_models.AuditLog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxHistory {
		limit = maxHistory
	}
	offset := (page - 1) * limit

	logs, err := s.Repo.List(ctx, map[string]string{"module": module, "record_id": recordID}, limit, offset)
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch audit logs", err)
	}
	return logs, nil
}

// History returns the latest entries recorded for one record.
func (s *AuditServiceImpl) History(ctx context.Context, module, recordID string) ([]common_models.AuditLog, error) {
	return s.ListLogs(ctx, module, recordID, 1, maxHistory)
}
