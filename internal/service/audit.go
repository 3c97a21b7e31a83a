package service

import (
	"context"
	"encoding/json"

	"github.com/safarhub/backoffice/internal/models"
	"github.com/safarhub/backoffice/internal/repository"
	"github.com/safarhub/backoffice/internal/utils"
)

// AuditService records every admin mutation against a platform
// resource. Recording is best-effort: a failed insert is logged and
// never fails the operator's action.
type AuditService struct {
	repo   repository.Repository
	logger *utils.Logger
}

// NewAuditService creates an audit service
func NewAuditService(repo repository.Repository, logger *utils.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record stores one audit event. payload may be nil.
func (s *AuditService) Record(ctx context.Context, actor, action, resource, resourceID string, payload interface{}) {
	if s.repo == nil {
		return
	}

	encoded := ""
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			encoded = string(data)
		}
	}

	event := &models.AuditEvent{
		Actor:      actor,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Payload:    encoded,
	}
	if err := s.repo.InsertAuditEvent(ctx, event); err != nil {
		s.logger.Errorf("failed to record audit event: %v", err)
	}
}

// List returns the most recent audit events
func (s *AuditService) List(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	return s.repo.ListAuditEvents(ctx, limit)
}
