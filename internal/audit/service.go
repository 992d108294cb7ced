// service.go implements the audit trail service: stamping and inserting entries
// inside provisioning transactions, paginated history reads, and post-commit
// shipping to external destinations.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wms-platform/tenants-admin/internal/db/models"
	"github.com/wms-platform/tenants-admin/internal/db/repositories"
	"github.com/wms-platform/tenants-admin/internal/safego"
	"github.com/wms-platform/tenants-admin/internal/telemetry"
)

const (
	// DefaultHistoryLimit is the page size when the caller gives none.
	DefaultHistoryLimit = 10

	// UserActionsLimit caps per-user activity reads.
	UserActionsLimit = 50

	// entityHistoryPageSize is the read batch for full entity trails.
	entityHistoryPageSize = 100

	shipTimeout = 15 * time.Second
)

// HistoryPage is one page of a tenant's audit trail
type HistoryPage struct {
	Entries    []*models.AuditLog `json:"entries"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// Service provides audit trail operations over one repository
type Service struct {
	repo    *repositories.AuditRepository
	shipper Shipper
}

// NewService creates an audit service. shipper may be nil when no external
// destinations are configured.
func NewService(repo *repositories.AuditRepository, shipper Shipper) *Service {
	return &Service{repo: repo, shipper: shipper}
}

// LogAction stamps and inserts one audit entry. A non-nil tx makes the insert
// part of the caller's transaction so a rolled-back mutation leaves no trail
// entry behind.
func (s *Service) LogAction(ctx context.Context, tx *sqlx.Tx, entry *models.AuditLog) error {
	entry.ID = uuid.New().String()
	entry.Timestamp = time.Now()
	if entry.PerformedBy.Username == "" {
		entry.PerformedBy.Username = "system"
	}

	if err := s.repo.Insert(ctx, tx, entry); err != nil {
		return err
	}

	telemetry.AuditEntriesTotal.WithLabelValues(entry.Action).Inc()
	return nil
}

// Ship forwards a committed entry to the configured external destinations in
// the background. Call only after the owning transaction committed; failures
// are logged and swallowed.
func (s *Service) Ship(entry *models.AuditLog) {
	if s.shipper == nil {
		return
	}

	safego.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shipTimeout)
		defer cancel()

		if err := s.shipper.Ship(ctx, entry); err != nil {
			slog.Warn("audit shipping failed", "entry_id", entry.ID, "error", err)
		}
	})
}

// GetHistory returns one page of a tenant's audit trail, newest first.
// page and limit fall back to 1 and DefaultHistoryLimit.
func (s *Service) GetHistory(ctx context.Context, tenantID string, filters repositories.AuditFilters, page, limit int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultHistoryLimit
	}

	entries, total, err := s.repo.List(ctx, tenantID, filters, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &HistoryPage{
		Entries:    entries,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// GetEntityHistory returns the full trail of one entity, newest first. The
// trail is read in batches so long-lived entities come back complete.
func (s *Service) GetEntityHistory(ctx context.Context, tenantID, entityType, entityID string) ([]*models.AuditLog, error) {
	filters := repositories.AuditFilters{
		EntityType: &entityType,
		EntityID:   &entityID,
	}

	var trail []*models.AuditLog
	for offset := 0; ; offset += entityHistoryPageSize {
		entries, total, err := s.repo.List(ctx, tenantID, filters, entityHistoryPageSize, offset)
		if err != nil {
			return nil, err
		}
		trail = append(trail, entries...)
		if len(entries) == 0 || len(trail) >= total {
			return trail, nil
		}
	}
}

// GetUserActions returns the most recent actions one actor performed on a
// tenant, optionally bounded to an inclusive date range
func (s *Service) GetUserActions(ctx context.Context, tenantID, userID string, start, end *time.Time) ([]*models.AuditLog, error) {
	filters := repositories.AuditFilters{
		PerformedBy: &userID,
		StartDate:   start,
		EndDate:     end,
	}
	entries, _, err := s.repo.List(ctx, tenantID, filters, UserActionsLimit, 0)
	return entries, err
}

// DeleteByTenant removes a tenant's entire audit trail. Only called during full
// tenant teardown, inside the teardown transaction.
func (s *Service) DeleteByTenant(ctx context.Context, tx *sqlx.Tx, tenantID string) error {
	return s.repo.DeleteByTenant(ctx, tx, tenantID)
}
