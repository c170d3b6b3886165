package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

// Repository persists the activity trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing audit log")
	}
	return nil
}

// List returns the newest entries first.
func (r *repository) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing audit logs")
	}
	return entries, nil
}

var _ Repository = (*repository)(nil)

// Recorder is the best-effort trail writer handed to services. Failures are
// the caller's to log, never to propagate.
type Recorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action string) error
}

type recorder struct {
	repo Repository
}

// NewRecorder wraps a repository as a Recorder.
func NewRecorder(repo Repository) Recorder {
	return &recorder{repo: repo}
}

func (r *recorder) Record(ctx context.Context, actorID uuid.UUID, action string) error {
	return r.repo.Create(ctx, &models.AuditLog{ActorID: actorID, Action: action})
}
