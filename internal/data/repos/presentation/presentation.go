package presentation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/deckgen-backend/internal/domain"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type PresentationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Presentation) ([]*types.Presentation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Presentation, error)
	GetByFileName(ctx context.Context, tx *gorm.DB, fileName string) (*types.Presentation, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Presentation, error)
}

type presentationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPresentationRepo(db *gorm.DB, baseLog *logger.Logger) PresentationRepo {
	repoLog := baseLog.With("repo", "PresentationRepo")
	return &presentationRepo{db: db, log: repoLog}
}

func (r *presentationRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Presentation) ([]*types.Presentation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.Presentation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns (nil, nil) when no row matches.
func (r *presentationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Presentation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Presentation
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByFileName returns (nil, nil) when no row matches.
func (r *presentationRepo) GetByFileName(ctx context.Context, tx *gorm.DB, fileName string) (*types.Presentation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Presentation
	err := transaction.WithContext(ctx).Where("file_name = ?", fileName).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListRecent returns the newest rows first, without their plan payloads.
func (r *presentationRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Presentation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	var results []*types.Presentation
	if err := transaction.WithContext(ctx).
		Omit("plan", "original_input").
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
