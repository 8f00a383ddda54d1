package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/deckgen-backend/internal/data/repos/presentation"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type PresentationRepo = presentation.PresentationRepo

func NewPresentationRepo(db *gorm.DB, log *logger.Logger) PresentationRepo {
	return presentation.NewPresentationRepo(db, log)
}
