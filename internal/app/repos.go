package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/deckgen-backend/internal/data/repos"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type Repos struct {
	Presentation repos.PresentationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Presentation: repos.NewPresentationRepo(db, log),
	}
}
