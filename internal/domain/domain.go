package domain

import (
	"github.com/yungbote/deckgen-backend/internal/domain/presentation"
)

const (
	SourceText = presentation.SourceText
	SourcePlan = presentation.SourcePlan
)

type Presentation = presentation.Presentation
