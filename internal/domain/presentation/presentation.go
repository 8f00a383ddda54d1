package presentation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SourceText = "text"
	SourcePlan = "plan"
)

// Presentation is the catalog record of one generated artifact. Plan holds
// the normalized plan the file was rendered from.
type Presentation struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"not null;column:title" json:"title"`
	Source        string         `gorm:"not null;column:source;index" json:"source"`
	OriginalInput string         `gorm:"column:original_input" json:"original_input,omitempty"`
	Plan          datatypes.JSON `gorm:"column:plan" json:"plan,omitempty"`
	FileName      string         `gorm:"not null;uniqueIndex;column:file_name" json:"file_name"`
	FilePath      string         `gorm:"not null;column:file_path" json:"-"`
	SlideCount    int            `gorm:"not null;column:slide_count" json:"slide_count"`
	SizeBytes     int64          `gorm:"not null;column:size_bytes" json:"size_bytes"`
	Repairs       int            `gorm:"not null;default:0;column:repairs" json:"repairs"`
	Fallback      bool           `gorm:"not null;default:false;column:fallback" json:"fallback"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Presentation) TableName() string { return "presentation" }

// BeforeCreate assigns an id when the caller did not. The sqlite catalog has
// no uuid_generate_v4, so ids are always minted here.
func (p *Presentation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
