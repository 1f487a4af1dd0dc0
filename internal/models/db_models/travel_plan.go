package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// TravelPlanRecord is one persisted pipeline run. The plan and its step trace
// are stored as opaque jsonb; the denormalized columns exist for history
// listings without unmarshalling the whole plan.
type TravelPlanRecord struct {
	BaseModel
	UserID       string `gorm:"index"`
	Query        string
	Origin       string
	Destination  string
	DurationDays int
	Plan         datatypes.JSON  `gorm:"type:jsonb"`
	Steps        datatypes.JSON  `gorm:"type:jsonb"`
	ToolsUsed    pq.StringArray  `gorm:"type:text[]"`
	Embedding    pgvector.Vector `gorm:"type:vector(1536)"`
}
