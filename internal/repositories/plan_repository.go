// internal/repositories/plan_repo.go
package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	dbm "voyago/internal/models/db_models"
)

type PlanRepository interface {
	Save(ctx context.Context, record *dbm.TravelPlanRecord) error
	ListByUserId(ctx context.Context, userId string, limit int) ([]dbm.TravelPlanRecord, error)
	SearchByVector(ctx context.Context, userId string, vector pgvector.Vector, limit int) ([]dbm.TravelPlanRecord, error)
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Save(ctx context.Context, record *dbm.TravelPlanRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *planRepository) ListByUserId(ctx context.Context, userId string, limit int) ([]dbm.TravelPlanRecord, error) {
	var records []dbm.TravelPlanRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *planRepository) SearchByVector(ctx context.Context, userId string, vector pgvector.Vector, limit int) ([]dbm.TravelPlanRecord, error) {
	var records []dbm.TravelPlanRecord

	query := `
        SELECT *
        FROM travel_plan_records
        WHERE user_id = $1
        ORDER BY embedding <=> $2  -- Cosine distance (closer to 0 is better)
        LIMIT $3
    `

	err := r.db.WithContext(ctx).Raw(query, userId, vector.String(), limit).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
