package services

import (
	"context"
	"encoding/json"
	"log"
	"voyago/internal/models/agent_models"
	"voyago/internal/models/db_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/utils"
)

type PlanServiceInterface interface {
	SavePlan(ctx context.Context, userId, query string, result agent_models.PlanResult) (string, error)
	GetHistory(ctx context.Context, userId string, limit int, search string) ([]response_models.HistoryItem, error)
}

type PlanService struct {
	planRepo  repositories.PlanRepository
	embedding utils.EmbeddingClientInterface
}

func NewPlanService(planRepo repositories.PlanRepository, embedding utils.EmbeddingClientInterface) PlanServiceInterface {
	return &PlanService{
		planRepo:  planRepo,
		embedding: embedding,
	}
}

// SavePlan persists one pipeline run with its trace and a query embedding
// for later semantic history search. The plan itself is stored opaque.
func (p *PlanService) SavePlan(ctx context.Context, userId, query string, result agent_models.PlanResult) (string, error) {
	planJSON, err := json.Marshal(result.Plan)
	if err != nil {
		return "", utils.ErrInvalidInput
	}
	stepsJSON, err := json.Marshal(result.Steps)
	if err != nil {
		return "", utils.ErrInvalidInput
	}

	tools := make([]string, 0, len(result.Steps))
	for _, step := range result.Steps {
		tools = append(tools, step.Tool)
	}

	record := &db_models.TravelPlanRecord{
		UserID:       userId,
		Query:        query,
		Origin:       result.Plan.Origin,
		Destination:  result.Plan.Destination,
		DurationDays: result.Plan.DurationDays,
		Plan:         planJSON,
		Steps:        stepsJSON,
		ToolsUsed:    tools,
	}

	vector, err := p.embedding.GetEmbedding(ctx, query)
	if err != nil {
		// History search degrades to recency order for this row.
		log.Printf("Embedding error: %v", err)
	} else {
		record.Embedding = vector
	}

	if err := p.planRepo.Save(ctx, record); err != nil {
		return "", utils.ErrDatabaseError
	}

	return record.ID.String(), nil
}

func (p *PlanService) GetHistory(ctx context.Context, userId string, limit int, search string) ([]response_models.HistoryItem, error) {
	if limit < 1 || limit > 50 {
		return nil, utils.ErrInvalidLimit
	}

	var (
		records []db_models.TravelPlanRecord
		err     error
	)

	if search != "" {
		vector, embedErr := p.embedding.GetEmbedding(ctx, search)
		if embedErr != nil {
			log.Printf("Embedding error: %v", embedErr)
			records, err = p.planRepo.ListByUserId(ctx, userId, limit)
		} else {
			records, err = p.planRepo.SearchByVector(ctx, userId, vector, limit)
		}
	} else {
		records, err = p.planRepo.ListByUserId(ctx, userId, limit)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.HistoryItem, 0, len(records))
	for _, record := range records {
		out = append(out, response_models.HistoryItem{
			ID:           record.ID.String(),
			Query:        record.Query,
			Origin:       record.Origin,
			Destination:  record.Destination,
			DurationDays: record.DurationDays,
			ToolsUsed:    len(record.ToolsUsed),
			CreatedAt:    record.CreatedAt,
		})
	}
	return out, nil
}
