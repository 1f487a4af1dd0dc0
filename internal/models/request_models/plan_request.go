package request_models

type CreatePlanRequest struct {
	Query string `json:"query" binding:"required"`
}
