package response_models

import (
	"voyago/internal/models/agent_models"
)

// PlanResponse is returned by POST /plan. Success covers the pipeline as a
// whole; callers must inspect per-step statuses to spot degraded data.
type PlanResponse struct {
	PlanID    string                   `json:"plan_id"`
	Query     string                   `json:"query"`
	Plan      agent_models.TravelPlan  `json:"plan"`
	Steps     []agent_models.StepTrace `json:"steps"`
	Summary   string                   `json:"summary"`
	ToolsUsed []string                 `json:"tools_used"`
	Debug     PlanDebugInfo            `json:"debug_info"`
}

type PlanDebugInfo struct {
	TotalSteps      int `json:"total_steps"`
	SuccessfulTools int `json:"successful_tools"`
	FailedTools     int `json:"failed_tools"`
}

type HistoryItem struct {
	ID           string `json:"id"`
	Query        string `json:"query"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DurationDays int    `json:"duration_days"`
	ToolsUsed    int    `json:"tools_used"`
	CreatedAt    int64  `json:"created_at"`
}
