package controllers

import (
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
	"strconv"
	"voyago/internal/models/agent_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

const demoUserID = "demo-user"

type PlanController struct {
	agentService services.AgentServiceInterface
	planService  services.PlanServiceInterface
}

func NewPlanController(agentService services.AgentServiceInterface, planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		agentService: agentService,
		planService:  planService,
	}
}

// CreatePlan godoc
// @Summary Create a travel plan from a natural language query
// @Description Runs the planning pipeline and persists the result. Anonymous requests are saved under the demo user.
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlanRequest true "Travel query payload"
// @Success 200 {object} response_models.PlanResponse
// @Failure 400 {object} utils.APIResponse
// @Router /plan [post]
func (p *PlanController) CreatePlan(c *gin.Context) {
	var req request_models.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Missing 'query' in request body")
		return
	}

	userId := c.GetString("user_id")
	if userId == "" {
		userId = demoUserID
	}

	log.Printf("Processing query for user %s: %s", userId, req.Query)

	result, err := p.agentService.Run(c.Request.Context(), req.Query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	planId, err := p.planService.SavePlan(c.Request.Context(), userId, req.Query, result)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	successful, failed := countStepOutcomes(result.Steps)
	tools := make([]string, 0, len(result.Steps))
	for _, step := range result.Steps {
		tools = append(tools, step.Tool)
	}

	response := response_models.PlanResponse{
		PlanID:    planId,
		Query:     req.Query,
		Plan:      result.Plan,
		Steps:     result.Steps,
		Summary:   result.Plan.Summary,
		ToolsUsed: tools,
		Debug: response_models.PlanDebugInfo{
			TotalSteps:      len(result.Steps),
			SuccessfulTools: successful,
			FailedTools:     failed,
		},
	}

	log.Printf("Successfully created plan %s for user %s", planId, userId)
	utils.RespondSuccess(c, response, "Travel plan created successfully")
}

// GetHistory godoc
// @Summary Get the authenticated user's past travel plans
// @Tags Plans
// @Produce json
// @Param limit query int false "Max results" default(10) maximum(50)
// @Param q query string false "Semantic search over past queries"
// @Success 200 {array} response_models.HistoryItem
// @Security BearerAuth
// @Router /history [get]
func (p *PlanController) GetHistory(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit parameter")
		return
	}

	userId := c.GetString("user_id")

	history, err := p.planService.GetHistory(c.Request.Context(), userId, limit, c.Query("q"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{
		"uid":     userId,
		"history": history,
		"total":   len(history),
		"limit":   limit,
	}, "History fetched successfully")
}

func countStepOutcomes(steps []agent_models.StepTrace) (successful, failed int) {
	for _, step := range steps {
		if step.Status == agent_models.StepSuccess {
			successful++
		} else {
			failed++
		}
	}
	return successful, failed
}
