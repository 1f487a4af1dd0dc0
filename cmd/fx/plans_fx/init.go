package plans_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"voyago/internal/repositories"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

var Module = fx.Provide(provideEmbeddingClient, providePlanRepo, providePlanService)

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		return utils.NewOpenAIEmbeddingClient(apiKey)
	}
	return utils.NewHashEmbeddingClient()
}

func providePlanRepo(db *gorm.DB) repositories.PlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePlanService(planRepo repositories.PlanRepository, embedding utils.EmbeddingClientInterface) services.PlanServiceInterface {
	return services.NewPlanService(planRepo, embedding)
}
