package agent_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"voyago/internal/services"
	mem "voyago/pkg/memcache"
	"voyago/pkg/utils"
)

var Module = fx.Provide(
	provideExtractorClient,
	provideBearerTokens,
	provideQueryParser,
	provideFlightService,
	provideWeatherService,
	provideAttractionService,
	provideItineraryService,
	provideAgentService,
)

func provideExtractorClient() utils.ExtractorClientInterface {
	provider := os.Getenv("AI_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if provider == "gemini" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	client, err := utils.NewExtractorClient(provider, apiKey, os.Getenv("AI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to create extractor client: %v", err)
	}
	return client
}

func provideBearerTokens() mem.BearerTokenStore {
	return mem.NewBearerTokens()
}

func provideQueryParser(extractor utils.ExtractorClientInterface) services.QueryParserInterface {
	return services.NewQueryParser(extractor)
}

func provideFlightService(tokens mem.BearerTokenStore) services.FlightServiceInterface {
	return services.NewFlightService(tokens)
}

func provideWeatherService() services.WeatherServiceInterface {
	return services.NewWeatherService()
}

func provideAttractionService() services.AttractionServiceInterface {
	return services.NewAttractionService()
}

func provideItineraryService() services.ItineraryServiceInterface {
	return services.NewItineraryService()
}

func provideAgentService(
	parser services.QueryParserInterface,
	flights services.FlightServiceInterface,
	weather services.WeatherServiceInterface,
	attractions services.AttractionServiceInterface,
	itinerary services.ItineraryServiceInterface,
) services.AgentServiceInterface {
	return services.NewAgentService(parser, flights, weather, attractions, itinerary)
}
