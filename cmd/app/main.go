package main

import (
	"context"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"log"
	"os"
	"voyago/cmd/fx/account_fx"
	"voyago/cmd/fx/agent_fx"
	"voyago/cmd/fx/controllers_fx"
	"voyago/cmd/fx/db_fx"
	"voyago/cmd/fx/plans_fx"
	"voyago/internal/api/controllers"
	"voyago/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		agent_fx.Module,
		plans_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	planController *controllers.PlanController,
	accountController *controllers.AccountController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, planController, accountController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	planController *controllers.PlanController,
	accountController *controllers.AccountController,
	healthController *controllers.HealthController) {

	r.GET("/", healthController.Home)
	r.GET("/health", healthController.Health)

	r.POST("/plan", middleware.OptionalJWTMiddleware(), planController.CreatePlan)
	r.GET("/history", middleware.JWTAuthMiddleware(), planController.GetHistory)

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)
}
