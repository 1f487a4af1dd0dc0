package controllers_fx

import (
	"go.uber.org/fx"
	"voyago/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewHealthController))
