package controllers_fx

import (
	"go.uber.org/fx"
	"lumijob/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewApplicationController),
	fx.Provide(controllers.NewPipelineController),
	fx.Provide(controllers.NewJobController),
	fx.Provide(controllers.NewBookmarkController),
	fx.Provide(controllers.NewSubscriptionController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewHealthController),
)
