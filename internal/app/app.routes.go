package app

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/joshuarp/msgcontext-gateway/internal/handlers"
	"github.com/joshuarp/msgcontext-gateway/internal/middlewares"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/config"
	sharedjwt "github.com/joshuarp/msgcontext-gateway/internal/shared/jwt"
	"go.uber.org/fx"
)

type routerGroupsOut struct {
	fx.Out
	Public fiber.Router `name:"api_public"`
}

func provideRouterGroups(app *fiber.App, logger *slog.Logger) routerGroupsOut {
	app.Use(middlewares.NewHTTPRecoveryMiddleware(logger))
	app.Use(middlewares.NewHTTPRequestIDMiddleware())
	app.Use(middlewares.NewHTTPRequestResponseLogMiddleware(logger))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	return routerGroupsOut{
		Public: app.Group("/api/v1"),
	}
}

type gatewayRoutesIn struct {
	fx.In
	Public  fiber.Router `name:"api_public"`
	Handler *handlers.InboundMessageHandler
}

func registerGatewayRoutes(in gatewayRoutesIn) {
	in.Handler.Register(in.Public)
}

type inspectRoutesIn struct {
	fx.In
	Public       fiber.Router `name:"api_public"`
	Config       config.ConfigProvider
	TokenManager sharedjwt.TokenManager
	Handler      *handlers.ConversationContextHandler
}

func registerInspectRoutes(in inspectRoutesIn) {
	operator := in.Public.Group("/ops",
		middlewares.NewHTTPCORSMiddleware(in.Config.GetStringSlice("server.cors_allow_origins")),
		middlewares.NewHTTPOperatorAuthMiddleware(in.TokenManager, sharedjwt.ScopeContextRead),
	)
	in.Handler.Register(operator)
}
