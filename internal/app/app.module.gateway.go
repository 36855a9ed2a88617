package app

import (
	"github.com/joshuarp/msgcontext-gateway/internal/handlers"
	"github.com/joshuarp/msgcontext-gateway/internal/repository"
	"github.com/joshuarp/msgcontext-gateway/internal/services"
	"go.uber.org/fx"
)

// GatewayModule receives platform messages and runs them through the dedup
// gate into the inbox.
func GatewayModule() fx.Option {
	return fx.Module("gateway",
		fx.Provide(
			fx.Annotate(
				provideInboxPostgresSQLX,
				fx.ResultTags(`name:"db_inbox"`),
			),
			fx.Annotate(
				repository.NewInboundMessageRepository,
				fx.ParamTags(`name:"db_inbox"`),
				fx.As(new(services.InboundInboxRepository)),
			),
			provideDedupGate,
			provideInboundMessageServiceOptions,
			fx.Annotate(
				services.NewInboundMessageService,
				fx.As(new(handlers.InboundMessageProcessor)),
			),
			handlers.NewInboundMessageHandler,
		),
		fx.Invoke(registerGatewayRoutes),
	)
}
