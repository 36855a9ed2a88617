package app

import (
	"github.com/joshuarp/msgcontext-gateway/internal/handlers"
	"github.com/joshuarp/msgcontext-gateway/internal/services"
	"go.uber.org/fx"
)

// InspectModule serves recent conversation context to operators.
func InspectModule() fx.Option {
	return fx.Module("inspect",
		fx.Provide(
			provideContextInspector,
			fx.Annotate(
				services.NewConversationContextService,
				fx.As(new(handlers.ConversationContextReader)),
			),
			handlers.NewConversationContextHandler,
		),
		fx.Invoke(registerInspectRoutes),
	)
}
