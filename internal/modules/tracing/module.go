package tracing

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

// NewTracer returns the jaeger tracer when tracing.host is set and the no-op
// global tracer otherwise.
func NewTracer(lc fx.Lifecycle, cfg *config.Config) (opentracing.Tracer, error) {
	conf := tracing.Config{Host: cfg.Tracing.Host, Port: cfg.Tracing.Port}
	if !conf.Enabled() {
		return opentracing.GlobalTracer(), nil
	}

	tracer, closeFn, err := tracing.InitTracer(conf)
	if err != nil {
		return nil, err
	}
	logger.Info("[TRACING] reporting to %s:%d", conf.Host, conf.Port)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeFn()
			return nil
		},
	})
	return tracer, nil
}

func Module() fx.Option {
	return fx.Module("tracing",
		fx.Provide(NewTracer),
	)
}
