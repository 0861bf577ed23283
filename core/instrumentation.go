package positioning

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const scopeName = "github.com/koscakluka/whereabouts/core"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)

var (
	publishedEvents  metric.Int64Counter
	crosstalkDropped metric.Int64Counter
)

func init() {
	var err error
	publishedEvents, err = meter.Int64Counter("whereabouts.adapter.events",
		metric.WithDescription("Events published by positioning adapters"),
		metric.WithUnit("{event}"))
	if err != nil {
		otel.Handle(err)
		publishedEvents = noop.Int64Counter{}
	}

	crosstalkDropped, err = meter.Int64Counter("whereabouts.adapter.crosstalk",
		metric.WithDescription("Callbacks dropped because they came from another manager"),
		metric.WithUnit("{callback}"))
	if err != nil {
		otel.Handle(err)
		crosstalkDropped = noop.Int64Counter{}
	}
}
