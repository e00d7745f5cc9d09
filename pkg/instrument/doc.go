// Package instrument provides patch.Observer implementations for
// Prometheus metrics, OpenTelemetry tracing and structured logging.
//
// Example:
//
//	obs := instrument.Multi{
//	    instrument.NewMetrics(instrument.WithRegistry(reg)),
//	    instrument.NewTracing(instrument.WithTracerName("my-app")),
//	}
//	p := patch.New(host, modules.Default(host), patch.WithObserver(obs))
package instrument
