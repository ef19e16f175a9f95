package tracing

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/Notifuse/canvas/config"
	"github.com/Notifuse/canvas/pkg/logger"
)

type traceExporterFactory func(cfg *config.TracingConfig, log logger.Logger) error

type metricsExporterFactory func(cfg *config.TracingConfig, log logger.Logger) (http.Handler, error)

var traceExporters = map[string]traceExporterFactory{
	"jaeger":      initJaegerExporter,
	"zipkin":      initZipkinExporter,
	"stackdriver": initStackdriverTraceExporter,
	"datadog":     initDatadogTraceExporter,
	"xray":        initXRayExporter,
}

var metricsExporters = map[string]metricsExporterFactory{
	"prometheus":  initPrometheusExporter,
	"stackdriver": initStackdriverMetricsExporter,
	"datadog":     initDatadogMetricsExporter,
}

// Init configures OpenCensus sampling, exporters and views. The returned
// handler serves /metrics when a Prometheus exporter is enabled, nil
// otherwise.
// codecov:ignore:start
func Init(cfg *config.TracingConfig, log logger.Logger) (http.Handler, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg, log); err != nil {
		return nil, err
	}

	metricsHandler, err := initMetricsExporters(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := RegisterViews(); err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": cfg.MetricsExporter,
	}).Info("OpenCensus initialized")
	return metricsHandler, nil
}

func initTraceExporter(cfg *config.TracingConfig, log logger.Logger) error {
	name := strings.TrimSpace(cfg.TraceExporter)
	if name == "" || name == "none" {
		log.Debug("No trace exporter configured")
		return nil
	}
	factory, ok := traceExporters[name]
	if !ok {
		return fmt.Errorf("unsupported trace exporter: %s", name)
	}
	return factory(cfg, log)
}

// initMetricsExporters accepts a comma-separated list of exporter names
func initMetricsExporters(cfg *config.TracingConfig, log logger.Logger) (http.Handler, error) {
	if cfg.MetricsExporter == "none" || cfg.MetricsExporter == "" {
		log.Debug("No metrics exporter configured")
		return nil, nil
	}

	var handler http.Handler
	for _, name := range ParseExporterList(cfg.MetricsExporter) {
		factory, ok := metricsExporters[name]
		if !ok {
			return nil, fmt.Errorf("unsupported metrics exporter: %s", name)
		}
		h, err := factory(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize %s metrics exporter: %w", name, err)
		}
		if h != nil {
			handler = h
		}
		log.WithField("exporter", name).Info("Metrics exporter initialized")
	}
	return handler, nil
}

// ParseExporterList splits a comma-separated exporter list, dropping blanks
func ParseExporterList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" && part != "none" {
			out = append(out, part)
		}
	}
	return out
}

// RegisterViews registers the HTTP server, database and editor views
func RegisterViews() error {
	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}
	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}
	if err := view.Register(EditorViews...); err != nil {
		return fmt.Errorf("failed to register editor views: %w", err)
	}
	return nil
}

func initJaegerExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.JaegerEndpoint == "" {
		return fmt.Errorf("jaeger endpoint is required for Jaeger exporter")
	}

	je, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		ServiceName:       cfg.ServiceName,
		Process: jaeger.Process{
			ServiceName: cfg.ServiceName,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	trace.RegisterExporter(je)
	log.WithField("endpoint", cfg.JaegerEndpoint).Info("Jaeger exporter initialized")
	return nil
}

func initZipkinExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.ZipkinEndpoint == "" {
		return fmt.Errorf("zipkin endpoint is required for Zipkin exporter")
	}

	reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
	trace.RegisterExporter(zipkin.NewExporter(reporter, nil))
	log.WithField("endpoint", cfg.ZipkinEndpoint).Info("Zipkin exporter initialized")
	return nil
}

func initStackdriverTraceExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.StackdriverProjectID == "" {
		return fmt.Errorf("stackdriver project ID is required for Stackdriver exporter")
	}

	se, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID: cfg.StackdriverProjectID,
	})
	if err != nil {
		return fmt.Errorf("failed to create Stackdriver exporter: %w", err)
	}

	trace.RegisterExporter(se)
	log.WithField("project_id", cfg.StackdriverProjectID).Info("Stackdriver trace exporter initialized")
	return nil
}

func datadogAgent(cfg *config.TracingConfig) string {
	if cfg.DatadogAgentAddress != "" {
		return cfg.DatadogAgentAddress
	}
	return cfg.AgentEndpoint
}

func datadogOptions(cfg *config.TracingConfig, log logger.Logger) (datadog.Options, error) {
	agentAddr := datadogAgent(cfg)
	if agentAddr == "" {
		return datadog.Options{}, fmt.Errorf("datadog agent address is required for Datadog exporter")
	}
	options := datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: agentAddr,
		StatsAddr: agentAddr,
		Tags:      []string{"service:" + cfg.ServiceName},
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Datadog exporter error")
		},
	}
	if cfg.DatadogAPIKey != "" {
		options.GlobalTags = map[string]interface{}{
			"api_key": cfg.DatadogAPIKey,
		}
	}
	return options, nil
}

func initDatadogTraceExporter(cfg *config.TracingConfig, log logger.Logger) error {
	options, err := datadogOptions(cfg, log)
	if err != nil {
		return err
	}
	exporter, err := datadog.NewExporter(options)
	if err != nil {
		return fmt.Errorf("failed to create Datadog exporter: %w", err)
	}

	trace.RegisterExporter(exporter)
	log.WithField("agent", options.TraceAddr).Info("Datadog trace exporter initialized")
	return nil
}

func initXRayExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.XRayRegion == "" {
		return fmt.Errorf("AWS region is required for X-Ray exporter")
	}

	exporter, err := aws.NewExporter(
		aws.WithRegion(cfg.XRayRegion),
		aws.WithVersion("latest"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS X-Ray exporter: %w", err)
	}

	trace.RegisterExporter(exporter)
	log.WithField("region", cfg.XRayRegion).Info("AWS X-Ray exporter initialized")
	return nil
}

// initPrometheusExporter returns the exporter as the /metrics handler. The
// app mounts it on the API mux.
func initPrometheusExporter(cfg *config.TracingConfig, log logger.Logger) (http.Handler, error) {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Prometheus exporter error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	view.RegisterExporter(pe)
	return pe, nil
}

func initStackdriverMetricsExporter(cfg *config.TracingConfig, log logger.Logger) (http.Handler, error) {
	if cfg.StackdriverProjectID == "" {
		return nil, fmt.Errorf("stackdriver project ID is required for Stackdriver metrics exporter")
	}

	se, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID:    cfg.StackdriverProjectID,
		MetricPrefix: cfg.ServiceName,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Stackdriver metrics exporter error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Stackdriver metrics exporter: %w", err)
	}

	view.RegisterExporter(se)
	return nil, nil
}

func initDatadogMetricsExporter(cfg *config.TracingConfig, log logger.Logger) (http.Handler, error) {
	options, err := datadogOptions(cfg, log)
	if err != nil {
		return nil, err
	}
	exporter, err := datadog.NewExporter(options)
	if err != nil {
		return nil, fmt.Errorf("failed to create Datadog metrics exporter: %w", err)
	}

	view.RegisterExporter(exporter)
	return nil, nil
}

// WrapHandler instruments an HTTP handler with ochttp
func WrapHandler(h http.Handler) http.Handler {
	return &ochttp.Handler{
		Handler: h,
		FormatSpanName: func(r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		},
	}
}

// StartSpan starts a new span with the given name and returns a context with the span
func StartSpan(ctx context.Context, name string) (context.Context, *trace.Span) {
	return trace.StartSpan(ctx, name)
}

// StartSpanWithAttributes starts a new span with attributes and returns a context with the span
func StartSpanWithAttributes(ctx context.Context, name string, attrs ...trace.Attribute) (context.Context, *trace.Span) {
	ctx, span := trace.StartSpan(ctx, name)
	span.AddAttributes(attrs...)
	return ctx, span
}

// codecov:ignore:end
