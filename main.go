package main

import (
	"context"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"runtime"

	"github.com/alecthomas/kingpin"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/clients/execcmd"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/clients/gitapi"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/clients/sshapi"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/clients/webhookapi"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/services/pipeline"
)

const app = "deckhand-ci-runner"

var (
	version   string
	branch    string
	revision  string
	buildDate string
	goVersion = runtime.Version()
)

var (
	// flags
	configFilePath           = kingpin.Flag("config-file-path", "The path to the config file.").Default("/configs/config.yaml").Envar("DHCI_CONFIG_FILE_PATH").String()
	prometheusMetricsAddress = kingpin.Flag("metrics-listen-address", "The address to listen on for Prometheus metrics requests.").Default(":9001").Envar("DHCI_METRICS_LISTEN_ADDRESS").String()
	prometheusMetricsPath    = kingpin.Flag("metrics-path", "The path to listen for Prometheus metrics requests.").Default("/metrics").Envar("DHCI_METRICS_PATH").String()
)

func main() {

	// parse command line parameters
	kingpin.Parse()

	// configure json logging
	initLogging()

	// configure tracing from JAEGER_* environment variables
	closer := initJaeger(app)

	// serve prometheus metrics for the duration of the run
	go startPrometheus()

	configReader := api.NewConfigReader()
	config, err := configReader.ReadConfigFromFile(*configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed reading config from %v", *configFilePath)
	}

	pipelineService := wirePipelineService(config)

	span := opentracing.StartSpan("RunPipeline")
	ctx := opentracing.ContextWithSpan(context.Background(), span)

	result := pipelineService.Run(ctx)

	span.Finish()
	closeTracer(closer)

	if !result.Succeeded() {
		log.Error().Msgf("Build %v of job %v failed at stage %v: %v", config.Pipeline.BuildNumber, config.Pipeline.JobName, result.FailedStage, result.Reason)
		os.Exit(1)
	}

	log.Info().Msgf("Build %v of job %v succeeded", config.Pipeline.BuildNumber, config.Pipeline.JobName)
}

func wirePipelineService(config *api.APIConfig) pipeline.Service {

	gitapiClient := gitapi.NewClient(config)
	gitapiClient = gitapi.NewTracingClient(gitapiClient)
	gitapiClient = gitapi.NewLoggingClient(gitapiClient)
	gitapiClient = gitapi.NewMetricsClient(gitapiClient, api.NewRequestCounter("gitapi_client"), api.NewRequestHistogram("gitapi_client"))

	execcmdClient := execcmd.NewClient(config)
	execcmdClient = execcmd.NewTracingClient(execcmdClient)
	execcmdClient = execcmd.NewLoggingClient(execcmdClient)
	execcmdClient = execcmd.NewMetricsClient(execcmdClient, api.NewRequestCounter("execcmd_client"), api.NewRequestHistogram("execcmd_client"))

	sshapiClient := sshapi.NewClient(config)
	sshapiClient = sshapi.NewTracingClient(sshapiClient)
	sshapiClient = sshapi.NewLoggingClient(sshapiClient)
	sshapiClient = sshapi.NewMetricsClient(sshapiClient, api.NewRequestCounter("sshapi_client"), api.NewRequestHistogram("sshapi_client"))

	webhookapiClient := webhookapi.NewClient(config)
	webhookapiClient = webhookapi.NewTracingClient(webhookapiClient)
	webhookapiClient = webhookapi.NewLoggingClient(webhookapiClient)
	webhookapiClient = webhookapi.NewMetricsClient(webhookapiClient, api.NewRequestCounter("webhookapi_client"), api.NewRequestHistogram("webhookapi_client"))

	pipelineService := pipeline.NewService(config, gitapiClient, execcmdClient, sshapiClient, webhookapiClient)
	pipelineService = pipeline.NewTracingService(pipelineService)
	pipelineService = pipeline.NewMetricsService(pipelineService, api.NewRequestCounter("pipeline_service"), api.NewRequestHistogram("pipeline_service"))

	return pipelineService
}

func startPrometheus() {
	log.Debug().
		Str("port", *prometheusMetricsAddress).
		Str("path", *prometheusMetricsPath).
		Msg("Serving Prometheus metrics...")

	http.Handle(*prometheusMetricsPath, promhttp.Handler())

	if err := http.ListenAndServe(*prometheusMetricsAddress, nil); err != nil {
		log.Fatal().Err(err).Msg("Starting Prometheus listener failed")
	}
}

func initLogging() {

	// log as severity for stackdriver logging to recognize the level
	zerolog.LevelFieldName = "severity"

	// set some default fields added to all logs
	log.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("app", app).
		Str("version", version).
		Str("runID", uuid.New().String()).
		Logger()

	// use zerolog for any logs sent via standard log library
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	// log startup message
	log.Info().
		Str("branch", branch).
		Str("revision", revision).
		Str("buildDate", buildDate).
		Str("goVersion", goVersion).
		Msgf("Starting %v...", app)
}

func initJaeger(service string) io.Closer {

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger config from environment variables failed")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = service
	}

	closer, err := cfg.InitGlobalTracer(cfg.ServiceName, jaegercfg.Logger(jaeger.StdLogger), jaegercfg.Metrics(jprom.New()))
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger tracer failed")
	}

	return closer
}

func closeTracer(closer io.Closer) {
	if err := closer.Close(); err != nil {
		log.Warn().Err(err).Msg("Closing Jaeger tracer failed")
	}
}
