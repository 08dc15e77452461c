package main

import (
	"context"
	"convo-lab/auth"
	"convo-lab/contract"
	"convo-lab/domain/event"
	"convo-lab/infrastructure/grpc/server"
	"convo-lab/infrastructure/search"
	"convo-lab/infrastructure/storage"
	"convo-lab/internal"
	"convo-lab/moderation"
	"convo-lab/observability"
	pb "convo-lab/proto/convo"
	"convo-lab/runtime"
	"convo-lab/runtime/workers"
	"convo-lab/services"
	"convo-lab/sink"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 5 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Master terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle and centralizes error reporting,
// so every deferred close runs before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Storage (BadgerDB + Bluge)
	db, err := badger.Open(buildBadgerOpts(ctx, config, logger))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Change propagation & repositories
	monitoring := observability.NewMonitoringManager(logger)
	sideEffects := make(chan event.ChangeEvent, config.BufferSize)
	registry := runtime.NewRegistry(logger, sideEffects)
	index := search.NewMessageIndex(blugeWriter, logger)

	var extraWorkers []contract.Worker
	var typingRepository contract.ITypingRepository = storage.NewTypingRepository(db, registry)
	if config.TypingBackend == internal.TypingBackendRedis {
		client, err := storage.NewRedisClient(ctx, config.RedisURL)
		if err != nil {
			return exitRuntime, fmt.Errorf("redis connection failed: %w", err)
		}
		defer func() { _ = client.Close() }()
		typingRepository = storage.NewRedisTypingRepository(client)
		extraWorkers = append(extraWorkers, workers.NewTypingRelay(logger, client, registry))
		logger.Info("Typing presence shared through redis", "channel", storage.TypingChannel)
	}

	repositories := runtime.Storage{
		Messages: storage.NewMessageRepository(db, logger, registry, config.LimitMessages),
		Profiles: storage.NewProfileRepository(db, logger),
		Typing:   typingRepository,
		Index:    index,
	}
	if config.ModerationEnabled {
		moderator, err := buildModerator(logger, charReplacement)
		if err != nil {
			return exitConfig, err
		}
		repositories.Moderator = moderator
	}

	// 4. Supervision & Orchestration
	supervisor := workers.NewSupervisor(logger, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(logger, supervisor, registry, sideEffects,
		repositories, monitoring, config.TypingStaleAfter, config.SinkTimeout)
	orchestrator.AddSinks(
		sink.NewSearchSink(index, logger),
		sink.NewTelemetrySink(monitoring),
	)
	orchestrator.AddWorkers(append(extraWorkers,
		workers.NewHealthWorker(logger, config.HealthInterval, monitoring),
		workers.NewChannelCapacityWorker(logger,
			[]workers.NamedChannel{{Name: "side_effects", Channel: sideEffects}},
			config.MetricInterval, config.LowCapacityThreshold),
	)...)

	errChan := make(chan error, 3)
	orchestratorDone := make(chan struct{})
	go func() {
		defer close(orchestratorDone)
		logger.Info("Starting orchestrator...")
		if err := orchestrator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
		}
	}()

	// 5. HTTP side servers
	metricsServer := newMetricsServer(config.MetricsPort)
	go func() {
		logger.Info("Metrics available", "url", fmt.Sprintf("http://localhost:%d/metrics", config.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	var debugServer *http.Server
	if config.DebugPort > 0 {
		debugServer = internal.NewDebugServer(logger, db, config.DebugPort, "/inspect", RecordMapper, statsProvider(monitoring))
		go func() {
			logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))
			if err := debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("Debug server stopped", "error", err)
			}
		}()
	}

	// 6. gRPC Server
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc3.UnaryLoggingInterceptor(logger),
			auth.UnaryIdentityInterceptor,
		),
		grpc.ChainStreamInterceptor(auth.StreamIdentityInterceptor),
	)
	conversationServer := server.NewConversationServer(logger,
		services.NewConversationService(orchestrator),
		services.NewProfileService(orchestrator),
		config.ConnectionBufferSize)
	pb.RegisterConversationServiceServer(s, conversationServer)

	go func() {
		logger.Info("Starting gRPC server", "address", address, "at", time.Now().UTC())
		for serviceName := range s.GetServiceInfo() {
			logger.Debug("gRPC exposed services", "name", serviceName)
		}
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 8. Graceful Shutdown
	logger.Info("Shutting down gracefully...")
	s.GracefulStop()
	orchestrator.Stop()
	<-orchestratorDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
	if debugServer != nil {
		_ = debugServer.Shutdown(shutdownCtx)
	}
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(ctx context.Context, config internal.Config, logger *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}

func buildModerator(logger *slog.Logger, charReplacement rune) (*moderation.Moderator, error) {
	data, err := runtime.NewEmbeddedCensoredLoader().LoadAll("censored")
	if err != nil {
		return nil, fmt.Errorf("loading censored words: %w", err)
	}
	logger.Info("Moderation dictionaries loaded", "languages", data.Languages, "words", len(data.Words))
	return moderation.NewLanguageModerator(data.ByLanguage, charReplacement, logger)
}

func newMetricsServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: fmt.Sprintf("0.0.0.0:%d", port), Handler: mux}
}

func statsProvider(monitoring *observability.MonitoringManager) internal.StatsProvider {
	return func() map[string]any {
		stats := monitoring.GetLatest()
		return map[string]any{
			"active_subscriptions": stats.ActiveSubscriptions,
			"aggregation_passes":   stats.AggregationPasses,
			"lookup_failures":      stats.LookupFailures,
			"malformed_records":    stats.MalformedRecords,
			"feed_errors":          stats.FeedErrors,
			"messages_sent":        stats.MessagesSent,
			"pid":                  stats.PID,
			"cpu_percent":          fmt.Sprintf("%.1f", stats.CpuPercent),
			"ram_mb":               stats.RamBytes / 1024 / 1024,
			"alloc_mb":             stats.AllocMemMb,
			"goroutines":           stats.Goroutines,
			"recent_events":        len(stats.RecentEvents),
		}
	}
}

// RecordMapper renders our key families on the debug page.
func RecordMapper(key string, val []byte) internal.InspectRow {
	row := internal.DefaultMapper(key, val)
	record, err := storage.Describe(key, val)
	if err != nil {
		row.Type = "MALFORMED"
		row.Detail = err.Error()
		return row
	}
	row.Type = record.Kind
	row.EntityID = record.ID
	row.Detail = record.Detail
	if !record.At.IsZero() {
		row.Timestamp = record.At.Format("15:04:05")
	}
	return row
}
