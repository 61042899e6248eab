// Command grcledger runs the GRC record-keeping API service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grcledger/grcledger/pkg/auth"
	"github.com/grcledger/grcledger/pkg/config"
	"github.com/grcledger/grcledger/pkg/grc"
	"github.com/grcledger/grcledger/pkg/health"
	"github.com/grcledger/grcledger/pkg/middleware/authn"
	"github.com/grcledger/grcledger/pkg/middleware/logging"
	"github.com/grcledger/grcledger/pkg/middleware/metrics"
	"github.com/grcledger/grcledger/pkg/middleware/recovery"
	"github.com/grcledger/grcledger/pkg/middleware/requestid"
	tracingmw "github.com/grcledger/grcledger/pkg/middleware/tracing"
	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/observability/tracing"
	"github.com/grcledger/grcledger/pkg/report"
	"github.com/grcledger/grcledger/pkg/server"
	"github.com/grcledger/grcledger/pkg/server/router"
	"github.com/grcledger/grcledger/pkg/server/router/gin"
	"github.com/grcledger/grcledger/pkg/store/mongodb"
	"github.com/grcledger/grcledger/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const serviceName = "grcledger"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	var envPrefix string

	rootCmd := &cobra.Command{
		Use:           serviceName,
		Short:         "GRC record-keeping API service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&envPrefix, "env-prefix", "APP", "prefix for environment variables")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(configFile, envPrefix)
			if err != nil {
				return err
			}
			if err := applyPortOverride(cmd.Flags(), cfg); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
	serveCmd.Flags().Int("port", 0, "override the configured HTTP port")
	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Current(serviceName).String())
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "healthcheck",
		Short: "Probe the liveness endpoint of a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfigAndLogger(configFile, envPrefix)
			if err != nil {
				return err
			}
			return probeLiveness(cfg.HTTP.Port)
		},
	})

	return rootCmd
}

// applyPortOverride lets the --port flag take precedence over the config file
// and environment.
func applyPortOverride(flags *pflag.FlagSet, cfg *config.Config) error {
	if !flags.Changed("port") {
		return nil
	}
	port, err := flags.GetInt("port")
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	cfg.HTTP.Port = port
	return nil
}

func loadConfigAndLogger(configFile, envPrefix string) (*config.Config, *logger.ZapLogger, error) {
	cfg, err := config.NewViperLoader(configFile, envPrefix).Load()
	if err != nil {
		return nil, nil, err
	}

	level, err := logger.ParseLogLevel(cfg.Observability.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	format, err := logger.ParseLogFormat(cfg.Observability.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewZapLogger(logger.Config{Level: level, Format: format})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func serve(ctx context.Context, cfg *config.Config, log *logger.ZapLogger) error {
	defer log.Sync()
	log.Info("starting service",
		"service", cfg.Service.Name,
		"environment", cfg.Service.Environment,
		"version", version.Current(cfg.Service.Name).Version,
	)

	adapter, err := mongodb.NewAdapter(mongodb.Config{
		URL:              cfg.Mongo.URI,
		Database:         cfg.Mongo.Database,
		ConnectTimeout:   cfg.Mongo.ConnectTimeout,
		OperationTimeout: cfg.Mongo.QueryTimeout,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := adapter.Close(); err != nil {
			log.Error("closing mongodb adapter", "error", err)
		}
	}()

	tracer, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: version.Current(cfg.Service.Name).Version,
		Environment:    cfg.Service.Environment,
		Endpoint:       cfg.Tracing.Endpoint,
		SampleRate:     cfg.Tracing.SampleRate,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			log.Error("shutting down tracer", "error", err)
		}
	}()

	r := gin.NewRouter()
	r.Use(requestid.RequestID(), recovery.Recovery(log), logging.RequestLogger(logging.DefaultConfig(), log))
	if cfg.Tracing.Enabled {
		r.Use(tracingmw.Trace(tracingmw.DefaultConfig()))
	}

	metricsRegistry := metrics.NewRegistry()
	if cfg.Metrics.Enabled {
		r.Use(metricsRegistry.Middleware())
		r.GET(cfg.Metrics.Path, func(c router.Context) error {
			metricsRegistry.Handler().ServeHTTP(c.Response(), c.Request())
			return nil
		})
	}

	healthRegistry := health.NewRegistry()
	healthRegistry.Register(health.NewPingChecker("self"))
	healthRegistry.Register(health.NewAdapterChecker("mongodb", adapter, 2*time.Second))
	health.NewHandler(healthRegistry).Register(r)

	r.GET("/version", func(c router.Context) error {
		return c.JSON(http.StatusOK, version.Current(cfg.Service.Name))
	})

	api := r.Group("/api")
	resources := api

	if cfg.Auth.Secret != "" {
		issuer, err := auth.NewTokenIssuer(auth.TokenConfig{
			Secret:   cfg.Auth.Secret,
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
			Expiry:   cfg.Auth.TokenExpiry,
		})
		if err != nil {
			return err
		}
		users := auth.NewUserStore(adapter, log)
		if err := users.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensuring user indexes: %w", err)
		}
		auth.NewHandler(users, issuer, log).Register(api)

		if cfg.Auth.Enabled {
			resources = r.Group("/api", authn.RequireToken(issuer))
			log.Info("bearer-token enforcement enabled")
		}
	} else {
		log.Warn("auth secret not configured, auth endpoints disabled")
	}

	if err := grc.Mount(ctx, resources, adapter, log); err != nil {
		return fmt.Errorf("mounting resources: %w", err)
	}

	renderer, err := report.NewChartRenderer()
	if err != nil {
		return err
	}
	exporter, err := report.NewHandler(adapter, renderer, log)
	if err != nil {
		return err
	}
	exporter.Register(resources)

	srv := server.NewServer(server.Config{
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}, r, log)
	return srv.Start(ctx)
}

// probeLiveness hits the local liveness endpoint, for container health checks.
func probeLiveness(port int) error {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%d/healthz", port))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("liveness probe returned status %d", resp.StatusCode)
	}
	fmt.Println("ok")
	return nil
}
