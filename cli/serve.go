package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/activity"
	"github.com/octabyte/emaar-web/apiclient"
	"github.com/octabyte/emaar-web/auth"
	"github.com/octabyte/emaar-web/cache"
	"github.com/octabyte/emaar-web/config"
	"github.com/octabyte/emaar-web/db/redis"
	"github.com/octabyte/emaar-web/i18n"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
	"github.com/octabyte/emaar-web/otel"
	"github.com/octabyte/emaar-web/otel/metrics"
	"github.com/octabyte/emaar-web/queue"
	"github.com/octabyte/emaar-web/session"
	"github.com/octabyte/emaar-web/stream"
	"github.com/octabyte/emaar-web/utils/logger"
	"github.com/octabyte/emaar-web/web"
)

// flag name -> config key
var serveFlags = map[string]string{
	"addr":         "http.addr",
	"api-url":      "api.base_url",
	"redis-addr":   "redis.addr",
	"amqp-uri":     "amqp.uri",
	"stream-uri":   "stream.uri",
	"log-level":    "log.level",
	"demo-content": "http.demo_content",
}

func Serve() *cobra.Command {
	v := config.NewViper()
	var envFiles []string
	var debugTemplates bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the web server",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for name, key := range serveFlags {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
					return fmt.Errorf("bind --%s: %w", name, err)
				}
			}
			return config.LoadDotEnv(envFiles...)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v, debugTemplates)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("api-url", "", "base URL of the upstream REST API")
	flags.String("redis-addr", "", "redis address for sessions and caching; empty keeps both in memory")
	flags.String("amqp-uri", "", "RabbitMQ URI for activity events; empty disables publishing")
	flags.String("stream-uri", "", "RabbitMQ stream URI for the activity log; empty disables it")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.Bool("demo-content", true, "show sample projects when the API is unreachable")
	flags.StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")
	flags.BoolVar(&debugTemplates, "debug-templates", false, "reload templates on every request")
	return cmd
}

func runServe(ctx context.Context, v *viper.Viper, debugTemplates bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if cfg.Otel.ServiceVersion == "" {
		cfg.Otel.ServiceVersion = Version
	}

	logger.Init(&cfg.Logger)
	defer logger.Sync()

	shutdownOtel, err := otel.InitOpenTelemetry(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("init opentelemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := shutdownOtel(sctx); err != nil {
			logger.LogError("opentelemetry shutdown", zap.Error(err))
		}
	}()
	if cfg.Otel.Enabled {
		if err := metrics.Init(cfg.Otel.ServiceName); err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
	}

	bundle, err := i18n.New()
	if err != nil {
		return err
	}
	validate, err := bundle.NewValidator()
	if err != nil {
		return err
	}

	health := map[string]web.HealthCheck{}
	var store session.Store = session.NewMemoryStore(cfg.HTTP.SessionTTL)
	var pageCache cache.Cache = cache.Noop{}
	if cfg.Redis.Enabled() {
		client, err := redis.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		store = session.NewRedisStore(client, session.RedisStoreConfig{TTL: cfg.HTTP.SessionTTL})
		if cfg.HTTP.CacheTTL > 0 {
			pageCache = cache.NewRedisCache(client, "")
		}
		health["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, client) }
		logger.LogInfo("using redis for sessions", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.LogWarn("redis not configured, sessions are kept in memory")
	}

	var sinks activity.Multi
	if cfg.AMQP.Enabled() {
		conn, err := queue.NewConnection(cfg.AMQP)
		if err != nil {
			return err
		}
		defer conn.Close()

		qp := activity.NewQueuePublisher(queue.NewPublisher(conn.Ch, queue.PublishConfig{
			Exchange:     cfg.AMQP.Exchange,
			ContentType:  "application/json",
			DeliveryMode: 2,
		}), cfg.AMQP.RoutingKeyPrefix)
		defer qp.Close()
		sinks = append(sinks, qp)
		health["amqp"] = func(context.Context) error {
			if conn.Conn.IsClosed() {
				return errors.New("amqp connection closed")
			}
			return nil
		}
	}

	if cfg.Stream.Enabled() {
		producer, err := stream.NewProducer(cfg.Stream)
		if err != nil {
			return err
		}
		sp := activity.NewQueuePublisher(producer, cfg.AMQP.RoutingKeyPrefix)
		defer sp.Close()
		sinks = append(sinks, sp)
	}

	var publisher activity.Publisher = activity.Noop{}
	if len(sinks) > 0 {
		publisher = sinks
	}

	api := apiclient.New(cfg.API)
	svc := auth.NewService(api, store, auth.WithPublisher(publisher), auth.WithValidator(validate))

	e, err := web.NewServer(web.Deps{
		API:       api,
		Auth:      svc,
		Store:     store,
		Bundle:    bundle,
		Validator: validate,
		Cache:     pageCache,
		Publisher: publisher,
		Health:    health,
		Options: web.Options{
			Cookie: middleware.CookieConfig{
				Name:   cfg.HTTP.CookieName,
				Domain: cfg.HTTP.CookieDomain,
				Secure: cfg.HTTP.CookieSecure,
				MaxAge: cfg.HTTP.SessionTTL,
			},
			MaxUploadSize: cfg.HTTP.UploadLimit(),
			Timezone:      cfg.HTTP.Timezone,
			CacheTTL:      cfg.HTTP.CacheTTL,
			DemoContent:   cfg.HTTP.DemoContent,
			ServiceName:   cfg.Otel.ServiceName,
			Debug:         debugTemplates,
		},
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.LogInfo("http server listening", zap.String("addr", cfg.HTTP.Addr), zap.String("version", Version))
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.LogInfo("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
