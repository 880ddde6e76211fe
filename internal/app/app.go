// Package app is the composition root: it picks store backends from config,
// builds every module and exposes the HTTP handler and background workers.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	authHandler "leetcoach/internal/auth/handler"
	authMetrics "leetcoach/internal/auth/metrics"
	authService "leetcoach/internal/auth/service"
	userStore "leetcoach/internal/auth/store/user"
	captchaHandler "leetcoach/internal/captcha/handler"
	captchaMetrics "leetcoach/internal/captcha/metrics"
	captchaPorts "leetcoach/internal/captcha/ports"
	captchaService "leetcoach/internal/captcha/service"
	challengeStore "leetcoach/internal/captcha/store/challenge"
	"leetcoach/internal/feedback"
	"leetcoach/internal/feedback/echo"
	"leetcoach/internal/feedback/gemini"
	feedbackMetrics "leetcoach/internal/feedback/metrics"
	"leetcoach/internal/feedback/resilient"
	"leetcoach/internal/feedback/tracer"
	interviewHandler "leetcoach/internal/interview/handler"
	interviewMetrics "leetcoach/internal/interview/metrics"
	interviewService "leetcoach/internal/interview/service"
	sessionStore "leetcoach/internal/interview/store/session"
	jwttoken "leetcoach/internal/jwt_token"
	"leetcoach/internal/platform/config"
	"leetcoach/internal/platform/database"
	"leetcoach/internal/platform/health"
	"leetcoach/internal/platform/kafka/producer"
	redisplatform "leetcoach/internal/platform/redis"
	"leetcoach/internal/question/bank"
	questionHandler "leetcoach/internal/question/handler"
	rlconfig "leetcoach/internal/ratelimit/config"
	"leetcoach/internal/ratelimit/gateway"
	rlMetrics "leetcoach/internal/ratelimit/metrics"
	rlMiddleware "leetcoach/internal/ratelimit/middleware"
	rlPorts "leetcoach/internal/ratelimit/ports"
	"leetcoach/internal/ratelimit/service/authlockout"
	"leetcoach/internal/ratelimit/service/requestlimit"
	lockoutStore "leetcoach/internal/ratelimit/store/authlockout"
	bucketStore "leetcoach/internal/ratelimit/store/bucket"
	"leetcoach/internal/ratelimit/workers/cleanup"
	httptransport "leetcoach/internal/transport/http"
	"leetcoach/pkg/platform/audit"
	"leetcoach/pkg/platform/audit/publishers/security"
	"leetcoach/pkg/platform/audit/sinks"
	"leetcoach/pkg/platform/circuit"
	"leetcoach/pkg/platform/middleware/auth"
	"leetcoach/pkg/platform/middleware/metadata"
	request "leetcoach/pkg/platform/middleware/request"
)

const tokenIssuer = "leetcoach"

// App holds the wired server and the resources it owns.
type App struct {
	cfg    config.Server
	logger *slog.Logger

	db        *database.Pool
	redis     *redisplatform.Client
	kafka     *producer.Producer
	publisher *security.Publisher
	cleanup   *cleanup.Service

	handler http.Handler
}

type options struct {
	registerer prometheus.Registerer
	generator  feedback.Generator
	auditSink  audit.Sink
	clock      func() time.Time
}

type Option func(*options)

// WithRegisterer registers module metrics on reg instead of the default
// registry, so that several apps can live in one test binary.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithGenerator replaces the configured feedback provider.
func WithGenerator(g feedback.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithAuditSink replaces the slog/Kafka security event sink.
func WithAuditSink(sink audit.Sink) Option {
	return func(o *options) {
		o.auditSink = sink
	}
}

// WithClock fixes request time for every request and for token expiry checks.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New connects the configured backends and builds every module. The caller
// must Close the returned App. Migrations are applied when a database is set.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger, opts ...Option) (_ *App, err error) {
	o := options{registerer: prometheus.DefaultRegisterer, clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close() //nolint:errcheck // best-effort cleanup on init failure
		}
	}()

	if err := a.connect(ctx); err != nil {
		return nil, err
	}

	sink := o.auditSink
	if sink == nil {
		sink = a.securitySink()
	}
	a.publisher = security.New(sink,
		security.WithLogger(logger),
		security.WithMetrics(security.NewMetrics()),
	)
	auditor := audit.NewLogger(logger, a.publisher)

	// Captcha
	captchaSvc, err := captchaService.New(a.challengeStore(),
		captchaService.WithLogger(logger),
		captchaService.WithAuditLogger(auditor),
		captchaService.WithMetrics(captchaMetrics.NewWithRegisterer(o.registerer)),
	)
	if err != nil {
		return nil, fmt.Errorf("captcha service: %w", err)
	}

	// Accounts
	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, tokenIssuer, cfg.TokenTTL, jwttoken.WithEnv(cfg.Environment), jwttoken.WithClock(o.clock))
	authSvc, err := authService.New(a.userStore(), captchaSvc, jwtService,
		authService.WithLogger(logger),
		authService.WithAuditLogger(auditor),
		authService.WithMetrics(authMetrics.NewWithRegisterer(o.registerer)),
	)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	// Questions and interview
	questions, err := bank.Default()
	if err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}
	generator := o.generator
	if generator == nil {
		generator, err = a.feedbackGenerator(ctx, o.registerer)
		if err != nil {
			return nil, fmt.Errorf("feedback generator: %w", err)
		}
	}
	interviewSvc := interviewService.New(a.sessionStore(), questions, generator,
		interviewService.WithLogger(logger),
		interviewService.WithTimeout(cfg.Feedback.Timeout),
		interviewService.WithMetrics(interviewMetrics.NewWithRegisterer(o.registerer)),
	)

	// Abuse gateway
	rlCfg := rlconfig.DefaultConfig()
	rlCfg.Global.PerSecond = cfg.GlobalRPS
	rlMetricsInstance := rlMetrics.NewWithRegisterer(o.registerer)

	buckets := a.bucketStore()
	limiter, err := requestlimit.New(buckets, requestlimit.WithConfig(rlCfg), requestlimit.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("request limiter: %w", err)
	}
	failures := a.failureStore()
	tracker, err := authlockout.New(failures, authlockout.WithConfig(&rlCfg.Lockout), authlockout.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failure tracker: %w", err)
	}
	gw, err := gateway.New(limiter, tracker,
		gateway.WithAuditLogger(auditor),
		gateway.WithMetrics(rlMetricsInstance),
		gateway.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("abuse gateway: %w", err)
	}

	a.cleanup = cleanup.New(buckets, rlCfg.MaxWindow(), failures, rlCfg.Lockout.WindowDuration, captchaSvc,
		cleanup.WithLogger(logger),
		cleanup.WithInterval(cfg.CleanupInterval),
		cleanup.WithMetrics(rlMetricsInstance),
	)

	trusted, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	interview := interviewHandler.New(interviewSvc, logger)
	a.handler = httptransport.NewRouter(httptransport.Handlers{
		Health:          a.healthHandler(),
		Captcha:         captchaHandler.New(captchaSvc, logger),
		Auth:            authHandler.New(authSvc, logger),
		Questions:       questionHandler.New(questions, logger),
		InterviewPublic: httptransport.RegisterWith(interview.RegisterPublic),
		Interview:       interview,
	}, httptransport.Config{
		AllowedOrigins: cfg.AllowedOrigins,
		Metadata:       metadata.NewMiddleware(metadata.Config{TrustedProxies: trusted}),
		RequestTimeout: cfg.Feedback.Timeout + 15*time.Second,
		Metrics:        request.NewMetrics(),
		Throttle:       rlMiddleware.GlobalThrottle(rlCfg.Global.PerSecond, rlCfg.Global.Burst, rlMetricsInstance),
		RateLimit:      rlMiddleware.New(gw, logger).RateLimit,
		RequireAuth:    auth.RequireAuth(jwttoken.NewJWTServiceAdapter(jwtService), authSvc, logger),
		Clock:          o.clock,
	}, logger)

	return a, nil
}

// Handler is the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// RunWorkers runs the background workers until ctx is cancelled.
func (a *App) RunWorkers(ctx context.Context) error {
	if a.redis != nil {
		go a.redis.RunPoolStatsRecorder(ctx, 15*time.Second)
	}
	err := a.cleanup.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close drains pending security events and releases connections.
func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.kafka != nil {
		errs = append(errs, a.kafka.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) connect(ctx context.Context) error {
	dbCfg := database.DefaultConfig()
	dbCfg.URL = a.cfg.Database.URL
	db, err := database.New(dbCfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	a.db = db
	if a.db != nil {
		if err := a.db.Migrate(); err != nil {
			return err
		}
		a.logger.Info("database ready", "dialect", a.db.Dialect())
	}

	rc, err := redisplatform.New(ctx, a.cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	a.redis = rc
	if a.redis != nil {
		a.logger.Info("redis ready")
	}

	if a.cfg.Kafka.Brokers != "" {
		p, err := producer.New(producer.DefaultConfig(a.cfg.Kafka.Brokers), a.logger)
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		a.kafka = p
	}
	return nil
}

func (a *App) securitySink() audit.Sink {
	if a.kafka != nil {
		return sinks.NewKafka(a.kafka, a.cfg.Kafka.SecurityEventsTopic)
	}
	return sinks.NewSlog(a.logger)
}

// Stores: Redis wins for abuse state, SQL for durable records, memory otherwise.

func (a *App) bucketStore() rlPorts.BucketStore {
	if a.redis == nil {
		return bucketStore.New()
	}
	breaker := circuit.New("ratelimit-redis", circuit.WithFailureThreshold(3), circuit.WithCooldown(10*time.Second))
	return bucketStore.NewFailover(bucketStore.NewRedis(a.redisClient()), bucketStore.New(), breaker, a.logger)
}

func (a *App) failureStore() rlPorts.FailureStore {
	if a.redis == nil {
		return lockoutStore.New()
	}
	return lockoutStore.NewRedis(a.redisClient())
}

func (a *App) challengeStore() captchaPorts.ChallengeStore {
	switch {
	case a.redis != nil:
		return challengeStore.NewRedis(a.redisClient())
	case a.db != nil:
		return challengeStore.NewSQL(a.db)
	default:
		return challengeStore.New()
	}
}

func (a *App) userStore() authService.UserStore {
	if a.db != nil {
		return userStore.NewSQL(a.db)
	}
	return userStore.NewInMemoryUserStore()
}

func (a *App) sessionStore() interviewService.SessionStore {
	if a.db != nil {
		return sessionStore.NewSQL(a.db)
	}
	return sessionStore.New()
}

func (a *App) redisClient() goredis.UniversalClient {
	return a.redis.Client
}

func (a *App) feedbackGenerator(ctx context.Context, reg prometheus.Registerer) (feedback.Generator, error) {
	var upstream feedback.Generator
	switch a.cfg.Feedback.Provider {
	case config.ProviderEcho:
		upstream = echo.New()
	default:
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:      a.cfg.Feedback.APIKey,
			BaseURL:     a.cfg.Feedback.BaseURL,
			Model:       a.cfg.Feedback.Model,
			ReviewModel: a.cfg.Feedback.ReviewModel,
			Timeout:     a.cfg.Feedback.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("set GEMINI_API_KEY or FEEDBACK_PROVIDER=echo: %w", err)
		}
		upstream = client
	}
	return resilient.New(upstream,
		resilient.WithTracer(tracer.NewOTel()),
		resilient.WithMetrics(feedbackMetrics.NewWithRegisterer(reg)),
		resilient.WithLogger(a.logger),
	), nil
}

func (a *App) healthHandler() *health.Handler {
	h := health.New(a.cfg.Environment)
	if a.db != nil {
		h.RegisterCheck("database", a.db.Health)
	}
	if a.redis != nil {
		h.RegisterCheck("redis", a.redis.Health)
	}
	if a.kafka != nil {
		h.RegisterCheck("kafka", a.kafka.Health)
	}

	abuse, durable, challenges := "memory", "memory", "memory"
	if a.db != nil {
		durable = string(a.db.Dialect())
		challenges = durable
	}
	if a.redis != nil {
		abuse, challenges = "redis", "redis"
	}
	h.SetBackend("buckets", abuse)
	h.SetBackend("failures", abuse)
	h.SetBackend("challenges", challenges)
	h.SetBackend("users", durable)
	h.SetBackend("sessions", durable)
	h.SetBackend("feedback", a.cfg.Feedback.Provider)
	return h
}
