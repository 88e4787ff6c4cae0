// Command server wires the recruitment workflow engine behind an HTTP API.
// Business logic lives in the internal services; main only selects store
// implementations from config and owns process lifecycle.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"talentgate/internal/audit"
	candidacystore "talentgate/internal/candidacy/store"
	identityhandler "talentgate/internal/identity/handler"
	identitymodels "talentgate/internal/identity/models"
	identityservice "talentgate/internal/identity/service"
	identitystore "talentgate/internal/identity/store"
	pipelinehandler "talentgate/internal/pipeline/handler"
	pipelinemetrics "talentgate/internal/pipeline/metrics"
	pipelineservice "talentgate/internal/pipeline/service"
	"talentgate/internal/platform/config"
	"talentgate/internal/platform/httpserver"
	"talentgate/internal/platform/logger"
	"talentgate/internal/platform/middleware"
	"talentgate/internal/platform/postgres"
	platformredis "talentgate/internal/platform/redis"
	postinghandler "talentgate/internal/posting/handler"
	postingservice "talentgate/internal/posting/service"
	postingstore "talentgate/internal/posting/store"
	"talentgate/internal/session"
	sessionhandler "talentgate/internal/session/handler"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store selection: PostgreSQL when configured, in-memory otherwise.
	var (
		candidates   identityservice.CandidateStore
		postings     postingstore.PostingStore
		applications candidacystore.ApplicationStore
		auditStore   audit.Store
	)
	if cfg.PostgresURL != "" {
		db, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		candidates = identitystore.NewPostgres(db)
		postings = postingstore.NewPostgres(db)
		applications = candidacystore.NewPostgres(db)
		auditStore = audit.NewPostgresStore(db)
		log.Info("using postgres stores")
	} else {
		candidates = identitystore.NewInMemory()
		postings = postingstore.NewInMemory()
		applications = candidacystore.NewInMemory()
		auditStore = audit.NewInMemoryStore()
		log.Info("using in-memory stores")
	}

	group, groupCtx := errgroup.WithContext(ctx)

	// Audit pipeline: store on the request path, optional Kafka sink async.
	var publisherOpts []audit.PublisherOption
	if cfg.KafkaBrokers != "" {
		inbox := make(chan audit.Event, 256)
		sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic, inbox, log)
		if err != nil {
			log.Error("kafka sink setup failed", "error", err)
			os.Exit(1)
		}
		publisherOpts = append(publisherOpts, audit.WithSink(inbox))
		group.Go(func() error {
			err := sink.Run(groupCtx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
		log.Info("audit events forwarded to kafka", "topic", cfg.KafkaTopic)
	}
	publisher := audit.NewPublisher(auditStore, log, publisherOpts...)

	// Session store: Redis when configured, in-memory with a sweeper
	// otherwise.
	var sessionStore session.Store
	if cfg.RedisURL != "" {
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		sessionStore = session.NewRedisStore(client.Client)
		log.Info("using redis session store")
	} else {
		memStore := session.NewInMemoryStore()
		sessionStore = memStore
		group.Go(func() error {
			err := memStore.Sweep(groupCtx, time.Minute)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	identitySvc, err := identityservice.New(candidates)
	if err != nil {
		log.Error("identity service setup failed", "error", err)
		os.Exit(1)
	}
	if cfg.BootstrapRecruiterUser != "" && cfg.BootstrapRecruiterPassword != "" {
		if err := identitySvc.EnsureRecruiter(ctx, cfg.BootstrapRecruiterUser, cfg.BootstrapRecruiterPassword); err != nil {
			log.Error("recruiter bootstrap failed", "error", err)
			os.Exit(1)
		}
		log.Info("bootstrap recruiter ensured", "username", cfg.BootstrapRecruiterUser)
	}

	postingSvc, err := postingservice.New(postings, applications)
	if err != nil {
		log.Error("posting service setup failed", "error", err)
		os.Exit(1)
	}

	codec := session.NewTokenCodec(cfg.JWTSigningKey, "talentgate")
	sessionSvc, err := session.New(identitySvc, sessionStore, codec, cfg.SessionTTL)
	if err != nil {
		log.Error("session service setup failed", "error", err)
		os.Exit(1)
	}

	engine, err := pipelineservice.New(postings, applications, identitySvc, publisher, pipelinemetrics.New(), log)
	if err != nil {
		log.Error("workflow engine setup failed", "error", err)
		os.Exit(1)
	}

	requireAuth := middleware.RequireAuth(sessionSvc, log)
	requireRecruiter := middleware.RequireRole(string(identitymodels.RoleRecruiter))

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)

	identityhandler.New(identitySvc, log).Register(router)
	sessionhandler.New(sessionSvc, log).Register(router)
	postinghandler.New(postingSvc, publisher, log, requireAuth, requireRecruiter).Register(router)
	pipelinehandler.New(engine, log, requireAuth, requireRecruiter).Register(router)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, router)

	group.Go(func() error {
		log.Info("starting talentgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
