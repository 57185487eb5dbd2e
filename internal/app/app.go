package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/soccernow/internal/config"
	"github.com/riskibarqy/soccernow/internal/domain/comment"
	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/domain/vote"
	"github.com/riskibarqy/soccernow/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/soccernow/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/soccernow/internal/infrastructure/repository/firestore"
	"github.com/riskibarqy/soccernow/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/soccernow/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/soccernow/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/soccernow/internal/platform/cache"
	idgen "github.com/riskibarqy/soccernow/internal/platform/id"
	"github.com/riskibarqy/soccernow/internal/platform/lock"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
	"github.com/riskibarqy/soccernow/internal/usecase"
)

// Cleanup releases connections opened while building the server.
type Cleanup func(ctx context.Context) error

type repositories struct {
	signups  signup.Repository
	players  player.Repository
	games    game.Repository
	votes    vote.Repository
	comments comment.Repository
	closers  []func() error
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, Cleanup, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cache.NewPlayerRepository(repos.players, store)
		repos.games = cache.NewGameRepository(repos.games, store)
	}

	locker, closeLocker, err := newLocker(cfg, logger)
	if err != nil {
		_ = closeAll(repos.closers)
		return nil, nil, err
	}
	if closeLocker != nil {
		repos.closers = append(repos.closers, closeLocker)
	}

	var (
		verifier httpapi.TokenVerifier
		issuer   usecase.TokenIssuer
	)
	if cfg.JWTSecret != "" {
		authority, err := jwtauth.NewAuthority(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
		if err != nil {
			_ = closeAll(repos.closers)
			return nil, nil, fmt.Errorf("build token authority: %w", err)
		}
		verifier = authority
		issuer = authority
	} else {
		logger.Warn("admin endpoints disabled", "reason", "AUTH_JWT_SECRET empty")
	}

	playerSvc := usecase.NewPlayerService(repos.players, repos.signups, usecase.PlayerConfig{
		SyncWorkers:  cfg.PlayerSyncWorkers,
		SyncLookback: cfg.PlayerSyncLookback,
	}, logger)
	archiveSvc := usecase.NewArchiveService(repos.signups, repos.players, repos.games, locker, usecase.ArchiveConfig{
		Location:   cfg.CycleLocation,
		MinPlayers: cfg.AutoArchiveMinPlayers,
		LockTTL:    cfg.ArchiveLockTTL,
	}, logger)

	services := httpapi.Services{
		Roster: usecase.NewRosterService(repos.signups, repos.players, archiveSvc, usecase.RosterConfig{
			Location:           cfg.CycleLocation,
			AutoArchiveEnabled: cfg.AutoArchiveEnabled,
		}, logger),
		Signup:  usecase.NewSignupService(repos.signups, repos.players, playerSvc, cfg.CycleLocation, logger),
		Archive: archiveSvc,
		Game:    usecase.NewGameService(repos.games, logger),
		Vote:    usecase.NewVoteService(repos.votes, cfg.LeaderboardExcludedIDs, logger),
		Comment: usecase.NewCommentService(repos.comments, idgen.NewUUIDGenerator(), logger),
		Trends:  usecase.NewTrendsService(repos.games, repos.votes, logger),
		Player:  playerSvc,
		Auth:    usecase.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, issuer, logger),
	}

	handler := httpapi.NewHandler(services, httpapi.VoterCookieConfig{
		Secure: cfg.VoterCookieSecure,
		IDs:    idgen.NewHexGenerator(),
	}, logger)
	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		PublicWriteLimiter: httpapi.NewRateLimiter(cfg.PublicWriteRatePerSec, cfg.PublicWriteBurst, cfg.TrustProxyHeaders),
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("http server built",
		"store_backend", cfg.StoreBackend,
		"cache_enabled", cfg.CacheEnabled,
		"redis_lock", cfg.RedisURL != "",
		"cycle_timezone", cfg.CycleLocation.String(),
	)

	closers := repos.closers
	return server, func(context.Context) error { return closeAll(closers) }, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StoreBackend {
	case config.StoreFirestore:
		client, err := firestore.NewClient(ctx, firestore.ClientConfig{
			ProjectID:       cfg.FirestoreProjectID,
			DatabaseID:      cfg.FirestoreDatabaseID,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
			EmulatorHost:    cfg.FirestoreEmulatorHost,
		})
		if err != nil {
			return repositories{}, fmt.Errorf("connect firestore: %w", err)
		}
		logger.Info("store connected", "backend", cfg.StoreBackend, "project_id", cfg.FirestoreProjectID)
		return repositories{
			signups:  firestore.NewSignupRepository(client),
			players:  firestore.NewPlayerRepository(client),
			games:    firestore.NewGameRepository(client),
			votes:    firestore.NewVoteRepository(client),
			comments: firestore.NewCommentRepository(client),
			closers:  []func() error{client.Close},
		}, nil
	case config.StorePostgres:
		db, err := postgres.Open(ctx, postgres.ConnConfig{
			URL:                         cfg.DBURL,
			DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
		})
		if err != nil {
			return repositories{}, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("store connected", "backend", cfg.StoreBackend, "database", postgres.DBNameFromURL(cfg.DBURL))
		return repositories{
			signups:  postgres.NewSignupRepository(db),
			players:  postgres.NewPlayerRepository(db),
			games:    postgres.NewGameRepository(db),
			votes:    postgres.NewVoteRepository(db),
			comments: postgres.NewCommentRepository(db),
			closers:  []func() error{db.Close},
		}, nil
	default:
		logger.Warn("using in-memory store, data is lost on restart")
		return repositories{
			signups:  memory.NewSignupRepository(nil),
			players:  memory.NewPlayerRepository(nil),
			games:    memory.NewGameRepository(nil),
			votes:    memory.NewVoteRepository(nil),
			comments: memory.NewCommentRepository(nil),
		}, nil
	}
}

func newLocker(cfg config.Config, logger *logging.Logger) (lock.Locker, func() error, error) {
	if cfg.RedisURL == "" {
		return lock.NewLocal(), nil, nil
	}

	client, err := lock.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("archive lock backed by redis")
	return lock.NewRedis(client, idgen.NewUUIDGenerator()), client.Close, nil
}

func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
