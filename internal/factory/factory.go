package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/pkalnins/tycoon-go/internal/dependencies/clock"
	"github.com/pkalnins/tycoon-go/internal/dependencies/random"
	"github.com/pkalnins/tycoon-go/internal/realtime/sse"
	"github.com/pkalnins/tycoon-go/internal/services/auth"
	"github.com/pkalnins/tycoon-go/internal/services/bot"
	"github.com/pkalnins/tycoon-go/internal/services/deck"
	"github.com/pkalnins/tycoon-go/internal/services/economy"
	"github.com/pkalnins/tycoon-go/internal/services/lobby"
	"github.com/pkalnins/tycoon-go/internal/services/recovery"
	"github.com/pkalnins/tycoon-go/internal/services/resolve"
	"github.com/pkalnins/tycoon-go/internal/services/turn"
	"github.com/pkalnins/tycoon-go/internal/services/win"
	"github.com/pkalnins/tycoon-go/internal/storage"
	"github.com/pkalnins/tycoon-go/internal/storage/memory"
	redisstorage "github.com/pkalnins/tycoon-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	EconomyService  *economy.Service
	ResolveService  *resolve.Service
	DeckService     *deck.Service
	WinService      *win.Service
	LobbyController *lobby.Controller
	TurnController  *turn.Controller
	RecoveryService *recovery.Service
	AuthService     *auth.Service
	BotService      *bot.Service
	HubManager      *sse.HubManager
	Broadcaster     *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	economyService := economy.New(logger)
	resolveService := resolve.New()
	deckService := deck.New(rnd, logger)
	winService := win.New()
	lobbyController := lobby.NewController(store, clk, rnd, logger)
	turnController := turn.NewController(store, economyService, resolveService, deckService, winService, clk, rnd, logger)
	recoveryService := recovery.New(store, logger)
	authService := auth.New(store, clk, authCfg)
	botService := bot.NewService(turnController, map[string]bot.Strategy{
		bot.DefaultStrategy: bot.NewRandomStrategy(rnd),
	}, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	// Committed turns push change events to connected clients
	turnController.SetNotifier(broadcaster)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		EconomyService:  economyService,
		ResolveService:  resolveService,
		DeckService:     deckService,
		WinService:      winService,
		LobbyController: lobbyController,
		TurnController:  turnController,
		RecoveryService: recoveryService,
		AuthService:     authService,
		BotService:      botService,
		HubManager:      hubManager,
		Broadcaster:     broadcaster,
	}
}
