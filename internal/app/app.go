package app

import (
	"context"
	"os"
	"path/filepath"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/ai"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/api"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/secret"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/service"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/storage"
)

// Service endpoints; overridable via environment for staging.
const (
	defaultAPIBaseURL = "https://api.hyperpitch.io"
	defaultAIBaseURL  = "https://ai.hyperpitch.io"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	db            *storage.DB
	secrets       secret.SecretStore
	settingsStore *storage.SettingsStore

	api      *api.Client
	projects *service.ProjectService
	builders *service.BuilderService
	settings *service.SettingsService
	publish  *service.PublishService
	exports  *service.ExportService
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Emit implements service.EventEmitter by delegating to the Wails runtime.
func (a *App) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "hyperpitch")
	dbPath := filepath.Join(dataDir, "hyperpitch.db")

	db, err := storage.New(dbPath, dataDir)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db
	a.secrets = secret.NewKeychainStore()

	token, _ := a.secrets.Get(secret.KeyAPIToken)
	if len(token) == 0 {
		token = []byte(os.Getenv("HYPERPITCH_API_TOKEN"))
	}
	a.api = api.NewClient(envOr("HYPERPITCH_API_URL", defaultAPIBaseURL), string(token))

	emitter := service.EventEmitter(a)
	snapshots := storage.NewSnapshotStore(db)
	a.projects = service.NewProjectService(
		storage.NewProjectStore(db),
		storage.NewCommentStore(db),
		snapshots,
		emitter,
	)
	a.builders = service.NewBuilderService(
		a.projects,
		snapshots,
		ai.NewSession(envOr("HYPERPITCH_AI_URL", defaultAIBaseURL)),
		emitter,
	)
	a.settingsStore = storage.NewSettingsStore(db)
	a.settings = service.NewSettingsService(a.settingsStore, emitter)
	a.publish = service.NewPublishService(a.projects, a.api, emitter)
	a.exports = service.NewExportService(a.projects, dataDir, emitter)

	if err := a.publish.StartScheduler(ctx); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to start publish scheduler: %v", err)
	}
	if err := a.exports.StartWatcher(ctx); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to start exports watcher: %v", err)
	}

	if ws, found, err := service.LoadWindowSize(a.settingsStore); err == nil && found {
		wailsRuntime.WindowSetSize(ctx, ws.Width, ws.Height)
	}
}

// SaveWindowSize persists the current window dimensions for the next
// launch.
func (a *App) SaveWindowSize(width, height int) error {
	return service.SaveWindowSize(a.settingsStore, service.WindowSize{Width: width, Height: height})
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.exports != nil {
		a.exports.StopWatcher()
	}
	if a.publish != nil {
		a.publish.StopScheduler()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
