package app

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/ai"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/api"
	mcpserver "github.com/ahtisham02/hyperpitch-io-sub002/internal/mcp"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/secret"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/service"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/storage"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails
// frontend to notify).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no
// GUI. It initializes storage and services against the same database the
// desktop app uses and serves until interrupted.
func ServeMCP() {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".local", "share", "hyperpitch")
	dbPath := filepath.Join(dataDir, "hyperpitch.db")

	db, err := storage.New(dbPath, dataDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	emitter := noopEmitter{}
	snapshots := storage.NewSnapshotStore(db)
	projects := service.NewProjectService(
		storage.NewProjectStore(db),
		storage.NewCommentStore(db),
		snapshots,
		emitter,
	)
	session := ai.NewSession(envOr("HYPERPITCH_AI_URL", defaultAIBaseURL))
	builders := service.NewBuilderService(projects, snapshots, session, emitter)

	token, _ := secret.NewKeychainStore().Get(secret.KeyAPIToken)
	if len(token) == 0 {
		token = []byte(os.Getenv("HYPERPITCH_API_TOKEN"))
	}
	hosting := api.NewClient(envOr("HYPERPITCH_API_URL", defaultAPIBaseURL), string(token))
	publish := service.NewPublishService(projects, hosting, emitter)

	srv := mcpserver.New(mcpserver.Deps{
		Projects: projects,
		Builders: builders,
		Publish:  publish,
	})
	if err := srv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
