package main

import (
	"embed"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	hyperpitchApp "github.com/ahtisham02/hyperpitch-io-sub002/internal/app"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// --mcp runs the builder as a headless MCP server on stdin/stdout,
	// sharing the desktop app's database.
	for _, arg := range os.Args[1:] {
		if arg == "--mcp" {
			hyperpitchApp.ServeMCP()
			return
		}
	}

	app := hyperpitchApp.New()

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err := wails.Run(&options.App{
		Title:     "Hyperpitch Studio",
		Width:     1440,
		Height:    900,
		MinWidth:  960,
		MinHeight: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 250, G: 250, B: 252, A: 1},
		Menu:             appMenu,
		OnStartup:        app.Startup,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				HideTitleBar:               false,
				FullSizeContent:            true,
				UseToolbar:                 true,
				HideToolbarSeparator:       true,
			},
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			About: &mac.AboutInfo{
				Title:   "Hyperpitch Studio",
				Message: "Landing page builder with AI-assisted sections",
			},
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
