package cli

import (
	"time"

	"github.com/alexanderramin/coursepilot/internal/config"
	"github.com/alexanderramin/coursepilot/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and configuration used by CLI commands.
type App struct {
	Courses service.CourseService
	Plans   service.PlanService
	Config  *config.Config

	// Connect loads configuration from configPath and wires the services.
	// It runs once before any command that needs them. Tests leave it nil
	// and fill the fields directly.
	Connect func(app *App, configPath string) error

	// IsInteractive reports whether stdin is a terminal. Forms and the plan
	// browser refuse to start when it returns false.
	IsInteractive func() bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		cfg := config.Default()
		a.Config = &cfg
	}
	return a.Config
}

// NewRootCmd creates the top-level "coursepilot" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "coursepilot",
		Short:         "Structure video courses and plan study sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipConnect(cmd) || app.Connect == nil || app.Courses != nil {
				return nil
			}
			return app.Connect(app, configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path")

	root.AddCommand(
		newCourseCmd(app),
		newPlanCmd(app),
		newConfigCmd(&configPath),
	)
	return root
}

const skipConnectAnnotation = "skipConnect"

func skipConnect(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConnectAnnotation] == "true" {
			return true
		}
	}
	return false
}
