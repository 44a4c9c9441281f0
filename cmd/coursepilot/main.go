package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/coursepilot/internal/cli"
	"github.com/alexanderramin/coursepilot/internal/cli/formatter"
	"github.com/alexanderramin/coursepilot/internal/config"
	"github.com/alexanderramin/coursepilot/internal/db"
	"github.com/alexanderramin/coursepilot/internal/repository"
	"github.com/alexanderramin/coursepilot/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, formatter.StyleRed.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	app.Connect = func(app *cli.App, configPath string) error {
		cfg, _, _, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			return fmt.Errorf("ensure directories: %w", err)
		}

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		// Wire repositories
		courseRepo := repository.NewSQLiteCourseRepo(database)
		planRepo := repository.NewSQLitePlanRepo(database)

		// Wire unit of work for transactional operations
		uow := db.NewSQLiteUnitOfWork(database)

		observer := service.NewLogUseCaseObserver(os.Stderr, cfg.SlogLevel())
		app.Config = cfg
		app.Courses = service.NewCourseService(courseRepo, uow, observer)
		app.Plans = service.NewPlanService(courseRepo, planRepo, uow, observer)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
