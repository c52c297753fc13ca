package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/tobiasvance/remedy/internal/cli"
	"github.com/tobiasvance/remedy/internal/db"
	"github.com/tobiasvance/remedy/internal/repository"
	"github.com/tobiasvance/remedy/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.remedy/remedy.db
	dbPath := os.Getenv("REMEDY_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".remedy", "remedy.db")
	}

	orgID := os.Getenv("REMEDY_ORG")
	if orgID == "" {
		orgID = "default"
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	timelineRepo := repository.NewSQLiteTimelineRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if os.Getenv("REMEDY_LOG_USE_CASES") == "1" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Tasks:       service.NewTaskService(taskRepo, depRepo, uow),
		Assignments: service.NewAssignmentService(taskRepo, userRepo, orgID, observers...),
		Timelines:   service.NewTimelineService(timelineRepo, milestoneRepo, taskRepo, uow, observers...),
		Bulk:        service.NewBulkService(userRepo, uow, orgID, observers...),
		Users:       service.NewUserService(userRepo),
		OrgID:       orgID,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
