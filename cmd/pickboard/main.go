package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/pickboard/internal/config"
	"github.com/jask/pickboard/internal/database"
	"github.com/jask/pickboard/internal/database/repository"
	"github.com/jask/pickboard/internal/logging"
	"github.com/jask/pickboard/internal/service"
	"github.com/jask/pickboard/internal/testdata"
	"github.com/jask/pickboard/internal/tui"
)

func main() {
	week := flag.Int("week", 0, "week to pick (overrides board.week)")
	importPath := flag.String("import", "", "import a schedule CSV into the week before starting")
	resetWeek := flag.Bool("reset-week", false, "delete the week's games before importing")
	demo := flag.Bool("demo", false, "generate a sample slate when the week is empty")
	resultsPath := flag.String("results", "", "record scores from a results CSV into the week")
	scorePath := flag.String("score", "", "print the score of a saved ballot and exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *week > 0 {
		cfg.Board.Week = *week
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := time.LoadLocation(cfg.Board.Timezone)
	if err != nil {
		logger.Warn("using local timezone", zap.String("timezone", cfg.Board.Timezone), zap.Error(err))
		loc = time.Local
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	// repositories
	teamRepo := repository.NewTeamRepo(db)
	gameRepo := repository.NewGameRepo(db)

	// services
	schedule := &service.ScheduleService{Teams: teamRepo, Games: gameRepo, Log: logger.Named("schedule")}
	ballots := &service.BallotService{Games: gameRepo, Log: logger.Named("ballot")}
	maintenance := &service.MaintenanceService{DB: db}

	if *resetWeek {
		n, err := maintenance.ResetWeek(ctx, cfg.Board.Week)
		if err != nil {
			log.Fatalf("reset week: %v", err)
		}
		fmt.Printf("week %d: removed %d games\n", cfg.Board.Week, n)
	}

	if *importPath != "" {
		if err := importSchedule(ctx, schedule, *importPath, cfg.Board.Week, loc); err != nil {
			log.Fatalf("import: %v", err)
		}
	}

	if *resultsPath != "" {
		if err := importResults(ctx, schedule, *resultsPath, cfg.Board.Week); err != nil {
			log.Fatalf("results: %v", err)
		}
	}

	if *scorePath != "" {
		if err := printScore(ctx, ballots, *scorePath); err != nil {
			log.Fatalf("score: %v", err)
		}
		return
	}

	if *demo {
		n, err := testdata.SeedWeek(ctx, testdata.Repos{Teams: teamRepo, Games: gameRepo}, cfg.Board.Week, time.Now(), time.Now().UnixNano())
		if err != nil {
			log.Fatalf("demo: %v", err)
		}
		if n > 0 {
			logger.Info("demo week generated", zap.Int("week", cfg.Board.Week), zap.Int("games", n))
		}
	}

	app, err := tui.New(ctx, cfg, tui.Repos{Games: gameRepo}, tui.Services{Ballot: ballots}, logger.Named("tui"), loc)
	if err != nil {
		log.Fatalf("tui: %v", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Ballot.Path == "-" {
		if b := app.Ballot(); b != nil {
			if err := ballots.Export(os.Stdout, *b); err != nil {
				log.Fatalf("export ballot: %v", err)
			}
		}
	}
}

func importSchedule(ctx context.Context, svc *service.ScheduleService, path string, week int, loc *time.Location) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := svc.ImportCSV(ctx, f, week, loc)
	if err != nil {
		return err
	}
	fmt.Printf("week %d: %d imported, %d updated\n", week, res.Imported, res.Updated)
	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "  %v\n", e)
	}
	return nil
}

func importResults(ctx context.Context, svc *service.ScheduleService, path string, week int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := svc.ImportResults(ctx, f, week)
	if err != nil {
		return err
	}
	fmt.Printf("week %d: %d results recorded\n", week, res.Updated)
	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "  %v\n", e)
	}
	return nil
}

func printScore(ctx context.Context, svc *service.BallotService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := svc.Decode(f)
	if err != nil {
		return err
	}
	sc, err := svc.Score(ctx, b)
	if err != nil {
		return err
	}
	for _, l := range sc.Lines {
		fmt.Printf("%2d  %-12s %-18s %2d\n", l.Confidence, l.Team, l.Result, l.Points)
	}
	fmt.Printf("week %d: %d points, %d pending\n", sc.Week, sc.Points, sc.Pending)
	return nil
}
