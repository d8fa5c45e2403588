package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jask/smsledger/internal/analytics"
	"github.com/jask/smsledger/internal/config"
	"github.com/jask/smsledger/internal/database"
	"github.com/jask/smsledger/internal/database/repository"
	"github.com/jask/smsledger/internal/logger"
	"github.com/jask/smsledger/internal/parser"
	"github.com/jask/smsledger/internal/service"
	"github.com/jask/smsledger/internal/store"
)

func main() {
	var (
		fileFlag   = flag.String("file", "", `messages file, one per line; "-" reads stdin`)
		dbFlag     = flag.String("db", "", "sqlite database path (overrides config)")
		memFlag    = flag.Bool("mem", false, "use an in-memory store instead of sqlite")
		resetFlag  = flag.Bool("reset", false, "delete all stored transactions before anything else")
		reviewFlag = flag.Bool("review", false, "print near-duplicate pairs for review")
	)
	flag.Parse()

	log := logger.New()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	var st store.Store
	if *memFlag {
		st = store.NewMemory()
	} else {
		path := cfg.Database.Path
		if *dbFlag != "" {
			path = *dbFlag
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.Fatal().Err(err).Msg("mkdir db dir")
		}
		db, err := database.Open(path)
		if err != nil {
			log.Fatal().Err(err).Msg("open db")
		}
		defer db.Close()
		if err := database.RunMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
		st = repository.NewTransactionRepo(db)
	}

	if *resetFlag {
		if err := st.DeleteAll(ctx); err != nil {
			log.Fatal().Err(err).Msg("reset store")
		}
		log.Info().Msg("store cleared")
	}

	if *fileFlag != "" {
		messages, err := readMessages(*fileFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("read messages")
		}
		importer := service.NewImportService(st, parser.New(), log)
		result, err := importer.ImportBatch(ctx, messages)
		if err != nil {
			log.Fatal().Err(err).Msg("import batch")
		}
		fmt.Print(renderImport(result))
	}

	all, err := st.All(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load transactions")
	}

	engine := analytics.New(cfg.BudgetLimits())
	fmt.Print(renderReport(engine, all))

	if *reviewFlag {
		pairs, err := service.NewReconciler(st).Review(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("review")
		}
		fmt.Print(renderReview(pairs))
	}
}

// readMessages loads one message per line, skipping blank lines. "-"
// reads stdin.
func readMessages(path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var messages []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		messages = append(messages, line)
	}
	return messages, scanner.Err()
}
