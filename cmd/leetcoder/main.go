// Command leetcoder tracks programming-practice problems: it fetches
// problem metadata from the remote catalog into a local SQLite store,
// scaffolds solution stub files, and reports on what has been attempted.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yhlin/leetcoder/internal/config"
	"github.com/yhlin/leetcoder/internal/db"
	"github.com/yhlin/leetcoder/internal/gen"
	"github.com/yhlin/leetcoder/internal/index"
	"github.com/yhlin/leetcoder/internal/leetcode"
	"github.com/yhlin/leetcoder/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "leetcoder",
		Usage:   "LeetCode problem tracker and solution stub manager",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Value:   config.DefaultPath,
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "directory holding the problem database",
			},
			&cli.StringFlag{
				Name:  "solutions-dir",
				Usage: "directory where solution stubs are written",
			},
		},
		Commands: []*cli.Command{
			addCommand(),
			searchCommand(),
			listCommand(),
			statsCommand(),
			syncCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// env wires together the store, facade, generator and catalog client for
// one command invocation.
type env struct {
	cfg    *config.Config
	db     *db.DB
	store  *db.Store
	index  *index.Index
	gen    *gen.Generator
	client *leetcode.Client
}

// newEnv loads configuration, opens and migrates the database, and builds
// the command's collaborators. A store that cannot be opened or migrated
// is fatal to the whole invocation.
func newEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	if dir := c.String("solutions-dir"); dir != "" {
		cfg.SolutionsDir = dir
	}

	logging.Init(os.Stderr, cfg.LogLevel)

	lang, err := gen.LanguageByName(cfg.Language)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("cannot open problem database: %w", err)
	}

	migrator := db.NewMigrator(database.DB)
	if err := migrator.Initialize(); err != nil {
		database.Close()
		return nil, fmt.Errorf("cannot initialize schema: %w", err)
	}
	if err := migrator.Up(); err != nil {
		database.Close()
		return nil, fmt.Errorf("cannot migrate schema: %w", err)
	}

	store := db.NewStore(database.DB)

	generator, err := gen.New(cfg.SolutionsDir, lang)
	if err != nil {
		database.Close()
		return nil, err
	}

	client := leetcode.NewClient(leetcode.Options{
		SnippetSlug: lang.SnippetSlug,
		HTTPClient:  &http.Client{Timeout: cfg.RequestTimeout},
	})

	return &env{
		cfg:    cfg,
		db:     database,
		store:  store,
		index:  index.New(store, cfg.SolutionsDir),
		gen:    generator,
		client: client,
	}, nil
}

// Close releases the database connection.
func (e *env) Close() {
	if e.db != nil {
		e.db.Close()
	}
}
