package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/yhlin/leetcoder/internal/leetcode"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Download the full problem catalog into the local database",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "re-sync problems already in the database",
			},
		},
		Action: runSync,
	}
}

func runSync(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()

	status, err := env.store.SyncStatus()
	if err != nil {
		return err
	}

	if status.TotalProblems > 0 && !c.Bool("force") {
		color.Green("[OK] Database already contains %d problems", status.TotalProblems)
		fmt.Printf("Last synced: %s\n", status.LastSync.Format("2006-01-02 15:04:05"))
		color.Yellow("Use --force to re-sync all problems")
		return nil
	}

	syncer := leetcode.NewSyncer(env.client, env.store, env.cfg.SyncDelay, c.Bool("force"))
	result, err := syncer.Run(c.Context)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	color.Green("\n[OK] Sync complete!")
	fmt.Printf("  New problems synced: %d\n", result.Synced)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped (already exists): %d\n", result.Skipped)
	}
	if result.Failed > 0 {
		color.Yellow("  Failed: %d (see log for details)", result.Failed)
	}

	status, err = env.store.SyncStatus()
	if err != nil {
		return err
	}
	fmt.Printf("\nTotal problems in database: %d\n", status.TotalProblems)
	return nil
}
