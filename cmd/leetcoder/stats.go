package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/yhlin/leetcoder/internal/models"
)

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show statistics about added problems",
		Action: runStats,
	}
}

func runStats(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()

	stats, err := env.index.Statistics()
	if err != nil {
		return err
	}

	if stats.Total == 0 {
		color.Yellow("No problems added yet.")
		return nil
	}

	fmt.Printf("Total problems: %d\n\n", stats.Total)

	if len(stats.ByDifficulty) > 0 {
		fmt.Println("By difficulty:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
			if count := stats.ByDifficulty[d]; count > 0 {
				fmt.Fprintf(w, "  %s\t%d\n", difficultyLabel(d), count)
			}
		}
		w.Flush()
		fmt.Println()
	}

	if len(stats.TopTags) > 0 {
		fmt.Println("Top tags:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, tc := range stats.TopTags {
			fmt.Fprintf(w, "  %s\t%d\n", tc.Tag, tc.Count)
		}
		w.Flush()
	}

	return nil
}
