package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	apperrors "github.com/yhlin/leetcoder/internal/errors"
	"github.com/yhlin/leetcoder/internal/models"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search added problems by title keyword or tag",
		ArgsUsage: "<keyword>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "search by tag instead of title",
			},
		},
		Action: runSearch,
	}
}

func runSearch(c *cli.Context) error {
	if c.NArg() != 1 {
		return apperrors.New(apperrors.ErrInvalid, "search requires exactly one keyword")
	}
	keyword := c.Args().First()

	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()

	var records []*models.AddedRecord
	searchType := "title"
	if c.Bool("tag") {
		searchType = "tag"
		records, err = env.index.SearchByTag(keyword)
	} else {
		records, err = env.index.SearchByTitle(keyword)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		color.Yellow("No problems found with %s %q", searchType, keyword)
		return nil
	}

	fmt.Printf("Search results for %q:\n\n", keyword)
	printRecords(os.Stdout, records, false)
	fmt.Printf("\nFound %d problem(s)\n", len(records))
	return nil
}
