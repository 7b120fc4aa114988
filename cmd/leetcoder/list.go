package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List all added problems",
		Action: runList,
	}
}

func runList(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()

	records, err := env.index.All()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		color.Yellow("No problems added yet. Use 'add' to get started.")
		return nil
	}

	printRecords(os.Stdout, records, true)
	fmt.Printf("\nTotal: %d problem(s)\n", len(records))
	return nil
}
