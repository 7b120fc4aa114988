package main

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	apperrors "github.com/yhlin/leetcoder/internal/errors"
	"github.com/yhlin/leetcoder/internal/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add one or more problems and generate solution stubs",
		ArgsUsage: "<id-or-slug>...",
		Action:    runAdd,
	}
}

func runAdd(c *cli.Context) error {
	if c.NArg() == 0 {
		return apperrors.New(apperrors.ErrInvalid, "add requires at least one problem id or slug")
	}

	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()

	var added, skipped, failed int
	for _, arg := range c.Args().Slice() {
		switch addOne(c.Context, env, arg) {
		case addOutcomeAdded:
			added++
		case addOutcomeSkipped:
			skipped++
		default:
			failed++
		}
	}

	fmt.Printf("\nDone: %d added, %d skipped, %d failed\n", added, skipped, failed)
	return nil
}

type addOutcome int

const (
	addOutcomeAdded addOutcome = iota
	addOutcomeSkipped
	addOutcomeFailed
)

// addOne resolves one identifier argument, generates its stub and records
// it. Per-item failures are reported and never abort the batch.
func addOne(ctx context.Context, env *env, arg string) addOutcome {
	p, err := resolveProblem(ctx, env, arg)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrInvalid):
			color.Red("[X] %q is neither a problem id nor a slug", arg)
		case apperrors.Is(err, apperrors.ErrNotFound), apperrors.Is(err, apperrors.ErrFetch):
			color.Red("[X] Problem %q not found: %v", arg, err)
			fmt.Println("    Hint: run 'leetcoder sync' to download the problem catalog")
		default:
			color.Red("[X] Error adding problem %q: %v", arg, err)
		}
		return addOutcomeFailed
	}

	exists, err := env.index.Exists(p.ID)
	if err != nil {
		color.Red("[X] Error checking problem %d: %v", p.ID, err)
		return addOutcomeFailed
	}
	if exists {
		color.Yellow("[!] Problem %d (%s) already exists", p.ID, p.Title)
		return addOutcomeSkipped
	}

	path, _, err := env.gen.GenerateFile(p)
	if err != nil {
		color.Red("[X] Error generating stub for problem %d: %v", p.ID, err)
		return addOutcomeFailed
	}

	if err := env.index.Add(p, filepath.Base(path)); err != nil {
		color.Red("[X] Error recording problem %d: %v", p.ID, err)
		return addOutcomeFailed
	}

	color.Green("[OK] Added: %d. %s (%s)", p.ID, p.Title, p.Difficulty)
	return addOutcomeAdded
}

// resolveProblem finds a problem by id or slug, consulting the local store
// first and the remote catalog only on a miss. Remotely fetched problems
// are upserted so the added-problem record keeps referential integrity.
func resolveProblem(ctx context.Context, env *env, arg string) (*models.Problem, error) {
	id, slug, err := parseProblemArg(arg)
	if err != nil {
		return nil, err
	}

	var p *models.Problem
	if id > 0 {
		if p, err = env.store.GetProblem(id); err != nil {
			return nil, err
		}
		if p == nil {
			color.Yellow("[!] Problem %d not in local database. Fetching from LeetCode...", id)
			if p, err = env.client.ProblemByID(ctx, id); err != nil {
				return nil, err
			}
			if err = env.store.UpsertProblem(p); err != nil {
				return nil, err
			}
		}
		return p, nil
	}

	if p, err = env.store.GetProblemBySlug(slug); err != nil {
		return nil, err
	}
	if p == nil {
		color.Yellow("[!] Problem %q not in local database. Fetching from LeetCode...", slug)
		if p, err = env.client.ProblemBySlug(ctx, slug); err != nil {
			return nil, err
		}
		if err = env.store.UpsertProblem(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// parseProblemArg classifies an identifier argument as a positive numeric
// id or a slug. Anything else is invalid input rather than being folded
// into a slug lookup.
func parseProblemArg(arg string) (id int, slug string, err error) {
	if n, convErr := strconv.Atoi(arg); convErr == nil {
		if n <= 0 {
			return 0, "", apperrors.Newf(apperrors.ErrInvalid, "problem id must be positive, got %d", n)
		}
		return n, "", nil
	}
	if slugPattern.MatchString(arg) {
		return 0, arg, nil
	}
	return 0, "", apperrors.Newf(apperrors.ErrInvalid, "invalid problem identifier %q", arg)
}
