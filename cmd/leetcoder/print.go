package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/yhlin/leetcoder/internal/models"
)

var difficultyColors = map[models.Difficulty]*color.Color{
	models.DifficultyEasy:   color.New(color.FgGreen),
	models.DifficultyMedium: color.New(color.FgYellow),
	models.DifficultyHard:   color.New(color.FgRed),
}

func difficultyLabel(d models.Difficulty) string {
	if c, ok := difficultyColors[d]; ok {
		return c.Sprint(string(d))
	}
	return string(d)
}

// tagSummary shows at most the first three tags, with an ellipsis when
// more exist.
func tagSummary(tags []string) string {
	if len(tags) <= 3 {
		return strings.Join(tags, ", ")
	}
	return strings.Join(tags[:3], ", ") + "..."
}

// printRecords writes a table of added problems. withFile adds the stub
// filename column used by the list command.
func printRecords(out io.Writer, records []*models.AddedRecord, withFile bool) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if withFile {
		fmt.Fprintln(w, "ID\tTITLE\tDIFFICULTY\tTAGS\tFILE")
	} else {
		fmt.Fprintln(w, "ID\tTITLE\tDIFFICULTY\tTAGS")
	}
	for _, rec := range records {
		if withFile {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				rec.ID, rec.Title, difficultyLabel(rec.Difficulty), tagSummary(rec.Tags), rec.Filename)
		} else {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				rec.ID, rec.Title, difficultyLabel(rec.Difficulty), tagSummary(rec.Tags))
		}
	}
	w.Flush()
}
