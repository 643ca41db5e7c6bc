package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/danieljhkim/rip/internal/config"
	"github.com/danieljhkim/rip/internal/engine"
)

const timeDisplayLayout = "2006-01-02 15:04:05"

// reportBury prints per-target bury outcomes and returns the number of
// failures. Successful buries are silent, like rm.
func reportBury(result *engine.BuryResult) int {
	var failed int
	for _, o := range result.Outcomes {
		switch o.Status {
		case engine.StatusSkipped:
			PrintInfo(fmt.Sprintf("Skipping %s", pathColor.Sprint(o.Target)))
		case engine.StatusDeleted:
			PrintWarning(fmt.Sprintf("Permanently unlinked %s", o.Source))
		case engine.StatusFailed:
			PrintError(o.Err.Error())
			failed++
		}
	}
	return failed
}

// reportUnbury prints restorations and returns the number of failures.
func reportUnbury(result *engine.UnburyResult, paths *config.Paths) int {
	var failed int
	for _, o := range result.Outcomes {
		switch o.Status {
		case engine.StatusRestored:
			if flagFullPath {
				shortened := strings.Replace(o.Grave, paths.Graveyard, "$GRAVEYARD", 1)
				PrintInfo(fmt.Sprintf("Returned %s to %s",
					graveColor.Sprint(shortened), pathColor.Sprint(o.RestoredTo)))
			} else {
				PrintInfo(fmt.Sprintf("Returned %s", pathColor.Sprint(o.RestoredTo)))
			}
		case engine.StatusFailed:
			PrintError(o.Err.Error())
			failed++
		}
	}
	return failed
}

// reportSeance lists graves, as bare paths with --plain or as a table
// with index, time and type otherwise.
func reportSeance(result *engine.SeanceResult, paths *config.Paths) {
	if flagPlain {
		for _, g := range result.Graves {
			PrintInfo(graveColor.Sprint(displayPath(g.Entry.Grave, paths)))
		}
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Time", "Type", "Path"})
	for i, g := range result.Graves {
		modified := "N/A"
		if !g.Missing {
			modified = g.ModTime.Format(timeDisplayLayout)
		}
		table.Append([]string{
			strconv.Itoa(i),
			modified,
			g.Type,
			displayPath(g.Entry.Grave, paths),
		})
	}
	table.Render()
}

// reportDecompose prints the optional inventory and the final verdict.
func reportDecompose(result *engine.DecomposeResult) {
	if !result.Removed {
		PrintInfo("Graveyard left untouched.")
		return
	}
	if len(result.Inventory) > 0 {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"File", "Type"})
		for _, item := range result.Inventory {
			table.Append([]string{item.Original, item.Type})
		}
		table.Render()
	}
	PrintSuccess("Graveyard unlinked")
}

// displayPath shortens a grave path by stripping the graveyard prefix
// unless --full-path asks for the real location.
func displayPath(gravePath string, paths *config.Paths) string {
	if flagFullPath {
		return gravePath
	}
	return strings.Replace(gravePath, paths.Graveyard, "", 1)
}

func failedErr(n int) error {
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%d target(s) failed", n)
}
