package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/Shiftrdw/hukm-scheduling/internal/roster"
)

// printStatus prints the solver's three-way status in a color keyed to
// how usable the result is — mirrors claude-monitor's colored status
// line convention (sascodiego-CC-Monitor/cmd/claude-monitor/reporting.go).
func printStatus(result *roster.Result) {
	switch result.Status {
	case roster.StatusOptimal:
		color.New(color.FgGreen, color.Bold).Printf("OPTIMAL")
		fmt.Printf(" — objective %.1f\n", result.Objective)
	case roster.StatusFeasible:
		color.New(color.FgYellow, color.Bold).Printf("FEASIBLE")
		fmt.Printf(" — objective %.1f (not proven optimal)\n", result.Objective)
	default:
		color.New(color.FgRed, color.Bold).Println("INFEASIBLE")
	}
}

// printRoster renders the decoded assignments as a worker x date table,
// one cell per (worker, date) holding the held slot IDs.
func printRoster(result *roster.Result) {
	if len(result.Assignments) == 0 {
		return
	}

	workerDates := make(map[string]map[string][]string)
	var dateOrder []string
	var workerOrder []string
	seenDates := make(map[string]bool)
	seenWorkers := make(map[string]bool)

	for _, rec := range result.Assignments {
		w := string(rec.Worker)
		d := rec.Date.Format("2006-01-02")
		if !seenWorkers[w] {
			seenWorkers[w] = true
			workerOrder = append(workerOrder, w)
		}
		if !seenDates[d] {
			seenDates[d] = true
			dateOrder = append(dateOrder, d)
		}
		if workerDates[w] == nil {
			workerDates[w] = make(map[string][]string)
		}
		workerDates[w][d] = append(workerDates[w][d], rec.SlotID)
	}
	sort.Strings(dateOrder)
	sort.Strings(workerOrder)

	table := tablewriter.NewWriter(os.Stdout)
	header := append([]string{"Worker"}, dateOrder...)
	table.SetHeader(header)
	table.SetAutoWrapText(false)

	for _, w := range workerOrder {
		row := make([]string, 0, len(dateOrder)+1)
		row = append(row, w)
		for _, d := range dateOrder {
			cell := ""
			for i, s := range workerDates[w][d] {
				if i > 0 {
					cell += ","
				}
				cell += s
			}
			row = append(row, cell)
		}
		table.Append(row)
	}
	table.Render()
}
