package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/dashboard"
	"github.com/trezcool/coachdesk/core/nav"
	"github.com/trezcool/coachdesk/core/schedule"
	reportsvc "github.com/trezcool/coachdesk/services/report"
)

var (
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

var commands = []string{"conflicts", "summary", "report", "routes"}

type commandLine struct {
	dashboardSvc *dashboard.Service
	out          io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  conflicts [-day DAY] - list schedule conflicts")
	_, _ = fmt.Fprintln(cli.out, "  summary - print dashboard and fee statistics")
	_, _ = fmt.Fprintln(cli.out, "  report [-out FILE] - write the fee report spreadsheet")
	_, _ = fmt.Fprintln(cli.out, "  routes [-all] - list the admin pages")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	conflictsCmd := flag.NewFlagSet("conflicts", flag.ContinueOnError)
	conflictsDay := conflictsCmd.String("day", "", "Only list the conflicts happening on this week day.")

	reportCmd := flag.NewFlagSet("report", flag.ContinueOnError)
	reportOut := reportCmd.String("out", "fees-"+core.Today()+".xlsx", "The spreadsheet to write.")

	routesCmd := flag.NewFlagSet("routes", flag.ContinueOnError)
	routesAll := routesCmd.Bool("all", false, "Include the pages hidden from the navigation menu.")

	for _, fs := range []*flag.FlagSet{conflictsCmd, reportCmd, routesCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "conflicts":
		if err := conflictsCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		day := core.CleanWeekday(*conflictsDay)
		if day != "" && !core.IsWeekday(day) {
			conflictsCmd.Usage()
			return errHelp
		}
		return cli.conflicts(day)
	case "summary":
		return cli.summary()
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *reportOut == "" {
			reportCmd.Usage()
			return errHelp
		}
		return cli.report(*reportOut)
	case "routes":
		if err := routesCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.routes(*routesAll)
	default:
		if guess := closestCommand(args[1]); guess != "" {
			_, _ = fmt.Fprintf(cli.out, "unknown command %q, did you mean %q?\n", args[1], guess)
		}
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) conflicts(day string) error {
	snap, err := cli.dashboardSvc.Fetch(context.Background(), false, false, true, false)
	if err != nil {
		return err
	}
	conflicts := schedule.FilterConflicts(schedule.DetectConflicts(snap.Batches), day)

	if !isTerminalFunc() {
		return cli.writeJSON(conflicts)
	}
	if len(conflicts) == 0 {
		_, _ = fmt.Fprintln(cli.out, "No conflicts")
		return nil
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tDAY\tSLOT\tWITH\tBATCHES")
	for _, c := range conflicts {
		with := c.Room
		if c.Type == schedule.ConflictTeacher {
			with = fmt.Sprintf("teacher %d", c.TeacherID)
		}
		names := make([]string, 0, len(c.Batches))
		for _, b := range c.Batches {
			names = append(names, b.Name)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Type, c.Day, c.TimeSlot, with, strings.Join(names, ", "))
	}
	return w.Flush()
}

func (cli *commandLine) summary() error {
	ctx := context.Background()
	sum, err := cli.dashboardSvc.Load(ctx)
	if err != nil {
		return err
	}
	fees, err := cli.dashboardSvc.LoadFees(ctx)
	if err != nil {
		return err
	}

	if !isTerminalFunc() {
		return cli.writeJSON(map[string]interface{}{
			"stats": sum.Stats,
			"fees":  fees.Stats,
		})
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Students\t%d (%d active)\n", sum.Stats.TotalStudents, sum.Stats.ActiveStudents)
	_, _ = fmt.Fprintf(w, "Batches\t%d\n", sum.Stats.TotalBatches)
	_, _ = fmt.Fprintf(w, "Collected\t%.2f\n", fees.Stats.TotalCollected)
	_, _ = fmt.Fprintf(w, "Pending\t%.2f\n", fees.Stats.TotalPending)
	_, _ = fmt.Fprintf(w, "Overdue\t%d\n", fees.Stats.OverdueCount)
	return w.Flush()
}

func (cli *commandLine) report(path string) error {
	snap, err := cli.dashboardSvc.Fetch(context.Background(), true, false, false, true)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := reportsvc.WriteFees(f, snap.Students, snap.Payments); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "Fee report written to %s\n", path)
	return nil
}

func (cli *commandLine) routes(all bool) error {
	routes := nav.Visible()
	if all {
		routes = nav.All()
	}

	if !isTerminalFunc() {
		return cli.writeJSON(routes)
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPATH\tLABEL")
	for _, r := range routes {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Path, r.Label)
	}
	return w.Flush()
}

func (cli *commandLine) writeJSON(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// closestCommand returns the known command most similar to name, or "" if none is close enough.
func closestCommand(name string) string {
	type candidate struct {
		cmd   string
		ratio float64
	}
	candidates := make([]candidate, 0, len(commands))
	for _, cmd := range commands {
		ratio := difflib.NewMatcher(strings.Split(name, ""), strings.Split(cmd, "")).Ratio()
		if ratio >= 0.6 {
			candidates = append(candidates, candidate{cmd, ratio})
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ratio > candidates[j].ratio })
	return candidates[0].cmd
}
