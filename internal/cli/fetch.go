package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todobrowser/internal/model"
	"github.com/idilsaglam/todobrowser/internal/store/httpstore"
	"github.com/idilsaglam/todobrowser/internal/ui"
)

func (a *app) fetchCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "fetch <count>",
		Short: "Fetch 1-100 todos and print them sorted",
		Example: `  todo fetch 5
  todo fetch 20 --group
  todo fetch 10 --theme mono`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				a.theme.Fail(a.stderr, "fetch: not a number: "+args[0])
				return usageErr("not a number: %q", args[0])
			}
			if !model.ValidCount(n) {
				a.theme.Fail(a.stderr, fmt.Sprintf("fetch: count must be between %d and %d, got %d", model.MinCount, model.MaxCount, n))
				return usageErr("count out of range: %d", n)
			}

			src, err := a.source()
			if err != nil {
				return err
			}
			todos, err := src.Fetch(cmd.Context(), n)
			if err != nil {
				a.logger.Error("fetch todos failed", "limit", n, "kind", httpstore.Classify(err), "err", err)
				a.theme.Fail(a.stderr, "fetch: "+err.Error())
				return &exitErr{code: exitError, err: err}
			}
			a.logger.Debug("todos fetched", "limit", n, "count", len(todos))
			a.printTodos(a.sorter().Sort(todos), group)
			a.theme.OK(a.stdout, fmt.Sprintf("fetched %d todos", len(todos)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

// -------------- rendering helpers --------------

func (a *app) printTodos(todos []model.Todo, group bool) {
	t := a.theme
	d, p := model.Stats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(todos),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")
	if group {
		lines = append(lines, a.groupLines(todos)...)
	} else {
		lines = append(lines, a.flatLines(todos, 0)...)
	}
	t.Panel(a.stdout, lines)
}

func (a *app) flatLines(todos []model.Todo, offset int) []string {
	if len(todos) == 0 {
		return []string{a.theme.Muted.Render("no todos")}
	}
	out := make([]string, 0, len(todos))
	for i, td := range todos {
		idx := a.theme.Muted.Render(fmt.Sprintf("%3d.", offset+i+1))
		out = append(out, fmt.Sprintf("%s %s%s", idx, td.Title, a.theme.Status(td.Completed, td.Suffix())))
	}
	return out
}

// groupLines relies on todos already being sorted pending-first.
func (a *app) groupLines(todos []model.Todo) []string {
	_, pending := model.Stats(todos)
	pend, done := todos[:pending], todos[pending:]

	var lines []string
	lines = append(lines, a.theme.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, a.theme.Muted.Render("(none)"))
	} else {
		lines = append(lines, a.flatLines(pend, 0)...)
	}
	lines = append(lines, "")
	lines = append(lines, a.theme.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, a.theme.Muted.Render("(none)"))
	} else {
		lines = append(lines, a.flatLines(done, len(pend))...)
	}
	return lines
}
