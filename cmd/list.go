package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/byxorna/wrench/pkg/app"
	"github.com/byxorna/wrench/pkg/filter"
	"github.com/byxorna/wrench/pkg/screen"
	"github.com/byxorna/wrench/pkg/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	listFlags = struct {
		Search    string
		Status    string
		Secondary string
	}{}

	listCmd = &cobra.Command{
		Use:       "list <screen>",
		Short:     "Print a screen's records, filtered like the interactive view",
		Args:      cobra.ExactArgs(1),
		ValidArgs: screen.Names,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
				tab, err := loadTab(ctx, cmd, svc, args[0])
				if err != nil {
					return err
				}
				tab.SetCriteria(filter.Criteria{
					Search:    listFlags.Search,
					Status:    orAll(listFlags.Status),
					Secondary: orAll(listFlags.Secondary),
				})
				renderTab(cmd.OutOrStdout(), tab)
				return nil
			})
		},
	}
)

func init() {
	listCmd.Flags().StringVar(&listFlags.Search, "search", "", "case-insensitive search term")
	listCmd.Flags().StringVar(&listFlags.Status, "status", filter.All, "status filter")
	listCmd.Flags().StringVar(&listFlags.Secondary, "filter", filter.All, "secondary filter (brand, priority, stock, method or role)")
}

func orAll(v string) string {
	if v == "" {
		return filter.All
	}
	return v
}

// printNotifier writes notifications to the command's output streams.
func printNotifier(out, errOut io.Writer) screen.Notifier {
	return screen.NotifierFunc(func(n screen.Notification) {
		switch n.Level {
		case screen.LevelError:
			fmt.Fprintln(errOut, ui.Error.Render(n.Message))
		case screen.LevelSuccess:
			fmt.Fprintln(out, ui.Success.Render(n.Message))
		default:
			fmt.Fprintln(out, n.Message)
		}
	})
}

// loadTab builds the named screen and loads it. The session must be
// authenticated.
func loadTab(ctx context.Context, cmd *cobra.Command, svc *app.Services, name string) (app.Tab, error) {
	if !svc.Session.Current().IsAuthenticated() {
		return nil, errNotLoggedIn
	}
	_, tabs, err := svc.Tabs(printNotifier(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}
	tab, ok := app.TabByName(tabs, name)
	if !ok {
		return nil, fmt.Errorf("screen %q is not enabled, choose one of: %s", name, strings.Join(svc.Config.Screens, ", "))
	}
	if err := tab.Load(ctx); err != nil {
		return nil, reported(err)
	}
	return tab, nil
}

func renderTab(w io.Writer, tab app.Tab) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.Gray)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return ui.Label.Bold(true).Padding(0, 1)
			}
			return ui.TableCell
		}).
		Headers(tab.Headers()...).
		Rows(tab.Rows()...)
	fmt.Fprintln(w, t)

	st := tab.Status()
	fmt.Fprintf(w, "%d of %d %s\n", st.Visible, st.Total, tab.Name())
}

// confirm asks prompt on the command's terminal unless yes is set.
func confirm(cmd *cobra.Command, prompt string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
