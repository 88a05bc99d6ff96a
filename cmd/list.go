package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/venom/internal/codec"
	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/ui/styles"
	"github.com/zjrosen/venom/internal/view"
)

var (
	listPolicy string
	listLabel  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the task list",
	Long: `Print the task list the way the main view shows it.

Examples:
  # Completed tasks last (default from config)
  venom list

  # Hide completed tasks
  venom list --policy hide

  # Only tasks labelled WORK
  venom list --label WORK`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configErr != nil {
			return configErr
		}
		cleanup := setupLogging()
		defer cleanup()
		if err := applyAppearance(); err != nil {
			return err
		}

		policy := cfg.Policy()
		if cmd.Flags().Changed("policy") {
			p, err := view.ParsePolicy(listPolicy)
			if err != nil {
				return err
			}
			policy = p
		}

		backend, st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = backend.Close() }()

		if listLabel != "" && st.LabelByCode(listLabel) == nil {
			return fmt.Errorf("no label with code %q", listLabel)
		}
		return printTasks(cmd.OutOrStdout(), st, policy, listLabel, time.Now())
	},
}

func init() {
	listCmd.Flags().StringVar(&listPolicy, "policy", "", "completed tasks: separate, show or hide")
	listCmd.Flags().StringVarP(&listLabel, "label", "l", "", "only tasks with this label code")
	rootCmd.AddCommand(listCmd)
}

// printTasks renders the derived view as a table.
func printTasks(w io.Writer, st *store.Store, policy view.Policy, label string, now time.Time) error {
	st.SortTasks(now)
	v := view.New(policy)
	v.SetFilter(label)
	v.Regenerate(st, now)

	if v.Len() == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}

	rows := make([][]string, 0, v.Len())
	for _, t := range v.Tasks() {
		done := " "
		if t.Done {
			done = "x"
		}
		code := ""
		if l := st.LabelOf(t); l != nil {
			code = l.ShortCode()
		}
		date, clock := codec.FormatDue(t.Due)
		due := date
		if date != "" {
			due += " " + clock
		}
		rows = append(rows, []string{done, code, t.Title, t.Priority.String(), due})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)).
		Headers("", "Label", "Title", "Priority", "Due").
		Rows(rows...)

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
