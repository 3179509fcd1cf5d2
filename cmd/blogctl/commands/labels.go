package commands

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"github.com/spf13/cobra"
)

var labelsCmd = &cobra.Command{
	Use:   "labels [table]",
	Short: "Show display labels",
	Long: `Show the display labels of every table, or of one table, after applying
overrides from LABELS_FILE.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		labels, err := models.LoadLabels(cfg.LabelsFile)
		if err != nil {
			return err
		}
		return printLabels(cmd.OutOrStdout(), labels, args)
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}

func printLabels(out io.Writer, labels models.Labels, only []string) error {
	tables := only
	if len(tables) == 0 {
		for t := range labels {
			tables = append(tables, t)
		}
		sort.Strings(tables)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, table := range tables {
		e, ok := labels[table]
		if !ok {
			return fmt.Errorf("unknown table %q", table)
		}
		fmt.Fprintf(w, "%s\t(%s / %s)\n", table, e.Name, e.Plural)

		fields := make([]string, 0, len(e.Fields))
		for f := range e.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(w, "  %s\t%s\n", f, e.Fields[f])
		}
	}
	return w.Flush()
}
