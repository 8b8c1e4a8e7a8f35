package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dataloomhq/polaris-bootstrap/internal/provision"
	"github.com/dataloomhq/polaris-bootstrap/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded provisioning runs",
	Long: `List prior provisioning runs from the local run history.
Pass a run id to see its per-step outcomes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := storage.NewHistory()
		if err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer hist.Close()

		if len(args) == 1 {
			steps, err := hist.RunSteps(args[0])
			if err != nil {
				return err
			}
			if len(steps) == 0 {
				color.Yellow("No run %q in the history", args[0])
				return nil
			}
			fmt.Print(provision.RenderRunSteps(args[0], steps))
			return nil
		}

		runs, err := hist.RecentRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			color.Yellow("No recorded runs yet")
			return nil
		}
		fmt.Print(provision.RenderRuns(runs))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
}
