package cleanup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jobmirror/internal/app/syncer"
)

var CleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Retract closed listings from the public catalogs",
	Long: `Fetches every closed listing from the master catalog and archives its
copies in all public catalogs. Every catalog is searched, not just the ones
the listing currently routes to, so copies are found even after a category
change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := syncer.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("application not initialized")
		}

		result, err := app.Cleaner().Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}

		if jsonOut, _ := cmd.Root().PersistentFlags().GetBool("json"); jsonOut {
			data, err := json.Marshal(result)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		line := fmt.Sprintf("Cleanup complete: archived=%d errors=%d (%s)",
			result.Archived, result.Errors,
			result.Duration.Round(time.Millisecond))
		if result.Errors > 0 {
			color.Yellow(line)
		} else {
			color.Green(line)
		}
		return nil
	},
}
