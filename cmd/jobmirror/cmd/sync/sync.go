package sync

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jobmirror/internal/app/syncer"
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replicate open listings into the public catalogs",
	Long: `Fetches every open listing from the master catalog and creates a copy in
each public catalog its category and tier route to. Listings that already
have a copy in a catalog are skipped, so the run is safe to repeat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := syncer.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("application not initialized")
		}

		result, err := app.Syncer().Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		if jsonOut, _ := cmd.Root().PersistentFlags().GetBool("json"); jsonOut {
			data, err := json.Marshal(result)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		line := fmt.Sprintf("Sync complete: created=%d skipped=%d errors=%d (%s)",
			result.Created, result.Skipped, result.Errors,
			result.Duration.Round(time.Millisecond))
		if result.Errors > 0 {
			color.Yellow(line)
		} else {
			color.Green(line)
		}
		return nil
	},
}
