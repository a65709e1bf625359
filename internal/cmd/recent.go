package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/runger/skillpick/internal/usage"
)

var recentJSON bool

var recentCmd = &cobra.Command{
	Use:     "recent",
	Short:   "Show recently used skills",
	GroupID: groupCore,
	Long: `Show the recently used skills, most recent first.

Skills are recorded when picked or queued. Up to 8 are kept.`,
	Args: cobra.NoArgs,
	RunE: runRecent,
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all recently used skills",
	Args:  cobra.NoArgs,
	RunE:  runRecentClear,
}

func init() {
	recentCmd.Flags().BoolVar(&recentJSON, "json", false, "output as JSON")
	recentCmd.AddCommand(recentClearCmd)
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.Recents == nil {
		fmt.Printf("%sRecent skills are disabled (recents.enabled = false)%s\n", colorDim, colorReset)
		return nil
	}

	records := env.LoadRecents(ctx)
	if recentJSON {
		if records == nil {
			records = []usage.Record{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Printf("%sNo recent skills%s\n", colorDim, colorReset)
		return nil
	}
	for _, r := range records {
		fmt.Printf("  %s%s%s  %s%s  used %d× %s%s\n",
			colorCyan, r.Name, colorReset,
			colorDim, r.Namespace, r.Count, humanize.Time(r.LastUsedAt), colorReset)
	}
	return nil
}

func runRecentClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.Recents == nil {
		fmt.Printf("%sRecent skills are disabled (recents.enabled = false)%s\n", colorDim, colorReset)
		return nil
	}
	if err := env.Recents.Save(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear recent skills: %w", err)
	}
	fmt.Println("Cleared recent skills")
	return nil
}
