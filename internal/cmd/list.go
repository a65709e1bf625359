package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/skillpick/internal/match"
	"github.com/runger/skillpick/internal/sanitize"
	"github.com/runger/skillpick/internal/session"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list [query]",
	Short:   "List skills",
	GroupID: groupCore,
	Long: `List the skill catalog.

Without a query, skills are grouped by namespace with recently used skills
first. With a query, matching skills are listed best match first.

Examples:
  skillpick list                 # Grouped catalog
  skillpick list brave           # Skills matching "brave"
  skillpick list marketing:ad    # Skills in "marketing" matching "ad"
  skillpick list --json          # Machine-readable output`,
	Args: cobra.ArbitraryArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

// listEntry is the JSON form of one listed skill.
type listEntry struct {
	Name        string `json:"name"`
	Namespace   string `json:"namespace"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group"`
	Origin      string `json:"origin"`
	Path        string `json:"path,omitempty"`
	Queued      bool   `json:"queued,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	query := strings.Join(args, " ")
	rows := session.Render(env.Items, query, env.LoadRecents(ctx))
	queued := env.Queued()

	if listJSON {
		return printListJSON(rows, queued)
	}
	printList(rows, queued, strings.TrimSpace(query) != "")
	return nil
}

func printListJSON(rows []match.DisplayItem, queued string) error {
	entries := make([]listEntry, 0, len(rows))
	for _, d := range rows {
		if !d.IsEntry() {
			continue
		}
		entries = append(entries, listEntry{
			Name:        d.Item.Name,
			Namespace:   d.Item.Namespace,
			Description: d.Item.Description,
			Group:       d.Group,
			Origin:      d.Item.Origin.String(),
			Path:        d.Item.Path,
			Queued:      d.Item.Name == queued,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func printList(rows []match.DisplayItem, queued string, ranked bool) {
	if len(rows) == 0 {
		fmt.Printf("%sNo matching skills%s\n", colorDim, colorReset)
		return
	}

	width := terminalWidth()
	for _, d := range rows {
		if !d.IsEntry() {
			fmt.Printf("%s%s%s\n", colorBold, d.Group, colorReset)
			continue
		}

		line := "  " + d.Item.Name
		if ranked {
			line += "  " + colorDim + d.Item.Namespace + colorReset
		}
		if d.Item.Name == queued {
			line += "  " + colorGreen + "[queued]" + colorReset
		}
		if d.Item.Description != "" {
			used := 2 + len(d.Item.Name) + 2
			if ranked {
				used += len(d.Item.Namespace) + 2
			}
			if d.Item.Name == queued {
				used += len("[queued]") + 2
			}
			if rest := width - used; rest > 3 {
				line += "  " + colorDim + sanitize.Truncate(d.Item.Description, rest) + colorReset
			}
		}
		fmt.Println(line)
	}
}
