package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/skillpick/internal/app"
	"github.com/runger/skillpick/internal/catalog"
	"github.com/runger/skillpick/internal/config"
	"github.com/runger/skillpick/internal/queue"
)

var queueCmd = &cobra.Command{
	Use:     "queue <name>",
	Short:   "Queue a skill without opening the picker",
	GroupID: groupCore,
	Long: `Queue the named skill, replacing any queued skill.

Queuing counts as a use and moves the skill to the top of the recent list.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runQueue,
	ValidArgsFunction: completeSkillNames,
}

var unqueueCmd = &cobra.Command{
	Use:     "unqueue",
	Short:   "Remove the queued skill",
	GroupID: groupCore,
	Args:    cobra.NoArgs,
	RunE:    runUnqueue,
}

var queuedCmd = &cobra.Command{
	Use:     "queued",
	Short:   "Print the queued skill",
	GroupID: groupCore,
	Long: `Print the name of the queued skill. Nothing is printed when no skill is
queued.`,
	Args: cobra.NoArgs,
	RunE: runQueued,
}

func init() {
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(unqueueCmd)
	rootCmd.AddCommand(queuedCmd)
}

func runQueue(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	it, err := catalog.Find(env.Items, args[0])
	if err != nil {
		return err
	}
	if err := env.Queue.Set(it.Name); err != nil {
		return err
	}
	env.Touch(ctx, it)

	fmt.Printf("%sQueued%s %s\n", colorGreen, colorReset, it.Name)
	return nil
}

func runUnqueue(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	q := queue.NewStore(paths.QueueFile())

	name, _ := q.Get()
	if err := q.Clear(); err != nil {
		if errors.Is(err, queue.ErrNotQueued) {
			fmt.Printf("%sNo skill is queued%s\n", colorDim, colorReset)
			return nil
		}
		return err
	}

	if name == "" {
		fmt.Println("Unqueued")
	} else {
		fmt.Printf("Unqueued %s\n", name)
	}
	return nil
}

func runQueued(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	name, err := queue.NewStore(paths.QueueFile()).Get()
	if err != nil {
		return err
	}
	if name != "" {
		fmt.Println(name)
	}
	return nil
}

// completeSkillNames completes a skill name argument from the catalog.
func completeSkillNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	items, err := app.LoadCatalog(context.Background(), cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, it := range items {
		if strings.HasPrefix(it.Name, toComplete) {
			names = append(names, it.Name+"\t"+it.Description)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
