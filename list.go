package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"placebook/services"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show crawled places and new crawl targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.listStore().Load()
			if err != nil {
				return err
			}
			printTargets(os.Stdout, services.NewTargetList(items))
			return nil
		},
	}
}

func printTargets(w io.Writer, targets *services.TargetList) {
	existing, pending := targets.Existing(), targets.Pending()

	fmt.Fprintf(w, "기존 항목 (%d)\n", len(existing))
	for i, v := range existing {
		fmt.Fprintf(w, "  %d. %s\n", i+1, services.DisplayText(v))
	}
	fmt.Fprintf(w, "\n새 항목 (%d)\n", len(pending))
	for i, v := range pending {
		fmt.Fprintf(w, "  %d. %s\n", i+1, services.DisplayText(v))
	}
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <url>",
		Short: "Add a place URL to the crawl list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.listStore()
			items, err := store.Load()
			if err != nil {
				return err
			}
			targets := services.NewTargetList(items)
			if err := targets.Add(args[0]); err != nil {
				if errors.Is(err, services.ErrDuplicateURL) {
					fmt.Fprintln(os.Stderr, err)
				}
				return fmt.Errorf("add %q: %w", args[0], err)
			}
			if err := store.Save(targets.Items()); err != nil {
				return err
			}
			a.logger.Info("[list] Added %s", args[0])
			return nil
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <url>",
		Short: "Remove a place URL from the crawl list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.listStore()
			items, err := store.Load()
			if err != nil {
				return err
			}
			targets := services.NewTargetList(items)
			if !targets.Remove(args[0]) {
				return fmt.Errorf("remove: %q is not in %s", args[0], store.Path())
			}
			if err := store.Save(targets.Items()); err != nil {
				return err
			}
			a.logger.Info("[list] Removed %s", args[0])
			return nil
		},
	}
}
