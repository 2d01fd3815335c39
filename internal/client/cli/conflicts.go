package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/pkg/api"
)

// conflictView конфликт с типом сущности для вывода
type conflictView struct {
	Type api.EntityType `json:"type"`
	api.Conflict
}

func flattenConflicts(pending models.PendingConflicts) []conflictView {
	views := make([]conflictView, 0, pending.Len())
	for _, t := range api.EntityTypes() {
		list := append([]api.Conflict(nil), pending[t]...)
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		for _, c := range list {
			views = append(views, conflictView{Type: t, Conflict: c})
		}
	}
	return views
}

func (c *Cli) conflictsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Show conflicts waiting for a decision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			views := flattenConflicts(c.app.Engine.PendingConflicts())
			return c.render(format, views, conflictsTemplate, views)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format: text, json, yaml")
	return cmd
}

func (c *Cli) resolveCmd() *cobra.Command {
	var keep string

	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve a conflict by keeping the local or the server version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			choice := models.Resolution(keep)
			if !choice.Valid() {
				return fmt.Errorf("--keep must be %q or %q", models.KeepLocal, models.KeepServer)
			}

			cleared, err := c.app.Engine.ResolveConflict(cmd.Context(), args[0], choice)
			if err != nil {
				return err
			}

			c.io.Printf("✓ Conflict %s resolved (kept %s version)\n", args[0], choice)
			if cleared {
				c.io.Println("All conflicts resolved, decisions were sent to the server.")
			} else {
				c.io.Printf("%d conflict(s) remaining.\n", len(flattenConflicts(c.app.Engine.PendingConflicts())))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&keep, "keep", "k", "", "which version to keep: local or server")
	_ = cmd.MarkFlagRequired("keep")
	return cmd
}
