package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/goalsync/pkg/api"
)

// entityView сущность в выводе list
type entityView struct {
	ID      string          `json:"id"`
	Data    json.RawMessage `json:"data"`
	Version int64           `json:"version"`
	Pending bool            `json:"pending"`
}

func (c *Cli) putCmd() *cobra.Command {
	var raw string

	cmd := &cobra.Command{
		Use:   "put <type>",
		Short: "Create an entity locally and queue it for sync",
		Long:  "Create an entity. Types: " + typeNames() + ". Use --data - to read JSON from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseType(args[0])
			if err != nil {
				return err
			}
			data, err := readData(cmd, raw)
			if err != nil {
				return err
			}

			e, err := c.app.Data.Create(cmd.Context(), t, data)
			if err != nil {
				return err
			}

			c.io.Printf("✓ Created %s %s\n", t, e.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&raw, "data", "d", "", "entity fields as a JSON object")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (c *Cli) updateCmd() *cobra.Command {
	var raw string

	cmd := &cobra.Command{
		Use:   "update <type> <id>",
		Short: "Replace entity fields locally and queue the change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseType(args[0])
			if err != nil {
				return err
			}
			data, err := readData(cmd, raw)
			if err != nil {
				return err
			}

			e, err := c.app.Data.Update(cmd.Context(), t, args[1], data)
			if err != nil {
				return err
			}

			c.io.Printf("✓ Updated %s %s (based on v%d)\n", t, e.ID, e.Version)
			return nil
		},
	}

	cmd.Flags().StringVarP(&raw, "data", "d", "", "entity fields as a JSON object")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (c *Cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <type> <id>",
		Short: "Delete an entity locally and queue the deletion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseType(args[0])
			if err != nil {
				return err
			}

			if err := c.app.Data.Delete(cmd.Context(), t, args[1]); err != nil {
				return err
			}

			c.io.Printf("✓ Deleted %s %s\n", t, args[1])
			return nil
		},
	}
}

func (c *Cli) listCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list <type>",
		Short: "List entities from the local replica",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			t, err := parseType(args[0])
			if err != nil {
				return err
			}

			entities, err := c.app.Data.List(cmd.Context(), t)
			if err != nil {
				return err
			}

			pending := make(map[string]struct{})
			for _, item := range c.app.Engine.PendingItems(t) {
				pending[item.ID] = struct{}{}
			}

			items := make([]entityView, 0, len(entities))
			for _, e := range entities {
				_, isPending := pending[e.ID]
				items = append(items, entityView{ID: e.ID, Data: e.Data, Version: e.Version, Pending: isPending})
			}

			textData := struct {
				Type  api.EntityType
				Items []entityView
			}{Type: t, Items: items}

			return c.render(format, items, entityListTemplate, textData)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format: text, json, yaml")
	return cmd
}

// readData разбирает --data; "-" читает JSON из stdin
func readData(cmd *cobra.Command, raw string) (json.RawMessage, error) {
	if raw == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read data from stdin: %w", err)
		}
		raw = string(content)
	}

	raw = strings.TrimSpace(raw)
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("--data is not valid JSON")
	}
	return json.RawMessage(raw), nil
}
