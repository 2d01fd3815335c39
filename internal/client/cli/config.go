package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/goalsync/internal/config"
)

func (c *Cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the client configuration file",
	}
	cmd.AddCommand(c.configInitCmd(), c.configShowCmd())
	return cmd
}

func (c *Cli) configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with default values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipApp: "config-init"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.DefaultClientConfigPath()
			}

			if err := config.WriteDefaults(path, config.ClientDefaults(), force); err != nil {
				return err
			}

			c.io.Printf("✓ Config written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (c *Cli) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipApp: "config-show"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Render(c.settings)
			if err != nil {
				return err
			}
			_, err = c.io.Write(data)
			return err
		},
	}
}
