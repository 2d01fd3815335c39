package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *Cli) registerCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, password, err := c.readCredentials(username, true)
			if err != nil {
				return err
			}

			userID, err := c.app.Auth.Register(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			c.io.Println("✓ Registration successful!")
			c.io.Printf("User ID: %s\n", userID)
			c.io.Println("Run 'goalsync login' to start syncing.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVar(&c.passwordFile, "password-file", "", "read password from file")
	return cmd
}

func (c *Cli) loginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, password, err := c.readCredentials(username, false)
			if err != nil {
				return err
			}

			session, err := c.app.Auth.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			c.io.Println("✓ Login successful!")
			c.io.Printf("Username: %s\n", session.Username)
			c.io.Printf("Session expires: %s\n", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVar(&c.passwordFile, "password-file", "", "read password from file")
	return cmd
}

func (c *Cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the local session (pending changes are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}

			if pending := c.app.Engine.Status().Pending; pending > 0 {
				c.io.Printf("%d pending change(s) stay queued until the next login.\n", pending)
			}
			c.io.Println("✓ Logged out")
			return nil
		},
	}
}

// readCredentials запрашивает недостающие username и пароль
func (c *Cli) readCredentials(username string, confirm bool) (string, string, error) {
	if username == "" {
		var err error
		username, err = c.io.ReadInput("Username: ")
		if err != nil {
			return "", "", fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return "", "", err
	}

	if confirm && c.passwordFile == "" {
		if _, fromEnv := lookupPasswordEnv(); !fromEnv {
			again, err := c.io.ReadPassword("Confirm password: ")
			if err != nil {
				return "", "", fmt.Errorf("failed to read password: %w", err)
			}
			if again != password {
				return "", "", fmt.Errorf("passwords do not match")
			}
		}
	}

	return username, password, nil
}
