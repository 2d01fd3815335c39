package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/goalsync/internal/client/auth"
	"github.com/iudanet/goalsync/internal/client/storage"
	clientsync "github.com/iudanet/goalsync/internal/client/sync"
	"github.com/iudanet/goalsync/internal/models"
)

func (c *Cli) syncCmd() *cobra.Command {
	var pull bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push queued changes and fetch changes from other devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run := c.app.Engine.Sync
			if pull {
				run = c.app.Engine.Pull
			}

			result, err := run(cmd.Context())
			if err != nil {
				return err
			}

			c.printSyncResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pull, "pull", false, "contact the server even when nothing is queued")
	return cmd
}

func (c *Cli) printSyncResult(result *clientsync.SyncResult) {
	if result.Skipped {
		c.io.Println("Nothing to sync. Use --pull to fetch changes from other devices.")
		return
	}

	if result.Conflicts > 0 {
		c.io.Printf("⚠️  %d conflict(s) detected, nothing was applied on the server.\n", result.Conflicts)
		c.io.Println("Run 'goalsync conflicts' to review them.")
		return
	}

	c.io.Println("✓ Synchronization completed")
	c.io.Printf("Sent:     %d change(s)\n", result.Sent)
	c.io.Printf("Received: %d change(s), %d applied, %d deleted\n",
		result.Received, result.Changes.Applied, result.Changes.Deleted)
	if result.Changes.Failed > 0 {
		c.io.Printf("Failed:   %d change(s) could not be applied locally\n", result.Changes.Failed)
	}
}

func (c *Cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Sync in the background until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c.app.Engine.OnConflictsDetected(func(p models.PendingConflicts) {
				c.io.Printf("⚠️  %d conflict(s) detected, polling paused. Run 'goalsync conflicts'.\n", p.Len())
			})

			if result, err := c.app.Engine.Pull(ctx); err != nil {
				c.io.Printf("Initial sync failed: %v\n", err)
			} else {
				c.printSyncResult(result)
			}

			c.app.Engine.StartPolling(ctx)
			c.io.Printf("Watching (every %s). Press Ctrl+C to stop.\n", c.cfg.PollInterval)

			<-ctx.Done()
			c.app.Engine.StopPolling()
			c.io.Println("Stopped.")
			return nil
		},
	}
}

// statusView данные команды status
type statusView struct {
	Session   *storage.AuthData
	Sync      clientsync.Status
	Server    string
	ExpiresAt string
	LastSync  string
	Reach     string
	Expired   bool
}

func (c *Cli) statusCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session and sync state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := statusView{
				Sync:     c.app.Engine.Status(),
				Server:   c.cfg.ServerURL,
				LastSync: "never",
			}

			session, err := c.app.Auth.Session(cmd.Context())
			switch {
			case err == nil:
				view.Session = session
				view.Expired = session.Expired(time.Now().Unix())
				view.ExpiresAt = time.Unix(session.ExpiresAt, 0).Format(time.RFC3339)
			case !errors.Is(err, auth.ErrNotAuthenticated):
				return err
			}

			if view.Sync.LastSyncAt > 0 {
				view.LastSync = time.UnixMilli(view.Sync.LastSyncAt).Format(time.RFC3339)
			}

			if check && c.app.Health != nil {
				view.Reach = "online"
				if err := c.app.Health(cmd.Context()); err != nil {
					view.Reach = "offline: " + err.Error()
				}
			}

			return statusTemplate.Execute(c.io, view)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check that the server is reachable")
	return cmd
}
