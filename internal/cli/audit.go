package cli

import (
	"github.com/spf13/cobra"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/observability"
	"github.com/voltrak-labs/showroom/internal/storage"
)

// newAuditCmd creates the audit command.
func (c *CLI) newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit and reporting commands",
		Long:  `Commands for the persisted backend call journal (audit.driver, audit.dsn).`,
	}

	cmd.AddCommand(c.newAuditSummaryCmd())

	return cmd
}

func (c *CLI) newAuditSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show audit summary",
		Long: `Display aggregated statistics of recorded backend calls:
  - successful vs failed calls
  - calls per resource
  - top failure messages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.Audit.Enabled() {
				return &errors.ShowroomError{
					Code:       errors.CodeConfig,
					Message:    "audit store not configured",
					Suggestion: "set audit.driver (postgres or sqlite) and audit.dsn",
				}
			}

			db, err := storage.OpenMigrated(cmd.Context(), c.cfg.Audit.Driver, c.cfg.Audit.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			logger, err := observability.NewPersistentLogger(db)
			if err != nil {
				return err
			}
			summary, err := logger.Report(cmd.Context())
			if err != nil {
				return &errors.ShowroomError{
					Code:    errors.CodeInternal,
					Message: "failed to read audit store",
					Cause:   err,
				}
			}
			return c.printSummary(summary)
		},
	}
}

func (c *CLI) printSummary(summary *observability.Summary) error {
	if c.jsonOutput {
		return c.outputJSON(summary)
	}

	c.println("Backend Call Summary:")
	c.printf("  Succeeded: %d\n", summary.SuccessCount)
	c.printf("  Failed:    %d\n", summary.FailureCount)

	if len(summary.Resources) > 0 {
		c.println("\nCalls per Resource:")
		for _, r := range summary.Resources {
			c.printf("  - %s: %d (%d failed)\n", r.Resource, r.Calls, r.Failures)
		}
	}

	if len(summary.TopFailures) > 0 {
		c.println("\nTop Failures:")
		for _, f := range summary.TopFailures {
			c.printf("  - %s: %d\n", f.Message, f.Count)
		}
	}
	return nil
}
