package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/storage"
)

func (c *CLI) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run system diagnostics",
		Long: `Run system diagnostics.

Checks:
  - configuration
  - backend connectivity
  - audit store`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDoctor(cmd.Context())
		},
	}
}

func (c *CLI) runDoctor(ctx context.Context) error {
	checks := []DiagnosticCheck{
		c.checkConfig(),
		c.checkBackend(ctx),
		c.checkAudit(ctx),
	}

	allPassed := true
	for _, check := range checks {
		if !check.Passed {
			allPassed = false
		}
	}

	if c.jsonOutput {
		if err := c.outputJSON(map[string]interface{}{
			"checks":     checks,
			"all_passed": allPassed,
		}); err != nil {
			return err
		}
	} else {
		c.println("Showroom System Diagnostics")
		c.println("===========================")
		c.println("")
		for _, check := range checks {
			c.printCheck(check)
		}
		c.println("")
		if allPassed {
			c.println("✓ All checks passed")
		} else {
			c.println("✗ Some checks failed - see above for details")
		}
	}

	if !allPassed {
		return &errors.ShowroomError{Code: errors.CodeConfig, Message: "diagnostics failed"}
	}
	return nil
}

// DiagnosticCheck represents a single diagnostic check result.
type DiagnosticCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (c *CLI) printCheck(check DiagnosticCheck) {
	status := "✗"
	if check.Passed {
		status = "✓"
	}
	c.printf("%s %s: %s\n", status, check.Name, check.Message)
	if check.Details != "" && !check.Passed {
		c.printf("  → %s\n", check.Details)
	}
}

func (c *CLI) checkConfig() DiagnosticCheck {
	check := DiagnosticCheck{Name: "Configuration"}

	if c.cfg == nil {
		check.Message = "No configuration loaded"
		check.Details = "Create ~/.showroom/config.yaml or use --config flag"
		return check
	}

	if c.cfg.Backend.URL == "" {
		check.Message = "No backend URL configured"
		check.Details = "Set backend.url in config, BACKEND_URL in .env, or use --backend"
		return check
	}

	check.Passed = true
	timeout := "none"
	if c.cfg.Backend.Timeout > 0 {
		timeout = c.cfg.Backend.Timeout.String()
	}
	check.Message = fmt.Sprintf("Backend: %s (timeout: %s)", c.cfg.Backend.URL, timeout)
	return check
}

func (c *CLI) checkBackend(ctx context.Context) DiagnosticCheck {
	check := DiagnosticCheck{Name: "Backend Connectivity"}

	client := c.newClient()
	if !client.Configured() {
		check.Message = "No backend URL configured"
		return check
	}

	// Diagnostics never wait on an unbounded request.
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := client.Ping(ctx); err != nil {
		check.Message = "Cannot reach backend"
		check.Details = errors.UserMessage(err)
		return check
	}

	check.Passed = true
	check.Message = fmt.Sprintf("Connected to %s in %s", client.Base(), time.Since(start).Round(time.Millisecond))
	return check
}

func (c *CLI) checkAudit(ctx context.Context) DiagnosticCheck {
	check := DiagnosticCheck{Name: "Audit Store"}

	if !c.cfg.Audit.Enabled() {
		check.Passed = true
		check.Message = "Disabled"
		return check
	}

	db, err := storage.OpenMigrated(ctx, c.cfg.Audit.Driver, c.cfg.Audit.DSN)
	if err != nil {
		check.Message = fmt.Sprintf("Cannot open %s store", c.cfg.Audit.Driver)
		check.Details = errors.UserMessage(err)
		return check
	}
	defer db.Close()

	check.Passed = true
	check.Message = fmt.Sprintf("%s store ready", c.cfg.Audit.Driver)
	return check
}
