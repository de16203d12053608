package cli

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/voltrak-labs/showroom/internal/seed"
)

func (c *CLI) newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load catalog content from a file",
		Long: `Manage catalog seed files.

A seed file lists products, qna, awards and media in YAML. Entries with an
id update that item; entries without one are created.

Commands:
  init     - Write an example seed file
  validate - Check a seed file without touching the backend
  apply    - Save every entry through the admin dashboard
  export   - Write the backend's current catalog to a seed file`,
	}

	cmd.AddCommand(c.newSeedInitCmd())
	cmd.AddCommand(c.newSeedValidateCmd())
	cmd.AddCommand(c.newSeedApplyCmd())
	cmd.AddCommand(c.newSeedExportCmd())

	return cmd
}

func (c *CLI) newSeedInitCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := seed.Init(outputDir)
			if err != nil {
				return err
			}
			absPath, _ := filepath.Abs(path)
			if c.jsonOutput {
				return c.outputJSON(map[string]interface{}{
					"status": "created",
					"path":   absPath,
				})
			}
			c.printf("✓ Seed file created: %s\n", absPath)
			c.println("\nNext steps:")
			c.println("  1. Edit the file to match your catalog")
			c.println("  2. Run 'showroom seed validate' to check it")
			c.println("  3. Run 'showroom seed apply' to load it")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory for the seed file")

	return cmd
}

func (c *CLI) newSeedValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := c.loadSeed(args[0])
			if err != nil {
				return err
			}
			counts := catalog.Count()
			if c.jsonOutput {
				return c.outputJSON(map[string]interface{}{
					"status": "valid",
					"path":   args[0],
					"counts": counts,
				})
			}
			c.printf("✓ Seed file is valid: %s\n", args[0])
			c.printCounts("\nEntries:", counts)
			return nil
		},
	}
}

func (c *CLI) newSeedApplyCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Apply a seed file",
		Long: `Validate a seed file and save every entry.

Entries are saved in file order, products first. Apply stops at the first
entry the backend rejects.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSeedApply(cmd.Context(), args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be saved without saving")

	return cmd
}

func (c *CLI) runSeedApply(ctx context.Context, path string, dryRun bool) error {
	catalog, err := c.loadSeed(path)
	if err != nil {
		return err
	}
	c.debugf("seed %s validated\n", path)

	if dryRun {
		c.printCounts("Dry-run mode: entries that would be saved:", catalog.Count())
		c.println("\nNo changes were made.")
		return nil
	}

	logger, err := c.newLogger(ctx)
	if err != nil {
		return err
	}
	report, err := catalog.Apply(ctx, c.newClient(), logger)
	if report != nil && !c.jsonOutput {
		c.printCounts("Created:", report.Created)
		c.printCounts("Updated:", report.Updated)
	}
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(report)
	}
	c.printf("✓ Seed applied: %s\n", path)
	return nil
}

func (c *CLI) newSeedExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the current catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := seed.Export(cmd.Context(), c.newClient())
			if err != nil {
				return err
			}
			if err := catalog.Save(args[0]); err != nil {
				return err
			}
			if c.jsonOutput {
				return c.outputJSON(map[string]interface{}{
					"status": "exported",
					"path":   args[0],
					"counts": catalog.Count(),
				})
			}
			c.printf("✓ Catalog exported: %s\n", args[0])
			c.printCounts("\nEntries:", catalog.Count())
			return nil
		},
	}
}

func (c *CLI) loadSeed(path string) (*seed.Catalog, error) {
	catalog, err := seed.Load(path)
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (c *CLI) printCounts(title string, counts map[string]int) {
	c.println(title)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.printf("  %-8s %d\n", k+":", counts[k])
	}
}
