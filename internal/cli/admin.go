package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/voltrak-labs/showroom/internal/dashboard"
	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/resources"
	"github.com/voltrak-labs/showroom/pkg/models"
)

// DeletePrompt asks for confirmation before a deletion.
const DeletePrompt = "Are you sure you want to delete this item?"

func (c *CLI) newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin dashboard",
		Long: `Manage the catalog through the admin dashboard.

Each resource has its own tab:
  products, qna, awards, media  - list, show, save, edit, delete
  requests, applications        - list, show, delete

Every list is fetched from the backend when its tab opens, and again after
each save or delete.`,
	}

	for _, info := range resources.All() {
		cmd.AddCommand(c.newAdminResourceCmd(info))
	}
	cmd.AddCommand(c.newShellCmd())

	return cmd
}

func (c *CLI) newAdminResourceCmd(info resources.Info) *cobra.Command {
	tab := dashboard.Tab(info.Key)
	cmd := &cobra.Command{
		Use:   info.Key,
		Short: fmt.Sprintf("Manage %s", info.Key),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", info.Key),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdminList(cmd.Context(), tab)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.runAdminShow(cmd.Context(), tab, itemID)
		},
	})
	if !info.ReadOnly {
		cmd.AddCommand(c.newAdminSaveCmd(tab))
		cmd.AddCommand(c.newAdminEditCmd(tab))
	}
	cmd.AddCommand(c.newAdminDeleteCmd(tab))

	return cmd
}

func (c *CLI) newAdminSaveCmd(tab dashboard.Tab) *cobra.Command {
	var (
		sets []string
		file string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create an item, or update it when the input has an id",
		Long: `Fill the form and submit it.

Fields come from --file (YAML or JSON) and then --set key=value, applied in
order. List fields take comma-separated values:
  --set image_urls=a.jpg,b.jpg --set related_products_ids=2,5
Specifications take JSON:
  --set 'specifications={"motor":[{"parameter":"Power","value":"30 kW"}]}'

The form is cleared only when the backend accepts it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdminSave(cmd.Context(), tab, file, sets)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field assignment key=value (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file with the item")

	return cmd
}

func (c *CLI) newAdminEditCmd(tab dashboard.Tab) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Load an item into the form, change fields and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.runAdminEdit(cmd.Context(), tab, itemID, sets)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field assignment key=value (repeatable)")

	return cmd
}

func (c *CLI) newAdminDeleteCmd(tab dashboard.Tab) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Long: `Delete an item.

Requires confirmation unless --yes is provided.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.runAdminDelete(cmd.Context(), tab, itemID, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

// openDashboard creates a dashboard and opens tab.
func (c *CLI) openDashboard(ctx context.Context, tab dashboard.Tab) (*dashboard.Dashboard, error) {
	logger, err := c.newLogger(ctx)
	if err != nil {
		return nil, err
	}
	d := dashboard.New(c.newClient(), nil, logger)
	if err := d.Activate(ctx, tab); err != nil {
		return d, err
	}
	return d, nil
}

func (c *CLI) runAdminList(ctx context.Context, tab dashboard.Tab) error {
	d, err := c.openDashboard(ctx, tab)
	if err != nil {
		return err
	}
	return c.printTab(d)
}

// printTab renders the active tab's list.
func (c *CLI) printTab(d *dashboard.Dashboard) error {
	state := d.State()
	if c.jsonOutput {
		return c.outputJSON(state.Items)
	}
	if listLen(state.Items) == 0 {
		c.printf("No %s\n", d.Active())
		return nil
	}
	if !c.quiet {
		renderList(c.out, state.Items)
	}
	return nil
}

func (c *CLI) runAdminShow(ctx context.Context, tab dashboard.Tab, itemID int64) error {
	d, err := c.openDashboard(ctx, tab)
	if err != nil {
		return err
	}
	item, ok := findItem(d, tab, itemID)
	if !ok {
		return errors.NewItemNotFound(string(tab), itemID)
	}
	if c.jsonOutput {
		return c.outputJSON(item)
	}
	return renderRecord(c.out, item)
}

func (c *CLI) runAdminSave(ctx context.Context, tab dashboard.Tab, file string, sets []string) error {
	d, err := c.openDashboard(ctx, tab)
	if err != nil {
		return err
	}
	if file != "" {
		if err := loadForm(d, tab, file); err != nil {
			return err
		}
	}
	return c.applyAndSave(ctx, d, sets)
}

func (c *CLI) runAdminEdit(ctx context.Context, tab dashboard.Tab, itemID int64, sets []string) error {
	d, err := c.openDashboard(ctx, tab)
	if err != nil {
		return err
	}
	if err := d.Edit(itemID); err != nil {
		return err
	}
	return c.applyAndSave(ctx, d, sets)
}

func (c *CLI) applyAndSave(ctx context.Context, d *dashboard.Dashboard, sets []string) error {
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok {
			return errors.NewInvalidForm(map[string]string{set: "must be key=value"})
		}
		if err := d.SetField(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}

	if err := d.Save(ctx); err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{
			"status":   "saved",
			"resource": d.Active(),
			"count":    listLen(d.State().Items),
		})
	}
	c.printf("✓ Saved %s (%d total)\n", d.Active(), listLen(d.State().Items))
	return nil
}

func (c *CLI) runAdminDelete(ctx context.Context, tab dashboard.Tab, itemID int64, yes bool) error {
	d, err := c.openDashboard(ctx, tab)
	if err != nil {
		return err
	}

	d.RequestDelete(itemID)
	if !yes && !c.confirm(DeletePrompt) {
		d.CancelDelete()
		c.println("Cancelled")
		return nil
	}

	if err := d.ConfirmDelete(ctx); err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{
			"status":   "deleted",
			"resource": tab,
			"id":       itemID,
		})
	}
	c.printf("✓ Deleted %s %d\n", tab, itemID)
	return nil
}

// confirm asks question and reports whether the answer was yes.
func (c *CLI) confirm(question string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// findItem looks id up in tab's fetched list.
func findItem(d *dashboard.Dashboard, tab dashboard.Tab, itemID int64) (interface{}, bool) {
	switch tab {
	case dashboard.TabProducts:
		return d.Products.Find(itemID)
	case dashboard.TabQnA:
		return d.QnA.Find(itemID)
	case dashboard.TabAwards:
		return d.Awards.Find(itemID)
	case dashboard.TabMedia:
		return d.Media.Find(itemID)
	case dashboard.TabRequests:
		return d.Requests.Find(itemID)
	case dashboard.TabApplications:
		return d.Applications.Find(itemID)
	}
	return nil, false
}

// loadForm fills tab's form from a YAML or JSON file.
func loadForm(d *dashboard.Dashboard, tab dashboard.Tab, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	switch tab {
	case dashboard.TabProducts:
		var p models.Product
		if err := yaml.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		d.ProductForm.Edit(p)
	case dashboard.TabQnA:
		var q models.QnA
		if err := yaml.Unmarshal(data, &q); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		d.QnAForm.Set(q)
	case dashboard.TabAwards:
		var a models.Award
		if err := yaml.Unmarshal(data, &a); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		d.AwardForm.Set(a)
	case dashboard.TabMedia:
		var m models.MediaItem
		if err := yaml.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		d.MediaForm.Set(m)
	default:
		return errors.NewReadOnlyResource(string(tab))
	}
	return nil
}

func parseID(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, errors.NewInvalidForm(map[string]string{"id": "must be a positive integer"})
	}
	return v, nil
}
