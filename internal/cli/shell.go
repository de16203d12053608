package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voltrak-labs/showroom/internal/dashboard"
	"github.com/voltrak-labs/showroom/internal/datasync"
	"github.com/voltrak-labs/showroom/internal/errors"
)

const shellHelp = `Commands:
  tab <name>          switch tab and fetch its list (products, qna, awards, media, requests, applications)
  list                show the current list
  refresh             fetch the current list again
  new                 clear the form
  edit <id>           load an item into the form
  set <field> <value> set a form field
  show                show the form
  save                submit the form
  cancel              clear the form
  delete <id>         ask to delete an item
  confirm             delete the pending item
  abort               keep the pending item
  help                show this help
  quit                leave the shell`

// maxShellLine bounds one shell input line; specifications JSON can be long.
const maxShellLine = 8 << 20

func (c *CLI) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive dashboard",
		Long:  "Open the admin dashboard as an interactive shell.\n\n" + shellHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShell(cmd.Context())
		},
	}
}

func (c *CLI) runShell(ctx context.Context) error {
	logger, err := c.newLogger(ctx)
	if err != nil {
		return err
	}
	d := dashboard.New(c.newClient(), nil, logger)
	if err := d.Activate(ctx, dashboard.InitialTab); err != nil {
		c.shellError(err)
	}

	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxShellLine)
	for {
		fmt.Fprintf(c.out, "showroom[%s]> ", d.Active())
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := c.shellLine(ctx, d, line); quit {
			return nil
		}
	}
}

// shellLine runs one shell command and reports whether to quit.
func (c *CLI) shellLine(ctx context.Context, d *dashboard.Dashboard, line string) bool {
	parts := strings.SplitN(line, " ", 3)
	verb := strings.ToLower(parts[0])
	arg := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}

	var err error
	switch verb {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(c.out, shellHelp)
	case "tab":
		var tab dashboard.Tab
		if tab, err = dashboard.ParseTab(arg(1)); err == nil {
			err = d.Activate(ctx, tab)
			c.shellList(d)
		}
	case "list":
		c.shellList(d)
	case "refresh":
		err = d.Refresh(ctx)
		c.shellList(d)
	case "new", "cancel":
		d.Cancel()
		fmt.Fprintln(c.out, "Form cleared")
	case "edit":
		var itemID int64
		if itemID, err = parseID(arg(1)); err == nil {
			if err = d.Edit(itemID); err == nil {
				c.shellForm(d)
			}
		}
	case "set":
		// "set specifications {...}" keeps everything after the field name.
		err = d.SetField(arg(1), arg(2))
	case "show":
		c.shellForm(d)
	case "save":
		if err = d.Save(ctx); err == nil {
			fmt.Fprintln(c.out, "✓ Saved")
			c.shellList(d)
		}
	case "delete":
		var itemID int64
		if itemID, err = parseID(arg(1)); err == nil {
			d.RequestDelete(itemID)
			fmt.Fprintf(c.out, "%s Type 'confirm' or 'abort'.\n", DeletePrompt)
		}
	case "confirm":
		if _, ok := d.Gate.Pending(); !ok {
			err = errors.NewNoPendingDeletion()
			break
		}
		if err = d.ConfirmDelete(ctx); err == nil {
			fmt.Fprintln(c.out, "✓ Deleted")
		}
		c.shellList(d)
	case "abort":
		d.CancelDelete()
		fmt.Fprintln(c.out, "Cancelled")
	default:
		err = fmt.Errorf("unknown command %q, type 'help'", verb)
	}

	if err != nil {
		c.shellError(err)
	}
	return false
}

func (c *CLI) shellError(err error) {
	fmt.Fprintf(c.out, "Error: %s\n", errors.UserMessage(err))
}

func (c *CLI) shellList(d *dashboard.Dashboard) {
	state := d.State()
	if state.Status == datasync.Idle {
		return
	}
	if listLen(state.Items) == 0 {
		fmt.Fprintf(c.out, "No %s\n", d.Active())
		return
	}
	renderList(c.out, state.Items)
}

func (c *CLI) shellForm(d *dashboard.Dashboard) {
	var current interface{}
	editing := false
	switch d.Active() {
	case dashboard.TabProducts:
		current, editing = d.ProductForm.Current(), d.ProductForm.Editing()
		if raw, pending := d.ProductForm.SpecificationsRaw(); pending {
			defer fmt.Fprintf(c.out, "specifications (not valid JSON yet): %s\n", raw)
		}
	case dashboard.TabQnA:
		current, editing = d.QnAForm.Current(), d.QnAForm.Editing()
	case dashboard.TabAwards:
		current, editing = d.AwardForm.Current(), d.AwardForm.Editing()
	case dashboard.TabMedia:
		current, editing = d.MediaForm.Current(), d.MediaForm.Editing()
	default:
		fmt.Fprintf(c.out, "%s is read-only\n", d.Active())
		return
	}

	if editing {
		fmt.Fprintln(c.out, "Editing:")
	} else {
		fmt.Fprintln(c.out, "New:")
	}
	if err := renderRecord(c.out, current); err != nil {
		c.shellError(err)
	}
}
