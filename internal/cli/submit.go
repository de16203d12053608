package cli

import (
	"github.com/spf13/cobra"

	"github.com/voltrak-labs/showroom/internal/site"
)

func (c *CLI) newOrderCmd() *cobra.Command {
	var f site.RequestForm
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Request an order",
		Long: `Submit an order request.

Individuals give an Aadhar number; companies give --company instead.
Required: --product, --name, --email, --phone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.newSite().SubmitOrder(cmd.Context(), f); err != nil {
				return err
			}
			return c.submitted(site.OrderSubmitted)
		},
	}
	addRequestFlags(cmd, &f)
	return cmd
}

func (c *CLI) newDemoCmd() *cobra.Command {
	var f site.RequestForm
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Book a demo",
		Long: `Submit a demo request.

Required: --product, --name, --email, --phone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.newSite().SubmitDemo(cmd.Context(), f); err != nil {
				return err
			}
			return c.submitted(site.DemoSubmitted)
		},
	}
	addRequestFlags(cmd, &f)
	return cmd
}

func addRequestFlags(cmd *cobra.Command, f *site.RequestForm) {
	flags := cmd.Flags()
	flags.StringVar(&f.BuyerType, "buyer-type", site.BuyerIndividual, "individual or company")
	flags.StringVar(&f.ProductName, "product", "", "product name")
	flags.StringVar(&f.FullName, "name", "", "full name")
	flags.StringVar(&f.Email, "email", "", "email address")
	flags.StringVar(&f.PhoneNumber, "phone", "", "phone number")
	flags.StringVar(&f.Address, "address", "", "address")
	flags.StringVar(&f.Country, "country", "", "country")
	flags.StringVar(&f.State, "state", "", "state")
	flags.StringVar(&f.City, "city", "", "city")
	flags.StringVar(&f.Pincode, "pincode", "", "pincode")
	flags.StringVar(&f.Message, "message", "", "message")
	flags.StringVar(&f.CompanyName, "company", "", "company name (company buyers)")
	flags.StringVar(&f.AadharNumber, "aadhar", "", "Aadhar number (individual buyers)")
	flags.StringVar(&f.PanNumber, "pan", "", "PAN (optional)")
	flags.IntVar(&f.Quantity, "quantity", 1, "quantity")
}

func (c *CLI) newApplyCmd() *cobra.Command {
	var f site.ApplicationForm
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply for a job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.newSite().Apply(cmd.Context(), f); err != nil {
				return err
			}
			return c.submitted(site.ApplicationSubmitted)
		},
	}
	cmd.Flags().StringVar(&f.Name, "name", "", "your name")
	cmd.Flags().StringVar(&f.Email, "email", "", "email address")
	cmd.Flags().StringVar(&f.Position, "position", "", "position applied for")
	return cmd
}

func (c *CLI) newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Subscribe to the newsletter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.newSite().Subscribe(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.submitted(site.Subscribed)
		},
	}
}

func (c *CLI) submitted(message string) error {
	if c.jsonOutput {
		return c.outputJSON(map[string]string{"status": "submitted", "message": message})
	}
	c.printf("✓ %s\n", message)
	return nil
}
