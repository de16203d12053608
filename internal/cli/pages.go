package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voltrak-labs/showroom/internal/site"
	"github.com/voltrak-labs/showroom/internal/tco"
)

func (c *CLI) newSite() *site.Site {
	return site.New(c.newClient())
}

func (c *CLI) newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := c.newSite().Products(cmd.Context())
			if err != nil {
				return err
			}
			return c.printList(products, "products")
		},
	}
}

func (c *CLI) newProductCmd() *cobra.Command {
	in := tco.DefaultInputs()

	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product page",
		Long: `Show a product with its specifications, two related products and the
running cost comparison.

--hours snaps to the calculator slider: 500 to 3000 in steps of 500.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			in.AnnualHours = tco.SnapHours(in.AnnualHours)
			return c.runProduct(cmd.Context(), productID, in)
		},
	}

	addTCOFlags(cmd, &in)
	return cmd
}

func (c *CLI) runProduct(ctx context.Context, productID int64, in tco.Inputs) error {
	page, err := c.newSite().ProductDetail(ctx, productID, in)
	if err != nil {
		return err
	}
	if c.jsonOutput {
		return c.outputJSON(page)
	}

	p := page.Product
	c.printf("%s\n", p.Name)
	if p.Tagline != "" {
		c.printf("%s\n", p.Tagline)
	}
	if p.Price != "" {
		c.printf("Price: %s\n", p.Price)
	}
	if p.Category != "" {
		c.printf("Category: %s\n", p.Category)
	}
	if p.Description != "" {
		c.printf("\n%s\n", p.Description)
	}
	if p.FeaturesText != "" {
		c.printf("\nFeatures:\n  %s\n", p.FeaturesText)
	}
	if len(p.Specifications) > 0 && !c.quiet {
		c.println("\nSpecifications:")
		renderSpecifications(c.out, p.Specifications)
	}

	c.println("\nRunning cost:")
	c.printTCO(in, page.TCO)
	if p.TCOSavingsText != "" {
		c.printf("  %s\n", p.TCOSavingsText)
	}

	if len(page.Related) > 0 {
		c.println("\nYou may also like:")
		for _, r := range page.Related {
			c.printf("  [%s] %s\n", id(r.ID), r.Name)
		}
	}
	return nil
}

func (c *CLI) newBlogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blogs",
		Short: "List blog posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			blogs, err := c.newSite().Blogs(cmd.Context())
			if err != nil {
				return err
			}
			return c.printList(blogs, "blog posts")
		},
	}
}

func (c *CLI) newBlogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blog <id>",
		Short: "Show a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blogID, err := parseID(args[0])
			if err != nil {
				return err
			}
			page, err := c.newSite().BlogDetail(cmd.Context(), blogID)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.outputJSON(page)
			}

			b := page.Blog
			c.printf("%s\n", b.Title)
			if b.Author != "" || b.PublicationDate != "" {
				c.printf("%s  %s  %s\n", b.Author, b.PublicationDate, b.ReadingTime)
			}
			if b.Description != "" {
				c.printf("\n%s\n", b.Description)
			}
			if b.Content != "" {
				c.printf("\n%s\n", b.Content)
			}
			if len(page.Related) > 0 {
				c.println("\nRelated posts:")
				for _, r := range page.Related {
					c.printf("  [%s] %s\n", id(r.ID), r.Title)
				}
			}
			return nil
		},
	}
}

func (c *CLI) newQnACmd() *cobra.Command {
	var expand []int64

	cmd := &cobra.Command{
		Use:   "qna",
		Short: "Show the FAQ",
		Long: `Show the FAQ. Answers are collapsed; --expand opens entries by id.
Entries open and close independently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.newSite().QnA(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.outputJSON(items)
			}
			if len(items) == 0 {
				c.println("No questions yet")
				return nil
			}

			var acc site.Accordion
			for _, e := range expand {
				acc.Toggle(e)
			}
			for _, q := range items {
				if q.ID != nil && acc.Expanded(*q.ID) {
					c.printf("▾ [%d] %s\n    %s\n", *q.ID, q.Question, q.Answer)
				} else {
					c.printf("▸ [%s] %s\n", id(q.ID), q.Question)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64SliceVar(&expand, "expand", nil, "ids to expand (repeat an id to collapse it again)")
	return cmd
}

func (c *CLI) newGalleryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gallery",
		Short: "Show awards and media coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := c.newSite().Gallery(cmd.Context())
			if c.jsonOutput {
				return c.outputJSON(g)
			}

			c.println("Awards")
			switch {
			case g.AwardsError != "":
				c.printf("  Error: %s\n", g.AwardsError)
			case len(g.Awards) == 0:
				c.println("  None")
			default:
				for _, a := range g.Awards {
					c.printf("  %s\n", a.ImageURL)
				}
			}

			c.println("Media")
			switch {
			case g.MediaError != "":
				c.printf("  Error: %s\n", g.MediaError)
			case len(g.Media) == 0:
				c.println("  None")
			default:
				for _, m := range g.Media {
					c.printf("  %s\n", m.URL)
				}
			}
			return nil
		},
	}
}

func (c *CLI) newTCOCmd() *cobra.Command {
	in := tco.DefaultInputs()
	var snap bool

	cmd := &cobra.Command{
		Use:   "tco",
		Short: "Compare diesel and electric running costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if snap {
				in.AnnualHours = tco.SnapHours(in.AnnualHours)
			}
			result := tco.Calculate(in)
			if c.jsonOutput {
				return c.outputJSON(map[string]interface{}{
					"inputs": in,
					"result": result,
				})
			}
			c.printTCO(in, result)
			return nil
		},
	}

	addTCOFlags(cmd, &in)
	cmd.Flags().BoolVar(&snap, "snap", false, "snap --hours to the slider range and step")
	return cmd
}

func addTCOFlags(cmd *cobra.Command, in *tco.Inputs) {
	cmd.Flags().Float64Var(&in.AnnualHours, "hours", in.AnnualHours, "annual operating hours")
	cmd.Flags().Float64Var(&in.DieselCostPerHour, "diesel", in.DieselCostPerHour, "diesel cost per hour")
	cmd.Flags().Float64Var(&in.ElectricityCostPerHour, "electricity", in.ElectricityCostPerHour, "electricity cost per hour")
}

func (c *CLI) printTCO(in tco.Inputs, r tco.Result) {
	c.printf("  Annual hours:            %s\n", money(in.AnnualHours))
	c.printf("  Diesel annual cost:      ₹%s\n", money(r.DieselAnnualCost))
	c.printf("  Electricity annual cost: ₹%s\n", money(r.ElectricityAnnualCost))
	c.printf("  Annual savings:          ₹%s\n", money(r.AnnualSavings))
	c.printf("  %d-year savings:          ₹%s\n", tco.Years, money(r.SevenYearSavings))
}

// printList renders a page list, or its JSON with --json.
func (c *CLI) printList(items interface{}, noun string) error {
	if c.jsonOutput {
		return c.outputJSON(items)
	}
	if listLen(items) == 0 {
		c.printf("No %s\n", noun)
		return nil
	}
	if !c.quiet {
		renderList(c.out, items)
	}
	return nil
}

// money formats v with thousands separators and no decimals when whole.
func money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	if v != float64(int64(v)) {
		s = fmt.Sprintf("%.2f", v)
	}

	intPart, frac := s, ""
	for i, r := range s {
		if r == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	var out []byte
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i])
	}
	if neg {
		return "-" + string(out) + frac
	}
	return string(out) + frac
}
