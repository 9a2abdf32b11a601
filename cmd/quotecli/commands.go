package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/Simplici0/blindquote/internal/bands"
	"github.com/Simplici0/blindquote/internal/pricing"
	"github.com/Simplici0/blindquote/internal/quote"
)

var (
	labelColor = color.New(color.Bold)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quotecli",
		Short:         "Price roller, roman and vertical blinds from the band tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPriceCmd(), newBandsCmd(), newTotalsCmd(), newProductsCmd())
	return root
}

type measureFlags struct {
	group string
	width string
	drop  string
}

func (f *measureFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.group, "group", "g", "", "fabric group (1-4)")
	cmd.Flags().StringVarP(&f.width, "width", "w", "", "width in mm")
	cmd.Flags().StringVarP(&f.drop, "drop", "d", "", "drop in mm")
	_ = cmd.MarkFlagRequired("group")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("drop")
}

func (f *measureFlags) parse() (bands.Group, float64, float64, error) {
	group, ok := bands.ParseGroup(f.group)
	if !ok {
		return 0, 0, 0, pricing.ErrInvalidGroup
	}
	width, err := cast.ToFloat64E(strings.TrimSpace(f.width))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse width %q: %w", f.width, pricing.ErrInvalidMeasurement)
	}
	drop, err := cast.ToFloat64E(strings.TrimSpace(f.drop))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse drop %q: %w", f.drop, pricing.ErrInvalidMeasurement)
	}
	return group, width, drop, nil
}

func newPriceCmd() *cobra.Command {
	var flags measureFlags
	var quantity string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Show the unit and line price for one blind",
		RunE: func(cmd *cobra.Command, args []string) error {
			group, width, drop, err := flags.parse()
			if err != nil {
				return err
			}

			q := pricing.Price(width, drop, group)
			out := cmd.OutOrStdout()
			if !q.OK() {
				warnColor.Fprintf(out, "no price: %v\n", q.Err())
				return q.Err()
			}

			qty := quote.CoerceQuantity(quantity)
			fmt.Fprintf(out, "%s %d x %d mm (group %s)\n", labelColor.Sprint("Bands:"), q.WidthBand, q.DropBand, group)
			fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("Unit:"), pricing.FormatAUD(q.UnitPrice))
			fmt.Fprintf(out, "%s %d\n", labelColor.Sprint("Quantity:"), qty)
			fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("Total:"), okColor.Sprint(pricing.FormatAUD(pricing.ItemTotal(q.UnitPrice, qty))))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "1", "number of blinds")
	return cmd
}

func newBandsCmd() *cobra.Command {
	var flags measureFlags

	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Show the width and drop bands a measurement rounds up to",
		RunE: func(cmd *cobra.Command, args []string) error {
			group, width, drop, err := flags.parse()
			if err != nil {
				return err
			}

			b := pricing.ResolveBands(width, drop, group)
			if !b.Resolved() {
				return pricing.ErrInvalidMeasurement
			}
			fmt.Fprintf(cmd.OutOrStdout(), "width %v -> %d\ndrop %v -> %d\n", width, b.WidthBand, drop, b.DropBand)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals AMOUNT...",
		Short: "Roll line totals up into GST, total, deposit and balance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := make([]pricing.Amount, 0, len(args))
			for _, arg := range args {
				v, err := cast.ToFloat64E(arg)
				if err != nil {
					return fmt.Errorf("parse amount %q: %w", arg, err)
				}
				lines = append(lines, pricing.Amount(v))
			}

			t := pricing.ComputeTotals(lines)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "Subtotal:\t%s\t\n", pricing.FormatAUD(t.Subtotal))
			fmt.Fprintf(tw, "GST:\t%s\t\n", pricing.FormatAUD(t.GST))
			fmt.Fprintf(tw, "Total:\t%s\t\n", pricing.FormatAUD(t.Total))
			fmt.Fprintf(tw, "Deposit:\t%s\t\n", pricing.FormatAUD(t.Deposit))
			fmt.Fprintf(tw, "Balance:\t%s\t\n", pricing.FormatAUD(t.Balance))
			return tw.Flush()
		},
	}
}

func newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List products with their categories and fabric groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range bands.Products() {
				groups := make([]string, len(p.Groups))
				for i, g := range p.Groups {
					groups[i] = g.String()
				}
				fmt.Fprintf(out, "%s\n  categories: %s\n  groups: %s\n",
					labelColor.Sprint(p.Name), strings.Join(p.Categories, ", "), strings.Join(groups, ", "))
			}
			return nil
		},
	}
}
