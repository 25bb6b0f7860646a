package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/retail-sales/internal/browse"
	"github.com/Veraticus/retail-sales/internal/cli"
	"github.com/Veraticus/retail-sales/internal/common"
	"github.com/Veraticus/retail-sales/internal/model"
	"github.com/Veraticus/retail-sales/internal/query"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type listOptions struct {
	search     string
	regions    []string
	genders    []string
	categories []string
	tags       []string
	payments   []string
	ageMin     string
	ageMax     string
	from       string
	to         string
	sort       string
	page       int
}

func listCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of sales records",
		Long: `Run a search once and print a single page of results.

Categorical filters may be repeated or comma separated; a record matches
when its value is any of the given values. Age and date bounds are
inclusive, and a blank or malformed bound is ignored.`,
		Example: `  sales list --search "john" --region North,South --sort quantity-desc
  sales list --age-min 25 --age-max 40 --from 2024-03-01 --page 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "case-insensitive match on customer name or phone number")
	cmd.Flags().StringSliceVar(&opts.regions, "region", nil, "customer region")
	cmd.Flags().StringSliceVar(&opts.genders, "gender", nil, "customer gender")
	cmd.Flags().StringSliceVar(&opts.categories, "category", nil, "product category")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "product tag")
	cmd.Flags().StringSliceVar(&opts.payments, "payment", nil, "payment method")
	cmd.Flags().StringVar(&opts.ageMin, "age-min", "", "minimum customer age")
	cmd.Flags().StringVar(&opts.ageMax, "age-max", "", "maximum customer age")
	cmd.Flags().StringVar(&opts.from, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "last date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.sort, "sort", string(query.DefaultSortKey), "sort order ("+sortKeyList()+")")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")

	return cmd
}

func runList(cmd *cobra.Command, opts *listOptions) error {
	sortKey, err := query.ParseSortKey(opts.sort)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("unknown sort order %q, expected one of %s", opts.sort, sortKeyList()), err)
	}

	b, err := loadBrowser(cmd.Context())
	if err != nil {
		return err
	}

	b.SetCriteria(query.Criteria{
		Regions:        opts.regions,
		Genders:        opts.genders,
		Categories:     opts.categories,
		Tags:           opts.tags,
		PaymentMethods: opts.payments,
	})
	b.SetSearch(opts.search)
	b.SetAgeMin(opts.ageMin)
	b.SetAgeMax(opts.ageMax)
	b.SetDateStart(opts.from)
	b.SetDateEnd(opts.to)
	b.SetSortKey(sortKey)
	b.SetPage(opts.page)

	return writeResult(cmd.OutOrStdout(), b.Result())
}

// writeResult prints the summary line, the page rows (or the empty-state
// message) and the page label.
func writeResult(w io.Writer, res browse.Result) error {
	header := []string{res.Summary()}
	if res.ActiveCount > 0 {
		header = append(header, fmt.Sprintf("Filters: %d active", res.ActiveCount))
	}
	header = append(header, "Sort: "+res.SortKey.Label())
	if _, err := fmt.Fprintln(w, strings.Join(header, "  |  ")); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if res.Empty() {
		if _, err := fmt.Fprintln(w, cli.FormatInfo(browse.EmptyMessage)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("Date", "Customer", "Phone", "Gender", "Age", "Region", "Category", "Tag", "Qty", "Final", "Payment")
		for _, r := range res.Rows() {
			if err := table.Append(recordRow(r)); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w, cli.FormatSubtle(res.PageLabel())); err != nil {
		return fmt.Errorf("failed to write page label: %w", err)
	}
	return nil
}

func recordRow(r model.SalesRecord) []string {
	return []string{
		r.DateString(),
		r.CustomerName,
		r.PhoneNumber,
		r.Gender,
		strconv.Itoa(r.Age),
		r.CustomerRegion,
		r.ProductCategory,
		r.Tag,
		strconv.Itoa(r.Quantity),
		fmt.Sprintf("%.2f", r.FinalAmount),
		r.PaymentMethod,
	}
}

func sortKeyList() string {
	keys := query.SortKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
