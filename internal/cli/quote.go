package cli

import (
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type quoteOutput struct {
	UnitID        int64              `json:"unit_id"`
	Date          string             `json:"date"`
	BasePrice     float64            `json:"base_price"`
	Adjustments   map[string]float64 `json:"adjustments"`
	AdjustedPrice float64            `json:"adjusted_price"`
	FinalPrice    float64            `json:"final_price"`
	PriceSource   string             `json:"price_source"`
}

func quoteCmd() *cobra.Command {
	var unitID int64
	var date string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price one unit-night with its full adjustment breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			if unitID <= 0 {
				return fmt.Errorf("--unit is required")
			}
			if date == "" {
				return fmt.Errorf("--date is required (YYYY-MM-DD)")
			}

			var quote quoteOutput
			query := url.Values{"date": {date}}
			path := fmt.Sprintf("/api/v1/units/%d/quote", unitID)
			if err := client.getJSON(cmd.Context(), path, query, &quote); err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(quote)
			}
			return renderQuote(quote)
		},
	}

	cmd.Flags().Int64Var(&unitID, "unit", 0, "Unit ID")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	return cmd
}

func renderQuote(quote quoteOutput) error {
	fmt.Printf("Unit %d on %s (%s)\n", quote.UnitID, quote.Date, quote.PriceSource)

	writer := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
	fmt.Fprintf(writer, "base\t%.2f\n", quote.BasePrice)
	for _, category := range []string{"seasonal", "day_of_week", "last_minute", "orphan_day"} {
		if amount, ok := quote.Adjustments[category]; ok && amount != 0 {
			fmt.Fprintf(writer, "%s\t%+.2f\n", category, amount)
		}
	}
	fmt.Fprintf(writer, "adjusted\t%.2f\n", quote.AdjustedPrice)
	fmt.Fprintf(writer, "final\t%.2f\n", quote.FinalPrice)
	return writer.Flush()
}
