package cli

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type calendarOutput struct {
	UnitID   int64         `json:"unit_id"`
	Calendar []quoteOutput `json:"calendar"`
}

func calendarCmd() *cobra.Command {
	var unitID int64
	var start, end string
	var days, month, year int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Generate a pricing calendar for a unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if unitID <= 0 {
				return fmt.Errorf("--unit is required")
			}
			if month != 0 && (month < 1 || month > 12) {
				return fmt.Errorf("--month must be in 1..12")
			}

			query := url.Values{}
			path := fmt.Sprintf("/api/v1/units/%d/calendar", unitID)
			switch {
			case month != 0:
				path += "/month"
				query.Set("month", strconv.Itoa(month))
				if year != 0 {
					query.Set("year", strconv.Itoa(year))
				}
			case year != 0:
				path += "/year"
				query.Set("year", strconv.Itoa(year))
			default:
				if start != "" {
					query.Set("start", start)
				}
				if end != "" {
					query.Set("end", end)
				}
				if days > 0 {
					query.Set("days", strconv.Itoa(days))
				}
			}

			var calendar calendarOutput
			if err := client.getJSON(cmd.Context(), path, query, &calendar); err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(calendar)
			}
			return renderCalendar(calendar)
		},
	}

	cmd.Flags().Int64Var(&unitID, "unit", 0, "Unit ID")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date inclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days from start")
	cmd.Flags().IntVar(&month, "month", 0, "Calendar month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "Calendar year")
	return cmd
}

func renderCalendar(calendar calendarOutput) error {
	if len(calendar.Calendar) == 0 {
		fmt.Printf("Unit %d: no priceable days in range.\n", calendar.UnitID)
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
	fmt.Fprintln(writer, "DATE\tBASE\tSEASONAL\tDOW\tLASTMIN\tORPHAN\tFINAL")
	for _, quote := range calendar.Calendar {
		fmt.Fprintf(writer, "%s\t%.2f\t%+.2f\t%+.2f\t%+.2f\t%+.2f\t%.2f\n",
			quote.Date,
			quote.BasePrice,
			quote.Adjustments["seasonal"],
			quote.Adjustments["day_of_week"],
			quote.Adjustments["last_minute"],
			quote.Adjustments["orphan_day"],
			quote.FinalPrice,
		)
	}
	return writer.Flush()
}
