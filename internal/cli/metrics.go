package cli

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type metricsOutput struct {
	PropertyID    int64   `json:"property_id"`
	Date          string  `json:"date"`
	TotalUnits    int     `json:"total_units"`
	OccupiedUnits int     `json:"occupied_units"`
	OccupancyRate float64 `json:"occupancy_rate"`
	DailyRevenue  float64 `json:"daily_revenue"`
	ADR           float64 `json:"adr"`
	RevPAR        float64 `json:"revpar"`
}

type forecastOutput struct {
	PropertyID int64           `json:"property_id"`
	Forecast   []metricsOutput `json:"forecast"`
}

type summaryOutput struct {
	Year            int                `json:"year"`
	TotalDays       int                `json:"total_days"`
	AvgPrice        float64            `json:"avg_price"`
	MinPrice        float64            `json:"min_price"`
	MaxPrice        float64            `json:"max_price"`
	MonthlyAverages map[string]float64 `json:"monthly_averages"`
}

func metricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Occupancy and revenue analytics",
	}
	cmd.AddCommand(metricsDailyCmd())
	cmd.AddCommand(metricsForecastCmd())
	cmd.AddCommand(metricsSummaryCmd())
	return cmd
}

func metricsDailyCmd() *cobra.Command {
	var propertyID int64
	var date string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Single-day occupancy, ADR and RevPAR",
		RunE: func(cmd *cobra.Command, args []string) error {
			if propertyID <= 0 {
				return fmt.Errorf("--property is required")
			}
			query := url.Values{}
			if date != "" {
				query.Set("date", date)
			}
			var metrics metricsOutput
			path := fmt.Sprintf("/api/v1/properties/%d/metrics/daily", propertyID)
			if err := client.getJSON(cmd.Context(), path, query, &metrics); err != nil {
				return err
			}
			if outputJSON {
				return writeJSON(metrics)
			}
			fmt.Printf("Property %d on %s\n", metrics.PropertyID, metrics.Date)
			fmt.Printf("occupancy  %d/%d (%.2f%%)\n", metrics.OccupiedUnits, metrics.TotalUnits, metrics.OccupancyRate)
			fmt.Printf("revenue    %.2f\n", metrics.DailyRevenue)
			fmt.Printf("ADR        %.2f\n", metrics.ADR)
			fmt.Printf("RevPAR     %.2f\n", metrics.RevPAR)
			return nil
		},
	}

	cmd.Flags().Int64Var(&propertyID, "property", 0, "Property ID")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), defaults to today")
	return cmd
}

func metricsForecastCmd() *cobra.Command {
	var propertyID int64
	var days int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Per-day metrics over a future horizon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if propertyID <= 0 {
				return fmt.Errorf("--property is required")
			}
			query := url.Values{}
			if days > 0 {
				query.Set("days", strconv.Itoa(days))
			}
			var forecast forecastOutput
			path := fmt.Sprintf("/api/v1/properties/%d/metrics/forecast", propertyID)
			if err := client.getJSON(cmd.Context(), path, query, &forecast); err != nil {
				return err
			}
			if outputJSON {
				return writeJSON(forecast)
			}

			writer := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
			fmt.Fprintln(writer, "DATE\tOCC%\tREVENUE\tADR\tREVPAR")
			for _, m := range forecast.Forecast {
				fmt.Fprintf(writer, "%s\t%.1f\t%.2f\t%.2f\t%.2f\n", m.Date, m.OccupancyRate, m.DailyRevenue, m.ADR, m.RevPAR)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().Int64Var(&propertyID, "property", 0, "Property ID")
	cmd.Flags().IntVar(&days, "days", 30, "Forecast horizon in days")
	return cmd
}

func metricsSummaryCmd() *cobra.Command {
	var propertyID int64
	var year int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Yearly price statistics with monthly averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if propertyID <= 0 {
				return fmt.Errorf("--property is required")
			}
			query := url.Values{}
			if year != 0 {
				query.Set("year", strconv.Itoa(year))
			}
			var summary summaryOutput
			path := fmt.Sprintf("/api/v1/properties/%d/metrics/summary", propertyID)
			if err := client.getJSON(cmd.Context(), path, query, &summary); err != nil {
				return err
			}
			if outputJSON {
				return writeJSON(summary)
			}

			fmt.Printf("Year %d (%d priced days)\n", summary.Year, summary.TotalDays)
			fmt.Printf("avg %.2f  min %.2f  max %.2f\n", summary.AvgPrice, summary.MinPrice, summary.MaxPrice)

			months := make([]string, 0, len(summary.MonthlyAverages))
			for month := range summary.MonthlyAverages {
				months = append(months, month)
			}
			sort.Strings(months)
			writer := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
			fmt.Fprintln(writer, "MONTH\tAVG")
			for _, month := range months {
				fmt.Fprintf(writer, "%s\t%.2f\n", month, summary.MonthlyAverages[month])
			}
			return writer.Flush()
		},
	}

	cmd.Flags().Int64Var(&propertyID, "property", 0, "Property ID")
	cmd.Flags().IntVar(&year, "year", 0, "Year, defaults to the current year")
	return cmd
}
