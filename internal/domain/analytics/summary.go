package analytics

import (
	"casita/internal/domain/pricing"
	"casita/internal/domain/shared/money"
)

// YearlySummary condenses a year of nightly quotes into portfolio-level
// price statistics, with per-month averages keyed YYYY-MM.
type YearlySummary struct {
	Year            int                `json:"year"`
	TotalDays       int                `json:"total_days"`
	AvgPrice        float64            `json:"avg_price"`
	MinPrice        float64            `json:"min_price"`
	MaxPrice        float64            `json:"max_price"`
	MonthlyAverages map[string]float64 `json:"monthly_averages"`
}

// Summarize reduces a quote calendar to its yearly summary. An empty
// calendar (year fully in the past) yields a zero summary.
func Summarize(year int, calendar []pricing.Quote) YearlySummary {
	summary := YearlySummary{Year: year, MonthlyAverages: map[string]float64{}}
	if len(calendar) == 0 {
		return summary
	}

	var (
		sum     float64
		min     = calendar[0].FinalPrice
		max     = calendar[0].FinalPrice
		byMonth = map[string][]float64{}
	)
	for _, quote := range calendar {
		price := quote.FinalPrice
		sum += price
		if price < min {
			min = price
		}
		if price > max {
			max = price
		}
		month := quote.DateString()[:7]
		byMonth[month] = append(byMonth[month], price)
	}

	summary.TotalDays = len(calendar)
	summary.AvgPrice = money.Round2(sum / float64(len(calendar)))
	summary.MinPrice = money.Round2(min)
	summary.MaxPrice = money.Round2(max)
	for month, prices := range byMonth {
		total := 0.0
		for _, p := range prices {
			total += p
		}
		summary.MonthlyAverages[month] = money.Round2(total / float64(len(prices)))
	}
	return summary
}
