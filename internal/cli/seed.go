package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// seedCmd loads a small demo portfolio through the public API: one parent
// property, three units with different inheritance setups, and a rule of
// each category.
func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a demo property with units and adjustment rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cmd.Context())
		},
	}
	return cmd
}

func seed(ctx context.Context) error {
	var property struct {
		ID int64 `json:"ID"`
	}
	err := client.postJSON(ctx, "/api/v1/properties", map[string]any{
		"name":       "South Beach Suites",
		"nickname":   "SBS",
		"city":       "Miami Beach",
		"state":      "FL",
		"base_price": 250.0,
		"min_price":  150.0,
		"max_price":  500.0,
	}, &property)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	fmt.Printf("property %d created\n", property.ID)

	units := []map[string]any{
		{
			"name":                   "Ocean View Suite",
			"unit_type":              "suite",
			"inherit_parent_pricing": true,
			"price_modifier":         20.0,
			"price_modifier_type":    "percent",
		},
		{
			"name":                   "Garden Studio",
			"unit_type":              "studio",
			"inherit_parent_pricing": true,
			"price_modifier":         0.0,
			"price_modifier_type":    "percent",
		},
		{
			"name":                   "Budget Room",
			"unit_type":              "room",
			"inherit_parent_pricing": false,
			"custom_base_price":      120.0,
		},
	}
	unitsPath := fmt.Sprintf("/api/v1/properties/%d/units", property.ID)
	for _, unit := range units {
		var created struct {
			ID int64 `json:"ID"`
		}
		if err := client.postJSON(ctx, unitsPath, unit, &created); err != nil {
			return fmt.Errorf("create unit %v: %w", unit["name"], err)
		}
		fmt.Printf("unit %d created (%s)\n", created.ID, unit["name"])
	}

	year := time.Now().UTC().Year()
	rulesBase := fmt.Sprintf("/api/v1/properties/%d/rules", property.ID)

	err = client.postJSON(ctx, rulesBase+"/seasonal", map[string]any{
		"season_name":      "Summer Peak",
		"start_date":       fmt.Sprintf("%d-06-01", year),
		"end_date":         fmt.Sprintf("%d-08-31", year),
		"adjustment_type":  "percent",
		"adjustment_value": 30.0,
	}, nil)
	if err != nil {
		return fmt.Errorf("seasonal rule: %w", err)
	}

	// Monday-based weekdays: Friday=4, Saturday=5.
	weekends := []map[string]any{
		{"day_of_week": 4, "adjustment_type": "percent", "adjustment_value": 15.0},
		{"day_of_week": 5, "adjustment_type": "percent", "adjustment_value": 20.0},
	}
	for _, rule := range weekends {
		if err := client.putJSON(ctx, rulesBase+"/day-of-week", rule, nil); err != nil {
			return fmt.Errorf("day-of-week rule: %w", err)
		}
	}

	err = client.postJSON(ctx, rulesBase+"/last-minute", map[string]any{
		"days_before_checkin": 3,
		"discount_percent":    10.0,
	}, nil)
	if err != nil {
		return fmt.Errorf("last-minute rule: %w", err)
	}

	err = client.postJSON(ctx, rulesBase+"/orphan-gap", map[string]any{
		"gap_nights":       1,
		"discount_percent": 15.0,
	}, nil)
	if err != nil {
		return fmt.Errorf("orphan-gap rule: %w", err)
	}

	fmt.Println("rules created: seasonal, day-of-week x2, last-minute, orphan-gap")
	return nil
}
