package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"sitecms/backend/services/pricing-service/internal/pricing"
)

const (
	tiersSheet    = "Tiers"
	examplesSheet = "Examples"
)

// ExampleRevenues are the sample businesses listed on the pricing page.
var ExampleRevenues = []pricing.Revenue{
	{Garage: 750_000, Shop: 200_000, Mobile: 50_000},
	{Garage: 3_000_000, Shop: 1_000_000, Mobile: 500_000},
	{Garage: 12_000_000, Shop: 6_000_000, Mobile: 2_000_000},
	{Garage: 90_000_000, Shop: 80_000_000, Mobile: 24_000_000},
}

// ExportWorkbook writes the active tier table of family and the example calculations as xlsx.
func (s *PricingService) ExportWorkbook(ctx context.Context, family pricing.PlanFamily, w io.Writer) error {
	schedule, err := s.tiers.Schedule(ctx, family)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", tiersSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(examplesSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	tierHeaders := []interface{}{"Tier", "Revenue from (EUR)", "Garage %", "Shop %", "Mobile %"}
	if err := f.SetSheetRow(tiersSheet, "A1", &tierHeaders); err != nil {
		return err
	}
	for i, t := range schedule.Tiers {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{t.Number, t.Threshold, t.Rates.Garage, t.Rates.Shop, t.Rates.Mobile}
		if err := f.SetSheetRow(tiersSheet, cell, &row); err != nil {
			return err
		}
	}
	_ = f.SetCellStyle(tiersSheet, "A1", "E1", bold)
	_ = f.SetColWidth(tiersSheet, "A", "E", 18)

	exampleHeaders := []interface{}{
		"Garage", "Shop", "Mobile", "Total revenue", "Tier",
		"Cost (no contract)", "Cost (monthly)", "Cost (yearly)", "Effective rate %",
	}
	if err := f.SetSheetRow(examplesSheet, "A1", &exampleHeaders); err != nil {
		return err
	}
	for i, revenue := range ExampleRevenues {
		row := []interface{}{revenue.Garage, revenue.Shop, revenue.Mobile, revenue.Total()}
		var effective float64
		for _, contract := range []pricing.ContractType{pricing.ContractNone, pricing.ContractMonthly, pricing.ContractYearly} {
			result, err := pricing.Calculate(revenue, contract, schedule.Schedule, 1)
			if err != nil {
				return err
			}
			if contract == pricing.ContractNone {
				effective = result.EffectiveRate
				row = append(row, result.Tier)
			}
			row = append(row, result.Total)
		}
		row = append(row, effective)

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(examplesSheet, cell, &row); err != nil {
			return err
		}
	}
	_ = f.SetCellStyle(examplesSheet, "A1", "I1", bold)
	_ = f.SetColWidth(examplesSheet, "A", "I", 18)

	f.SetActiveSheet(0)
	return f.Write(w)
}
