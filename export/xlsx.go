// Package export renders pricing results as spreadsheets for the back office.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pdv-pricing/domain"
	"pdv-pricing/service"
)

const (
	SimulationSheet = "Simulacao"
	AdjustmentSheet = "Reajuste"

	brlFormat = `"R$" #,##0.00`
)

// SimulationWorkbook lays out one row per installment count. The caller must Close the file.
func SimulationWorkbook(result domain.SimulationResult) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDocProps(&excelize.DocProperties{
		Creator: "pdv-pricing",
		Title:   "Simulacao de parcelamento",
	})

	if err := f.SetSheetName("Sheet1", SimulationSheet); err != nil {
		f.Close()
		return nil, err
	}

	rows := [][]any{
		{"Valor", "R$ " + service.FormatAmountForDisplay(result.Amount)},
		{"Com juros", result.WithInterest},
		{"Tabela", result.ScheduleVersion},
		{},
		{"Parcelas", "Juros (%)", "Valor da parcela", "Total", "Acrescimo"},
	}
	for _, p := range result.Plans {
		rows = append(rows, []any{p.Installments, p.EffectiveInterestRate, p.PerInstallmentValue, p.TotalPayable, p.SurchargeAmount})
	}

	if err := writeRows(f, SimulationSheet, rows); err != nil {
		f.Close()
		return nil, err
	}

	header := len(rows) - len(result.Plans)
	if len(result.Plans) > 0 {
		if err := applyMoneyStyle(f, SimulationSheet, fmt.Sprintf("C%d", header+1), fmt.Sprintf("E%d", len(rows))); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// AdjustmentWorkbook lists the old and new prices of a bulk adjustment batch.
func AdjustmentWorkbook(batch domain.AdjustmentBatch) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDocProps(&excelize.DocProperties{
		Creator: "pdv-pricing",
		Title:   "Reajuste de precos " + batch.ID,
	})

	if err := f.SetSheetName("Sheet1", AdjustmentSheet); err != nil {
		f.Close()
		return nil, err
	}

	rows := [][]any{
		{"Lote", batch.ID},
		{"Modo", string(batch.Mode)},
		{"Valor", service.FormatAmountForDisplay(batch.Magnitude)},
		{"Simulacao", batch.DryRun},
		{},
		{"SKU", "Produto", "Custo anterior", "Custo novo", "Venda anterior", "Venda nova"},
	}
	for _, c := range batch.Changes {
		rows = append(rows, []any{c.SKU, c.Name, c.OldCostPrice, c.NewCostPrice, c.OldSalePrice, c.NewSalePrice})
	}

	if err := writeRows(f, AdjustmentSheet, rows); err != nil {
		f.Close()
		return nil, err
	}

	if len(batch.Changes) > 0 {
		first := len(rows) - len(batch.Changes) + 1
		if err := applyMoneyStyle(f, AdjustmentSheet, fmt.Sprintf("C%d", first), fmt.Sprintf("F%d", len(rows))); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := f.SetColWidth(AdjustmentSheet, "B", "B", 32); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return nil
}

func applyMoneyStyle(f *excelize.File, sheet, from, to string) error {
	format := brlFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}
