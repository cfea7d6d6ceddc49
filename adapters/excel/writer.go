package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"gohappy/domain/happiness"
	"gohappy/internal/analysis"

	"github.com/xuri/excelize/v2"
)

// CleanedHeaders returns the column layout of the cleaned dataset
func CleanedHeaders() []string {
	headers := []string{"country_name", "country_code_iso", "region", "year"}
	for _, f := range happiness.AllFeatures() {
		headers = append(headers, f.Key())
	}
	for _, f := range happiness.AllFeatures() {
		headers = append(headers, f.Key()+"_rank")
	}
	return append(headers, "total_number_of_ranks")
}

// WriteCleanedCSV writes every record with its codes and per-year ranks
func WriteCleanedCSV(w io.Writer, ds *happiness.Dataset) error {
	out := csv.NewWriter(w)
	if err := out.Write(CleanedHeaders()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range ds.Records() {
		row := []string{rec.CountryName, rec.CountryCode, rec.Region, strconv.Itoa(rec.Year)}
		for _, f := range happiness.AllFeatures() {
			row = append(row, formatValue(rec.Value(f)))
		}
		total := 0
		for _, f := range happiness.AllFeatures() {
			rank, _ := ds.Rank(rec.CountryName, rec.Year, f)
			total = rank.Total
			if rank.Ranked() {
				row = append(row, strconv.Itoa(rank.Position))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, strconv.Itoa(total))
		if err := out.Write(row); err != nil {
			return fmt.Errorf("failed to write %s %d: %w", rec.CountryName, rec.Year, err)
		}
	}

	out.Flush()
	return out.Error()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Sheet names used by WriteWorkbook
const (
	RecordsSheet     = "Records"
	CorrelationSheet = "Correlation"
)

// WriteWorkbook exports records (all, or one country's) and, for a country,
// its feature correlation matrix rounded to two decimals.
func WriteWorkbook(w io.Writer, ds *happiness.Dataset, country string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RecordsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	records := ds.Records()
	if country != "" {
		records = ds.ForCountry(country)
	}

	header := []interface{}{"Country", "Code", "Region", "Year"}
	for _, feat := range happiness.AllFeatures() {
		header = append(header, feat.Label())
	}
	if err := f.SetSheetRow(RecordsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		row := []interface{}{rec.CountryName, rec.CountryCode, rec.Region, rec.Year}
		for _, feat := range happiness.AllFeatures() {
			v := rec.Value(feat)
			if math.IsNaN(v) {
				row = append(row, nil)
			} else {
				row = append(row, v)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(RecordsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if country != "" && len(records) > 0 {
		if err := writeCorrelationSheet(f, ds, country); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeCorrelationSheet(f *excelize.File, ds *happiness.Dataset, country string) error {
	if _, err := f.NewSheet(CorrelationSheet); err != nil {
		return fmt.Errorf("failed to create correlation sheet: %w", err)
	}

	features := happiness.AllFeatures()
	columns := make([][]float64, len(features))
	for i, feat := range features {
		columns[i] = ds.Series(country, feat)
	}
	matrix := analysis.RoundMatrix(analysis.CorrelationMatrix(columns), 2)

	header := []interface{}{country}
	for _, feat := range features {
		header = append(header, feat.Label())
	}
	if err := f.SetSheetRow(CorrelationSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write correlation header: %w", err)
	}

	for i, feat := range features {
		row := []interface{}{feat.Label()}
		for _, v := range matrix[i] {
			if math.IsNaN(v) {
				row = append(row, nil)
			} else {
				row = append(row, v)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(CorrelationSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write correlation row %d: %w", i+2, err)
		}
	}
	return nil
}

// ExportWorkbook writes the workbook to a file
func ExportWorkbook(path string, ds *happiness.Dataset, country string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteWorkbook(file, ds, country); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
