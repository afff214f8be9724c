package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SheetReport  = "Report"
	SheetStreams = "Streams"
)

// WriteXLSX writes r as a two-sheet workbook: the sectioned balance on
// "Report" and the derived figures on "Streams". Amounts are written as
// numbers with a currency format so the sheet stays computable.
func WriteXLSX(w io.Writer, r Report, currencySymbol string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetReport); err != nil {
		return fmt.Errorf("naming report sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetStreams); err != nil {
		return fmt.Errorf("adding streams sheet: %w", err)
	}

	st, err := newStyles(f, currencySymbol)
	if err != nil {
		return err
	}
	if err := writeReportSheet(f, st, r); err != nil {
		return err
	}
	if err := writeStreamsSheet(f, st, r); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

type styles struct {
	title, header, bold, money, moneyBold, percent int
}

func newStyles(f *excelize.File, symbol string) (styles, error) {
	symbol = strings.ReplaceAll(symbol, `"`, ``)
	moneyFmt := `"` + symbol + `"#,##0.00;-"` + symbol + `"#,##0.00`

	var s styles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, fmt.Errorf("creating title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	}); err != nil {
		return s, fmt.Errorf("creating header style: %w", err)
	}
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("creating bold style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt}); err != nil {
		return s, fmt.Errorf("creating money style: %w", err)
	}
	if s.moneyBold, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt, Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("creating total style: %w", err)
	}
	if s.percent, err = f.NewStyle(&excelize.Style{NumFmt: 10}); err != nil {
		return s, fmt.Errorf("creating percent style: %w", err)
	}
	return s, nil
}

// sheetWriter appends rows to one sheet and remembers the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (sw *sheetWriter) cell(col int, value any, style int) {
	if sw.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, sw.row)
	if err != nil {
		sw.err = err
		return
	}
	if err := sw.f.SetCellValue(sw.sheet, name, value); err != nil {
		sw.err = fmt.Errorf("setting %s!%s: %w", sw.sheet, name, err)
		return
	}
	if style != 0 {
		if err := sw.f.SetCellStyle(sw.sheet, name, name, style); err != nil {
			sw.err = fmt.Errorf("styling %s!%s: %w", sw.sheet, name, err)
		}
	}
}

func (sw *sheetWriter) next() { sw.row++ }

func writeReportSheet(f *excelize.File, st styles, r Report) error {
	sw := &sheetWriter{f: f, sheet: SheetReport, row: 1}

	sw.cell(1, r.ProjectName, st.title)
	sw.cell(2, r.ShortID, 0)
	sw.next()
	sw.next()

	for _, sec := range r.Sections {
		sw.cell(1, sec.Title, st.header)
		sw.cell(2, "Projected", st.header)
		sw.cell(3, "Actual", st.header)
		sw.cell(4, "Note", st.header)
		sw.next()
		for _, row := range sec.Rows {
			labelStyle, moneyStyle := 0, st.money
			label := row.Label
			switch row.Kind {
			case RowCategory:
				labelStyle = st.bold
			case RowTotal:
				labelStyle, moneyStyle = st.bold, st.moneyBold
			default:
				label = "  " + label
			}
			sw.cell(1, label, labelStyle)
			sw.cell(2, row.Projected.InexactFloat64(), moneyStyle)
			if row.HasActual {
				sw.cell(3, row.Actual.InexactFloat64(), moneyStyle)
			}
			if row.Note != "" {
				sw.cell(4, row.Note, 0)
			}
			sw.next()
		}
		sw.next()
	}
	if sw.err != nil {
		return sw.err
	}
	if err := f.SetColWidth(SheetReport, "A", "A", 36); err != nil {
		return fmt.Errorf("sizing report columns: %w", err)
	}
	if err := f.SetColWidth(SheetReport, "B", "C", 16); err != nil {
		return fmt.Errorf("sizing report columns: %w", err)
	}
	return f.SetColWidth(SheetReport, "D", "D", 48)
}

func writeStreamsSheet(f *excelize.File, st styles, r Report) error {
	sw := &sheetWriter{f: f, sheet: SheetStreams, row: 1}

	sw.cell(1, SectionStreams, st.header)
	sw.cell(2, "Value", st.header)
	sw.next()
	for _, stat := range r.Streams {
		sw.cell(1, stat.Label, 0)
		switch stat.Kind {
		case StatCount:
			sw.cell(2, stat.Value.Round(0).IntPart(), 0)
		case StatPercent:
			sw.cell(2, stat.Value.InexactFloat64(), st.percent)
		default:
			sw.cell(2, stat.Value.InexactFloat64(), st.money)
		}
		sw.next()
	}
	if sw.err != nil {
		return sw.err
	}
	return f.SetColWidth(SheetStreams, "A", "A", 32)
}
