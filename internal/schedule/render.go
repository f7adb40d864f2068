package schedule

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ka-tamaki/work-scheduler/internal/holidays"
)

// Renderer turns planned tables into an output document
type Renderer interface {
	Render(title string, tables []MonthTable, factory holidays.Factory) error
}

// document is the JSON form of a planned schedule
type document struct {
	Heading string          `json:"heading"`
	Factory string          `json:"factory"`
	Created string          `json:"created"`
	Layout  *Layout         `json:"layout,omitempty"`
	Tables  []documentTable `json:"tables"`
}

type documentTable struct {
	MonthTable
	ItemRows []int    `json:"item_rows"`
	Formulas []string `json:"remaining_formulas"`
}

// JSONRenderer writes the table descriptors with their row numbers and formulas
type JSONRenderer struct {
	w   io.Writer
	now func() time.Time
}

// NewJSONRenderer creates a renderer writing indented JSON to w
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{w: w, now: time.Now}
}

// Render implements Renderer
func (r *JSONRenderer) Render(title string, tables []MonthTable, factory holidays.Factory) error {
	doc := document{
		Heading: Heading(title),
		Factory: string(factory),
		Created: r.now().Format("2006/01/02"),
		Tables:  make([]documentTable, 0, len(tables)),
	}
	if len(tables) > 0 {
		layout := tables[0].layout
		doc.Layout = &layout
	}

	for _, t := range tables {
		rows := t.ItemRows()
		formulas := make([]string, 0, len(rows))
		for _, row := range rows {
			formula, err := t.RemainingFormula(row - t.StartRow)
			if err != nil {
				return fmt.Errorf("failed to build formula for %04d-%02d row %d: %w", t.Year, t.Month, row, err)
			}
			formulas = append(formulas, formula)
		}
		doc.Tables = append(doc.Tables, documentTable{
			MonthTable: t,
			ItemRows:   rows,
			Formulas:   formulas,
		})
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	return nil
}

// TextRenderer prints a console preview of each month with holiday markers
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer creates a renderer writing plain text to w
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Render implements Renderer
func (r *TextRenderer) Render(title string, tables []MonthTable, factory holidays.Factory) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s [%s]\n", Heading(title), factory)
	for _, t := range tables {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s  (row %d", t.EraLabel, t.StartRow)
		if t.Carry != nil {
			fmt.Fprintf(&b, ", carries from row %d", t.Carry.PreviousStartRow)
		}
		b.WriteString(")\n")

		for _, d := range t.Days {
			fmt.Fprintf(&b, "%3d", d.Number)
		}
		b.WriteString("\n")
		for _, d := range t.Days {
			// weekday tokens are full width
			fmt.Fprintf(&b, " %s", d.Weekday)
		}
		b.WriteString("\n")
		for _, d := range t.Days {
			if d.Holiday {
				b.WriteString("  *")
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("\n")

		fmt.Fprintf(&b, "holidays: %d/%d\n", len(t.HolidayDays()), t.DayCount)
	}

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	return nil
}
