package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"rnd-intake-be/internal/entity"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Requests"

// MaxRows caps a single export.
const MaxRows = 5000

var header = []interface{}{
	"ID", "Title", "Customer", "Product Area", "Category", "Stage", "Status",
	"Importance", "Expected Revenue", "RICE Score", "Influence Score",
	"Keywords", "RD Groups", "Submitted At", "Customer Deadline", "Created By",
}

// Row is one exported request with its resolved labels.
type Row struct {
	Request  *entity.Request
	Keywords []string
	RDGroups []string
}

// WriteRequests streams rows into a single-sheet workbook written to w.
func WriteRequests(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func values(row Row) []interface{} {
	r := row.Request
	createdBy := r.CreatedByUserId
	if r.CreatedByName != nil && *r.CreatedByName != "" {
		createdBy = *r.CreatedByName
	}

	return []interface{}{
		r.Id.String(),
		r.Title,
		r.CustomerName,
		string(r.ProductArea),
		string(r.Category),
		string(r.CurrentStage),
		r.CurrentStatus,
		string(r.ImportanceFlag),
		optional(r.ExpectedRevenue),
		optional(r.RiceScore),
		optional(r.InfluenceScore),
		strings.Join(row.Keywords, ", "),
		strings.Join(row.RDGroups, ", "),
		r.SubmittedAt.UTC().Format(time.RFC3339),
		r.CustomerDeadline.UTC().Format("2006-01-02"),
		createdBy,
	}
}

func optional[T int64 | float64](v *T) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
