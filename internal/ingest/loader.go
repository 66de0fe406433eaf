package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/utafrali/catalogview/internal/domain"
	apperrors "github.com/utafrali/catalogview/pkg/errors"
)

// Required column names, checked in this order. The first missing one is
// reported and the whole table is rejected.
var requiredColumns = []string{
	"Product Name",
	"Category",
	"Price",
	"Discount",
	"Stock",
	"Rating",
	"Features",
	"Image URL",
	"Launch Date",
	"Product ID",
}

// Source identifies where the spreadsheet bytes come from: a filesystem path
// or an in-memory upload. Exactly one of the two is set.
type Source struct {
	Path string
	Data []byte
}

// PathSource returns a Source reading from the given file path.
func PathSource(path string) Source {
	return Source{Path: path}
}

// BytesSource returns a Source reading from uploaded bytes.
func BytesSource(data []byte) Source {
	return Source{Data: data}
}

// Loader turns a spreadsheet into a normalized catalog.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new catalog loader.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the spreadsheet from src, validates the schema, and normalizes
// every row. A missing required column or an unreadable/empty workbook is
// fatal for the whole table; a malformed cell never is. The returned catalog
// has exactly as many products as the sheet has data rows.
func (l *Loader) Load(ctx context.Context, src Source) (*domain.Catalog, error) {
	f, err := l.open(src)
	if err != nil {
		catalogLoadsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.LoadFailed(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		catalogLoadsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.LoadFailed(errors.New("the workbook contains no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		catalogLoadsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.LoadFailed(fmt.Errorf("read rows: %w", err))
	}
	if len(rows) == 0 {
		catalogLoadsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.LoadFailed(errors.New("the spreadsheet is empty"))
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		catalogLoadsTotal.WithLabelValues("schema_error").Inc()
		return nil, err
	}

	if len(rows) < 2 {
		catalogLoadsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.LoadFailed(errors.New("the spreadsheet has no product rows"))
	}

	products := make([]domain.Product, 0, len(rows)-1)
	for i, row := range rows[1:] {
		products = append(products, l.normalizeRow(ctx, row, cols, i+2))
	}

	// The Discount column may arrive on a 0-1 fractional scale. Detection is
	// column-level: only when every parseable value fits in [0,1] is the
	// column rescaled to percentages.
	rescaleFractionalDiscounts(products)

	catalogLoadsTotal.WithLabelValues("ok").Inc()
	rowsNormalizedTotal.Add(float64(len(products)))

	l.logger.InfoContext(ctx, "catalog loaded",
		slog.Int("rows", len(products)),
		slog.String("sheet", sheets[0]),
	)

	return &domain.Catalog{Products: products}, nil
}

func (l *Loader) open(src Source) (*excelize.File, error) {
	if src.Path != "" {
		return excelize.OpenFile(src.Path)
	}
	return excelize.OpenReader(bytes.NewReader(src.Data))
}

// columns maps each required column name to its index in the header row.
type columns map[string]int

func mapColumns(header []string) (columns, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.TrimSpace(name)] = i
	}

	cols := make(columns, len(requiredColumns))
	for _, name := range requiredColumns {
		idx, ok := byName[name]
		if !ok {
			return nil, apperrors.MissingColumn(name)
		}
		cols[name] = idx
	}
	return cols, nil
}

// cell returns the trimmed value of the named column in row, or "" when the
// row is shorter than the header (trailing empty cells are not materialized
// by excelize).
func (c columns) cell(row []string, name string) string {
	idx := c[name]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
