package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cinevault/cinevault/internal/constants"
	apperrors "github.com/cinevault/cinevault/internal/errors"
	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/pkg/logger"
)

// TransferService handles bulk CSV import and export of the catalog.
type TransferService struct {
	catalog *CatalogService
	logger  logger.Logger
}

// NewTransfer creates a TransferService.
func NewTransfer(catalog *CatalogService, log logger.Logger) *TransferService {
	return &TransferService{
		catalog: catalog,
		logger:  log,
	}
}

// Import reads movies from CSV. The first row must be the canonical
// header. Rows that fail validation or collide with existing codes are
// skipped and reported; valid rows are inserted.
func (t *TransferService) Import(ctx context.Context, r io.Reader) (*models.ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(constants.CSVHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewImportError("failed to read CSV header", err)
	}
	if !headerMatches(header) {
		return nil, apperrors.NewImportError(
			fmt.Sprintf("unexpected CSV header, want %v", constants.CSVHeader), nil)
	}

	report := &models.ImportReport{}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}

		movie, err := parseCSVRow(record)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}

		if err := t.catalog.Create(ctx, movie); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}
		report.Imported++
	}

	t.logger.Infof("[Transfer] import finished: %d imported, %d skipped", report.Imported, report.Skipped)
	return report, nil
}

// Export writes the full catalog as CSV in the canonical column order.
func (t *TransferService) Export(ctx context.Context, w io.Writer) error {
	movies, err := t.catalog.Search(ctx, models.SearchFilter{})
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(constants.CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, m := range movies {
		record := []string{
			m.Code,
			m.Title,
			m.ReleaseDate,
			m.Director,
			m.Cast,
			m.Genre,
			formatFloat(m.Budget),
			strconv.Itoa(m.DurationMin),
			formatFloat(m.Rating),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func headerMatches(header []string) bool {
	if len(header) != len(constants.CSVHeader) {
		return false
	}
	for i, col := range constants.CSVHeader {
		if header[i] != col {
			return false
		}
	}
	return true
}

func parseCSVRow(record []string) (*models.Movie, error) {
	m := &models.Movie{
		Code:        record[0],
		Title:       record[1],
		ReleaseDate: record[2],
		Director:    record[3],
		Cast:        record[4],
		Genre:       record[5],
	}

	if record[6] != "" {
		budget, err := strconv.ParseFloat(record[6], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid budget %q", record[6])
		}
		m.Budget = budget
	}
	if record[7] != "" {
		duration, err := strconv.Atoi(record[7])
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q", record[7])
		}
		m.DurationMin = duration
	}
	if record[8] != "" {
		rating, err := strconv.ParseFloat(record[8], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rating %q", record[8])
		}
		m.Rating = rating
	}

	return m, nil
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
