package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"disparo-dashboard/internal/automation"

	"github.com/xuri/excelize/v2"
)

// Format tags the decoded batch the way the import webhook expects.
type Format string

const (
	FormatJSON     Format = "json"
	FormatPlanilha Format = "planilha"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type: use CSV, XLSX, XLS or JSON")
	ErrNoData          = errors.New("no data found in file or invalid format")
)

// Rows is the uniform decoded shape: one map per data row, keyed by the
// header cells (or JSON object keys).
type Rows []map[string]interface{}

// Decode turns an uploaded file into rows. The content type decides the
// decoder, falling back to the file extension when the type is generic.
func Decode(r io.Reader, filename, contentType string) (Rows, Format, error) {
	switch kind(filename, contentType) {
	case "json":
		rows, err := decodeJSON(r)
		return rows, FormatJSON, err
	case "csv":
		rows, err := decodeCSV(r)
		return rows, FormatPlanilha, err
	case "excel":
		rows, err := decodeExcel(r)
		return rows, FormatPlanilha, err
	default:
		return nil, "", ErrUnsupportedType
	}
}

func kind(filename, contentType string) string {
	switch contentType {
	case "application/json":
		return "json"
	case "text/csv":
		return "csv"
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel":
		return "excel"
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	case ".xlsx", ".xls":
		return "excel"
	}
	return ""
}

func decodeJSON(r io.Reader) (Rows, error) {
	var raw interface{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("could not process JSON file: %w", err)
	}

	switch v := raw.(type) {
	case map[string]interface{}:
		// A single object counts as a one-row batch.
		return Rows{v}, nil
	case []interface{}:
		rows := make(Rows, 0, len(v))
		for _, item := range v {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("could not process JSON file: element %T is not an object", item)
			}
			rows = append(rows, obj)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("could not process JSON file: unexpected top-level %T", raw)
	}
}

func decodeCSV(r io.Reader) (Rows, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not process CSV file: %w", err)
	}
	if len(records) == 0 {
		return Rows{}, nil
	}

	return rowsFromTable(records), nil
}

func decodeExcel(r io.Reader) (Rows, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not process spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Rows{}, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not process spreadsheet: %w", err)
	}

	return rowsFromTable(records), nil
}

// rowsFromTable maps a header row plus data rows into row objects. Short
// rows simply omit the trailing columns, matching how the spreadsheet
// library on the old frontend behaved.
func rowsFromTable(records [][]string) Rows {
	if len(records) < 2 {
		return Rows{}
	}

	header := records[0]
	rows := make(Rows, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]interface{}, len(header))
		empty := true
		for i, key := range header {
			if key == "" || i >= len(record) {
				continue
			}
			row[key] = record[i]
			if record[i] != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// ProgressFunc receives the coarse checkpoint percentages as an import
// advances. The values are fixed UX checkpoints, not a byte measure.
type ProgressFunc func(pct int)

// Sender is the outbound side of the pipeline, satisfied by
// *automation.Client.
type Sender interface {
	SendContactImport(ctx context.Context, p automation.ImportPayload) error
}

type Service struct {
	sender Sender
}

func NewService(sender Sender) *Service {
	return &Service{sender: sender}
}

// Import decodes the uploaded file and forwards the whole batch to the
// import webhook. Decode failure, an empty batch, or a webhook failure all
// abort the import; nothing is retried. Returns the number of rows sent.
func (s *Service) Import(ctx context.Context, r io.Reader, filename, contentType string, progress ProgressFunc) (int, error) {
	report := func(pct int) {
		if progress != nil {
			progress(pct)
		}
	}

	report(10)

	rows, format, err := Decode(r, filename, contentType)
	if err != nil {
		return 0, err
	}
	report(40)

	if len(rows) == 0 {
		return 0, ErrNoData
	}
	report(60)

	payload := automation.ImportPayload{
		Contacts:       rows,
		Filename:       filename,
		ImportedAt:     time.Now().UTC().Format(time.RFC3339),
		TipoImportacao: string(format),
	}
	err = s.sender.SendContactImport(ctx, payload)
	report(100)
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}
