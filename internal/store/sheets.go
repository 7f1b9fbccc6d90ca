package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mcttz/mediawatch/internal/retry"
)

// appendBatchSize keeps each values request under the Sheets payload limit.
const appendBatchSize = 300

// SheetsStore persists rows into a Google Spreadsheet.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	retryCfg      retry.Config
}

// SpreadsheetKey extracts the spreadsheet key from a full sheet URL. A URL
// without the /d/<key>/ segment is a configuration error and must fail
// before any read or write is attempted.
func SpreadsheetKey(sheetURL string) (string, error) {
	_, after, found := strings.Cut(sheetURL, "/d/")
	if !found {
		return "", fmt.Errorf("results sheet URL %q is missing the /d/<key>/ segment", sheetURL)
	}
	key, _, _ := strings.Cut(after, "/")
	if key == "" {
		return "", fmt.Errorf("results sheet URL %q has an empty spreadsheet key", sheetURL)
	}
	return key, nil
}

// NewSheetsStore authorizes against the Sheets API with service-account
// credentials and binds to the spreadsheet named by sheetURL.
func NewSheetsStore(ctx context.Context, sheetURL string, credentialsJSON []byte) (*SheetsStore, error) {
	key, err := SpreadsheetKey(sheetURL)
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: key,
		retryCfg:      retry.Config{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true},
	}, nil
}

// EnsureWorksheet creates the named worksheet when the spreadsheet does not
// have it yet.
func (s *SheetsStore) EnsureWorksheet(ctx context.Context, name string) error {
	var meta *sheets.Spreadsheet
	err := retry.Do(ctx, s.retryCfg, func() error {
		got, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
		if err != nil {
			return err
		}
		meta = got
		return nil
	})
	if err != nil {
		return fmt.Errorf("load spreadsheet metadata: %w", err)
	}

	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: name,
					GridProperties: &sheets.GridProperties{
						RowCount:    1000,
						ColumnCount: 26,
					},
				},
			},
		}},
	}
	err = retry.Do(ctx, s.retryCfg, func() error {
		_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("create worksheet %s: %w", name, err)
	}
	return nil
}

// ReadRows returns every data row in the worksheet, the header excluded.
func (s *SheetsStore) ReadRows(ctx context.Context, name string) ([][]string, error) {
	var resp *sheets.ValueRange
	err := retry.Do(ctx, s.retryCfg, func() error {
		got, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, name).Context(ctx).Do()
		if err != nil {
			return err
		}
		resp = got
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", name, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprintf("%v", cell)
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == Header[0] {
		rows = rows[1:]
	}
	return rows, nil
}

// Replace clears the worksheet and rewrites it: header row first, then data
// rows appended in fixed-size batches. A failure mid-batch can leave the
// worksheet partially rewritten; callers treat that as fatal for the run.
func (s *SheetsStore) Replace(ctx context.Context, name string, rows [][]string) error {
	err := retry.Do(ctx, s.retryCfg, func() error {
		_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, name, &sheets.ClearValuesRequest{}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("clear worksheet %s: %w", name, err)
	}

	if err := s.append(ctx, name, [][]string{Header}); err != nil {
		return fmt.Errorf("write header to %s: %w", name, err)
	}

	for start := 0; start < len(rows); start += appendBatchSize {
		end := start + appendBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.append(ctx, name, rows[start:end]); err != nil {
			return fmt.Errorf("append rows %d-%d to %s: %w", start, end, name, err)
		}
	}
	return nil
}

func (s *SheetsStore) append(ctx context.Context, name string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return retry.Do(ctx, s.retryCfg, func() error {
		_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, name, &sheets.ValueRange{Values: values}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		return err
	})
}
