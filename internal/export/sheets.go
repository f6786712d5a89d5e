package export

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsExporter replaces the contents of a Google Sheets tab.
type SheetsExporter struct {
	service *sheets.Service
}

// NewSheetsExporter authenticates with a service-account credentials file.
func NewSheetsExporter(ctx context.Context, credentialsFile string) (*SheetsExporter, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return &SheetsExporter{service: srv}, nil
}

// NewSheetsExporterWithService wraps an existing client.
func NewSheetsExporterWithService(srv *sheets.Service) *SheetsExporter {
	return &SheetsExporter{service: srv}
}

// Replace clears the tab and writes rows starting at A1.
func (e *SheetsExporter) Replace(ctx context.Context, spreadsheetID, sheet string, rows [][]any) error {
	if spreadsheetID == "" || sheet == "" {
		return fmt.Errorf("spreadsheet id and sheet name are required")
	}

	clearRange := fmt.Sprintf("%s!A:ZZ", sheet)
	_, err := e.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to clear %s: %w", sheet, err)
	}

	valueRange := &sheets.ValueRange{Values: rows}
	_, err = e.service.Spreadsheets.Values.Update(spreadsheetID, fmt.Sprintf("%s!A1", sheet), valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", sheet, err)
	}
	return nil
}
