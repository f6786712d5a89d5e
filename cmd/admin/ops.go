package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"cleanadmin/internal/export"
	"cleanadmin/internal/models"
	"cleanadmin/internal/proxy"
)

func (a *app) analytics(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	svc := a.api.Analytics

	switch sub {
	case "dashboard":
		stats, err := svc.Dashboard(ctx)
		if err != nil {
			return err
		}
		if a.jsonOut {
			return a.printJSON(stats)
		}
		o := stats.Overview
		fmt.Fprintf(a.out, "Clients: %d  Cleaners: %d (%d active)  Bookings: %d\n",
			o.TotalClients, o.TotalCleaners, o.ActiveCleaners, o.TotalBookings)
		fmt.Fprintf(a.out, "Revenue: $%.2f  Average booking: $%.2f\n", o.TotalRevenue, o.AverageBookingValue)
		s := stats.Bookings.ByStatus
		fmt.Fprintf(a.out, "Bookings new/accepted/rejected: %d/%d/%d\n", s.New, s.Accepted, s.Rejected)
		m := stats.Revenue.ByMethod
		fmt.Fprintf(a.out, "Collected cash/card/online: $%.2f/$%.2f/$%.2f\n", m.Cash, m.Card, m.Online)
		return nil
	case "trends":
		fs := flag.NewFlagSet("analytics trends", flag.ContinueOnError)
		period := fs.Int("period", models.DefaultTrendPeriod, "window in days")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		trend, err := svc.Trends(ctx, *period)
		if err != nil {
			return err
		}
		rows := [][]any{{"Date", "Bookings", "Revenue"}}
		for _, p := range trend.Data {
			rows = append(rows, []any{p.Date, p.Count, fmt.Sprintf("%.2f", p.Revenue)})
		}
		return a.printRows(trend, rows)
	case "activity":
		fs := flag.NewFlagSet("analytics activity", flag.ContinueOnError)
		limit := fs.Int("limit", models.DefaultActivityLimit, "entries per feed")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		activity, err := svc.Activity(ctx, *limit)
		if err != nil {
			return err
		}
		return a.printJSON(activity)
	default:
		return fmt.Errorf("analytics: unknown subcommand %q", sub)
	}
}

func (a *app) export(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("export "+sub, flag.ContinueOnError)
	xlsxPath := fs.String("xlsx", "", "write an .xlsx workbook to this path")
	sheetID := fs.String("sheet", "", "Google spreadsheet ID to overwrite")
	tab := fs.String("tab", "", "sheet tab name (default: resource name)")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if (*xlsxPath == "") == (*sheetID == "") {
		return errors.New("export: pass exactly one of -xlsx or -sheet")
	}

	rows, err := a.exportRows(ctx, sub)
	if err != nil {
		return err
	}
	name := *tab
	if name == "" {
		name = strings.ToUpper(sub[:1]) + sub[1:]
	}

	if *xlsxPath != "" {
		if err := export.WriteXLSX(*xlsxPath, name, rows); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Exported %d %s to %s\n", len(rows)-1, sub, *xlsxPath)
		return nil
	}

	if a.cfg.Google.CredentialsFile == "" {
		return errors.New("export: google.credentials_file is required for -sheet")
	}
	exporter, err := export.NewSheetsExporter(ctx, a.cfg.Google.CredentialsFile)
	if err != nil {
		return err
	}
	if err := exporter.Replace(ctx, *sheetID, name, rows); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d %s to sheet %s!%s\n", len(rows)-1, sub, *sheetID, name)
	return nil
}

func (a *app) exportRows(ctx context.Context, resource string) ([][]any, error) {
	switch resource {
	case "clients":
		items, err := a.api.Clients.List(ctx)
		if err != nil {
			return nil, err
		}
		return export.ClientRows(items), nil
	case "cleaners":
		items, err := a.api.Cleaners.List(ctx)
		if err != nil {
			return nil, err
		}
		return export.CleanerRows(items), nil
	case "bookings":
		items, err := a.api.Bookings.List(ctx)
		if err != nil {
			return nil, err
		}
		return export.BookingRows(items), nil
	case "prices":
		items, err := a.api.PriceRequests.List(ctx)
		if err != nil {
			return nil, err
		}
		return export.PriceRequestRows(items), nil
	case "payments":
		items, err := a.api.PaymentRequests.List(ctx)
		if err != nil {
			return nil, err
		}
		return export.PaymentRequestRows(items), nil
	default:
		return nil, fmt.Errorf("export: unknown resource %q", resource)
	}
}

func (a *app) serve(ctx context.Context) error {
	srv, err := proxy.NewServer(a.cfg, a.logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("Shutting down proxy...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown proxy: %w", err)
	}
	return <-errCh
}

// printPage renders one page of a list, or the page items as JSON.
func (a *app) printPage(items any, rows [][]any, page, totalPages int) error {
	if a.jsonOut {
		return a.printJSON(items)
	}
	if err := a.printTable(rows); err != nil {
		return err
	}
	if totalPages > 1 {
		fmt.Fprintf(a.out, "Page %d of %d\n", page+1, totalPages)
	}
	return nil
}

func (a *app) printRows(v any, rows [][]any) error {
	if a.jsonOut {
		return a.printJSON(v)
	}
	return a.printTable(rows)
}

func (a *app) printTable(rows [][]any) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = fmt.Sprint(c)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
