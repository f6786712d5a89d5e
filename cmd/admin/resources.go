package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"cleanadmin/internal/export"
	"cleanadmin/internal/listing"
	"cleanadmin/internal/models"
)

type listFlags struct {
	query   *string
	page    *int
	perPage *int
}

func addListFlags(fs *flag.FlagSet) listFlags {
	return listFlags{
		query:   fs.String("q", "", "case-insensitive search"),
		page:    fs.Int("page", 1, "page number"),
		perPage: fs.Int("per-page", models.DefaultPerPage, "rows per page"),
	}
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func optString(set map[string]bool, name, val string) *string {
	if !set[name] {
		return nil
	}
	return &val
}

func optFloat(set map[string]bool, name string, val float64) *float64 {
	if !set[name] {
		return nil
	}
	return &val
}

func subcommand(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, errors.New("missing subcommand")
	}
	return args[0], args[1:], nil
}

// idArg parses fs and returns the single positional ID. Flags may come
// before or after the ID.
func idArg(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() == 0 {
		return "", fmt.Errorf("%s: expected exactly one ID", fs.Name())
	}
	id := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return "", err
	}
	if fs.NArg() != 0 {
		return "", fmt.Errorf("%s: expected exactly one ID", fs.Name())
	}
	return id, nil
}

func (a *app) clients(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	svc := a.api.Clients

	switch sub {
	case "list":
		fs := flag.NewFlagSet("clients list", flag.ContinueOnError)
		lf := addListFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		items, err := svc.List(ctx)
		if err != nil {
			return err
		}
		page := listing.Paginate(listing.Filter(items, listing.MatchClient(*lf.query)), *lf.page-1, *lf.perPage)
		fmt.Fprintf(a.out, "Total clients: %d  Matching: %d\n", len(items), page.Total)
		return a.printPage(page.Items, export.ClientRows(page.Items), page.Page, page.TotalPages)
	case "get":
		id, err := idArg(flag.NewFlagSet("clients get", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		item, err := svc.Get(ctx, id)
		if err != nil {
			return err
		}
		return a.printJSON(item)
	case "update":
		fs := flag.NewFlagSet("clients update", flag.ContinueOnError)
		first := fs.String("first-name", "", "first name")
		last := fs.String("last-name", "", "last name")
		email := fs.String("email", "", "email")
		street := fs.String("street", "", "street address")
		apt := fs.String("apartment", "", "apartment")
		city := fs.String("city", "", "city")
		zip := fs.String("zip", "", "zip code")
		id, err := idArg(fs, rest)
		if err != nil {
			return err
		}
		set := setFlags(fs)
		item, err := svc.Update(ctx, id, models.ClientUpdate{
			FirstName:     optString(set, "first-name", *first),
			LastName:      optString(set, "last-name", *last),
			ClientEmail:   optString(set, "email", *email),
			StreetAddress: optString(set, "street", *street),
			Apartment:     optString(set, "apartment", *apt),
			City:          optString(set, "city", *city),
			ZipCode:       optString(set, "zip", *zip),
		})
		if err != nil {
			return err
		}
		return a.printJSON(item)
	case "delete":
		id, err := idArg(flag.NewFlagSet("clients delete", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		if err := svc.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted client %s\n", id)
		return nil
	default:
		return fmt.Errorf("clients: unknown subcommand %q", sub)
	}
}

func (a *app) cleaners(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	svc := a.api.Cleaners

	switch sub {
	case "list":
		fs := flag.NewFlagSet("cleaners list", flag.ContinueOnError)
		lf := addListFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		items, err := svc.List(ctx)
		if err != nil {
			return err
		}
		page := listing.Paginate(listing.Filter(items, listing.MatchCleaner(*lf.query)), *lf.page-1, *lf.perPage)
		fmt.Fprintf(a.out, "Total cleaners: %d  Matching: %d\n", len(items), page.Total)
		return a.printPage(page.Items, export.CleanerRows(page.Items), page.Page, page.TotalPages)
	case "get":
		id, err := idArg(flag.NewFlagSet("cleaners get", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		item, err := svc.Get(ctx, id)
		if err != nil {
			return err
		}
		return a.printJSON(item)
	case "update":
		fs := flag.NewFlagSet("cleaners update", flag.ContinueOnError)
		first := fs.String("first-name", "", "first name")
		last := fs.String("last-name", "", "last name")
		email := fs.String("email", "", "email")
		phone := fs.String("phone", "", "phone number")
		sin := fs.String("sin", "", "social insurance number")
		street := fs.String("street", "", "street address")
		apt := fs.String("apartment", "", "apartment")
		city := fs.String("city", "", "city")
		zip := fs.String("zip", "", "zip code")
		id, err := idArg(fs, rest)
		if err != nil {
			return err
		}
		set := setFlags(fs)
		item, err := svc.Update(ctx, id, models.CleanerUpdate{
			FirstName:     optString(set, "first-name", *first),
			LastName:      optString(set, "last-name", *last),
			CleanerEmail:  optString(set, "email", *email),
			PhoneNo:       optString(set, "phone", *phone),
			SIN:           optString(set, "sin", *sin),
			StreetAddress: optString(set, "street", *street),
			Apartment:     optString(set, "apartment", *apt),
			City:          optString(set, "city", *city),
			ZipCode:       optString(set, "zip", *zip),
		})
		if err != nil {
			return err
		}
		return a.printJSON(item)
	case "delete":
		id, err := idArg(flag.NewFlagSet("cleaners delete", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		if err := svc.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted cleaner %s\n", id)
		return nil
	case "price":
		fs := flag.NewFlagSet("cleaners price", flag.ContinueOnError)
		setPrice := fs.Float64("set", 0, "new hourly rate")
		id, err := idArg(fs, rest)
		if err != nil {
			return err
		}
		if setFlags(fs)["set"] {
			cleaner, err := a.api.PriceRequests.SetCleanerPrice(ctx, id, *setPrice)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Cleaner %s now charges $%.2f/h\n", id, cleaner.PricePerHour)
			return nil
		}
		price, err := a.api.PriceRequests.CleanerPrice(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Cleaner %s charges $%.2f/h\n", id, price)
		return nil
	default:
		return fmt.Errorf("cleaners: unknown subcommand %q", sub)
	}
}

func (a *app) bookings(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	svc := a.api.Bookings

	switch sub {
	case "list":
		fs := flag.NewFlagSet("bookings list", flag.ContinueOnError)
		lf := addListFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		items, err := svc.List(ctx)
		if err != nil {
			return err
		}
		counts := listing.CountBookingStatuses(items)
		page := listing.Paginate(listing.Filter(items, listing.MatchBooking(*lf.query)), *lf.page-1, *lf.perPage)
		fmt.Fprintf(a.out, "Total: %d  New: %d  Accepted: %d  Rejected: %d\n",
			counts.Total, counts.New, counts.Accepted, counts.Rejected)
		return a.printPage(page.Items, export.BookingRows(page.Items), page.Page, page.TotalPages)
	case "get":
		id, err := idArg(flag.NewFlagSet("bookings get", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		item, err := svc.Get(ctx, id)
		if err != nil {
			return err
		}
		return a.printJSON(item)
	case "update":
		fs := flag.NewFlagSet("bookings update", flag.ContinueOnError)
		status := fs.String("status", "", "new|accepted|rejected")
		cleaning := fs.String("cleaning-status", "", "confirmed|on_the_way|in_progress|completed")
		amount := fs.Float64("amount", 0, "payment amount")
		method := fs.String("payment-method", "", "cash|card|online")
		payStatus := fs.String("payment-status", "", "pending|paid")
		id, err := idArg(fs, rest)
		if err != nil {
			return err
		}
		set := setFlags(fs)
		upd := models.BookingUpdate{
			Status:         optString(set, "status", *status),
			CleaningStatus: optString(set, "cleaning-status", *cleaning),
		}
		if set["amount"] || set["payment-method"] || set["payment-status"] {
			upd.Payment = &models.PaymentUpdate{
				Amount: optFloat(set, "amount", *amount),
				Method: optString(set, "payment-method", *method),
				Status: optString(set, "payment-status", *payStatus),
			}
		}
		item, err := svc.Update(ctx, id, upd)
		if err != nil {
			return err
		}
		return a.printJSON(item)
	case "delete":
		id, err := idArg(flag.NewFlagSet("bookings delete", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		if err := svc.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted booking %s\n", id)
		return nil
	default:
		return fmt.Errorf("bookings: unknown subcommand %q", sub)
	}
}

func (a *app) payments(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	svc := a.api.PaymentRequests

	switch sub {
	case "list":
		fs := flag.NewFlagSet("payments list", flag.ContinueOnError)
		lf := addListFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		items, err := svc.List(ctx)
		if err != nil {
			return err
		}
		totals := listing.SumPaymentRequests(items)
		page := listing.Paginate(items, *lf.page-1, *lf.perPage)
		fmt.Fprintf(a.out, "Pending: $%.2f  Completed: $%.2f  Failed: $%.2f\n", totals.Pending, totals.Completed, totals.Failed)
		return a.printPage(page.Items, export.PaymentRequestRows(page.Items), page.Page, page.TotalPages)
	case "get":
		id, err := idArg(flag.NewFlagSet("payments get", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		item, err := svc.Get(ctx, id)
		if err != nil {
			return err
		}
		return a.printJSON(item)
	case "send":
		fs := flag.NewFlagSet("payments send", flag.ContinueOnError)
		clientID := fs.String("client", "", "client ID")
		bookingID := fs.String("booking", "", "booking ID")
		amount := fs.Float64("amount", 0, "amount to request")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		item, err := svc.Send(ctx, models.NewPaymentRequest{ClientID: *clientID, BookingID: *bookingID, Amount: *amount})
		if err != nil {
			return err
		}
		return a.printJSON(item)
	case "update":
		fs := flag.NewFlagSet("payments update", flag.ContinueOnError)
		status := fs.String("status", "", "pending|completed|failed")
		method := fs.String("method", "", "payment method")
		id, err := idArg(fs, rest)
		if err != nil {
			return err
		}
		set := setFlags(fs)
		item, err := svc.UpdateStatus(ctx, id, models.PaymentRequestUpdate{
			Status:        optString(set, "status", *status),
			PaymentMethod: optString(set, "method", *method),
		})
		if err != nil {
			return err
		}
		return a.printJSON(item)
	case "delete":
		id, err := idArg(flag.NewFlagSet("payments delete", flag.ContinueOnError), rest)
		if err != nil {
			return err
		}
		if err := svc.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted payment request %s\n", id)
		return nil
	default:
		return fmt.Errorf("payments: unknown subcommand %q", sub)
	}
}

func (a *app) prices(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	svc := a.api.PriceRequests

	switch sub {
	case "list":
		fs := flag.NewFlagSet("prices list", flag.ContinueOnError)
		pending := fs.Bool("pending", false, "only pending requests")
		lf := addListFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		var items []models.PriceRequest
		if *pending {
			items, err = svc.ListPending(ctx)
		} else {
			items, err = svc.List(ctx)
		}
		if err != nil {
			return err
		}
		counts := listing.CountPriceStatuses(items)
		page := listing.Paginate(items, *lf.page-1, *lf.perPage)
		fmt.Fprintf(a.out, "Pending: %d  Approved: %d  Rejected: %d\n", counts.Pending, counts.Approved, counts.Rejected)
		return a.printPage(page.Items, export.PriceRequestRows(page.Items), page.Page, page.TotalPages)
	case "review":
		fs := flag.NewFlagSet("prices review", flag.ContinueOnError)
		approve := fs.Bool("approve", false, "approve the request")
		reject := fs.Bool("reject", false, "reject the request")
		notes := fs.String("notes", "", "review notes")
		id, err := idArg(fs, rest)
		if err != nil {
			return err
		}
		if *approve == *reject {
			return errors.New("prices review: pass exactly one of -approve or -reject")
		}
		status := models.PriceStatusApproved
		if *reject {
			status = models.PriceStatusRejected
		}

		all, err := svc.List(ctx)
		if err != nil {
			return err
		}
		var current *models.PriceRequest
		for i := range all {
			if all[i].ID == id {
				current = &all[i]
				break
			}
		}
		if current == nil {
			return fmt.Errorf("price request %s not found", id)
		}

		item, err := svc.Review(ctx, *current, models.PriceReview{Status: status, Notes: *notes})
		if err != nil {
			return err
		}
		return a.printJSON(item)
	default:
		return fmt.Errorf("prices: unknown subcommand %q", sub)
	}
}

func (a *app) visit(ctx context.Context, args []string,
	send func(context.Context, models.CheckInOutPayload) (*models.CheckInOutResult, error),
) error {
	fs := flag.NewFlagSet("visit", flag.ContinueOnError)
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	id, err := idArg(fs, args)
	if err != nil {
		return err
	}

	payload := models.CheckInOutPayload{BookingID: id}
	set := setFlags(fs)
	if set["lat"] || set["lng"] {
		payload.Location = &models.GeoPoint{Lat: *lat, Lng: *lng}
	}
	res, err := send(ctx, payload)
	if err != nil {
		return err
	}
	if a.jsonOut {
		return a.printJSON(res)
	}
	fmt.Fprintln(a.out, res.Message)
	return nil
}
