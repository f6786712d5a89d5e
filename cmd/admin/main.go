package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleanadmin/internal/admin"
	"cleanadmin/internal/auth"
	"cleanadmin/internal/config"
	"cleanadmin/internal/events"
	"cleanadmin/internal/logging"
	"cleanadmin/internal/metrics"
	"cleanadmin/internal/session"

	"github.com/rs/zerolog"
)

const usage = `usage: admin [-config file] [-json] <command> [args]

commands:
  login -email E -password P     sign in and persist the session
  logout                         clear the stored session
  whoami                         show the current admin
  clients   list|get|update|delete
  cleaners  list|get|update|delete|price
  bookings  list|get|update|delete
  payments  list|get|send|update|delete
  prices    list|review
  checkin   BOOKING_ID [-lat L -lng L]
  checkout  BOOKING_ID [-lat L -lng L]
  analytics dashboard|trends|activity
  export    clients|cleaners|bookings|prices|payments (-xlsx FILE | -sheet ID)
  serve                          run the /api reverse proxy
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	configPath := fs.String("config", os.Getenv("CLEANADMIN_CONFIG"), "path to config.yaml")
	jsonOut := fs.Bool("json", false, "print JSON instead of tables")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	cfg, logger, closer, err := loadConfigAndLogger(*configPath)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, logger, out, *jsonOut)
	if err != nil {
		return err
	}
	defer a.close()

	return a.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
}

func loadConfigAndLogger(path string) (*config.Config, *zerolog.Logger, io.Closer, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	if closer == nil {
		closer = io.NopCloser(nil)
	}
	return cfg, logger, closer, nil
}

type app struct {
	cfg     *config.Config
	logger  *zerolog.Logger
	out     io.Writer
	jsonOut bool

	mgr     *auth.Manager
	api     *admin.API
	closers []io.Closer
}

func newApp(cfg *config.Config, logger *zerolog.Logger, out io.Writer, jsonOut bool) (*app, error) {
	a := &app{cfg: cfg, logger: logger, out: out, jsonOut: jsonOut}

	store, closer, err := session.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	a.closers = append(a.closers, closer)

	client := admin.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), logger)
	if cfg.Analytics.CacheTTLSeconds > 0 && cfg.Redis.Address != "" {
		rdb := session.NewRedisClient(cfg.Redis)
		a.closers = append(a.closers, rdb)
		client.UseRedisCache(rdb, time.Duration(cfg.Analytics.CacheTTLSeconds)*time.Second, "cleanadmin:cache:")
	}

	backend, err := auth.NewBackend(cfg.Auth.Mode, admin.NewAuth(client), store, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	if cfg.Auth.Mode != config.AuthModeReal {
		logger.Warn().Str("mode", cfg.Auth.Mode).Msg("local demo authentication enabled")
	}

	bus := events.NewEventBus()
	sessionLog := logging.Component(logger, "session-events")
	for _, et := range []string{
		events.EventSessionLogin,
		events.EventSessionLogout,
		events.EventSessionInvalidated,
		events.EventSessionRestored,
	} {
		bus.Subscribe(et, func(e *events.Event) error {
			var p events.SessionEventPayload
			if err := e.Decode(&p); err != nil {
				return err
			}
			sessionLog.Debug().Str("event", e.Type).Str("admin", p.Email).Str("reason", p.Reason).Msg("session event")
			return nil
		})
	}

	a.mgr = auth.NewManager(auth.NewService(backend, store), store, bus, logger)
	client.UseToken(a.mgr.Token)
	a.api = admin.NewAPI(client, admin.PriceOptions{Fallback: admin.PriceFallback(cfg.Prices.Fallback)})

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
	}
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// requireSession restores the stored session and fails when nobody is
// signed in.
func (a *app) requireSession(ctx context.Context) error {
	if err := a.mgr.Init(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !a.mgr.Snapshot().IsAuthenticated {
		return errors.New("not logged in; run `admin login` first")
	}
	return nil
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "serve":
		return a.serve(ctx)
	}

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	switch cmd {
	case "clients":
		return a.clients(ctx, args)
	case "cleaners":
		return a.cleaners(ctx, args)
	case "bookings":
		return a.bookings(ctx, args)
	case "payments":
		return a.payments(ctx, args)
	case "prices":
		return a.prices(ctx, args)
	case "checkin":
		return a.visit(ctx, args, a.api.Visits.CheckIn)
	case "checkout":
		return a.visit(ctx, args, a.api.Visits.CheckOut)
	case "analytics":
		return a.analytics(ctx, args)
	case "export":
		return a.export(ctx, args)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}
