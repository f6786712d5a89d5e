package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cleanadmin/internal/auth"
)

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", os.Getenv("CLEANADMIN_PASSWORD"), "admin password (or CLEANADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.mgr.Init(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("could not restore previous session")
	}
	if err := a.mgr.Login(ctx, *email, *password); err != nil {
		return err
	}
	snap := a.mgr.Snapshot()
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", snap.Admin.Name, snap.Admin.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.mgr.Init(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("could not restore previous session")
	}
	if err := a.mgr.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.mgr.Init(ctx); err != nil {
		return err
	}
	snap := a.mgr.Snapshot()
	if a.jsonOut {
		return a.printJSON(map[string]any{
			"state":           snap.State.String(),
			"isAuthenticated": snap.IsAuthenticated,
			"admin":           snap.Admin,
		})
	}
	if !snap.IsAuthenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\nRole:  %s\nID:    %s\n",
		snap.Admin.Name, snap.Admin.Email, snap.Admin.Role, snap.Admin.ID)
	switch exp, ok := auth.TokenExpiry(snap.Token); {
	case ok:
		fmt.Fprintf(a.out, "Token expires: %s (in %s)\n", exp.Local().Format(time.RFC1123), time.Until(exp).Round(time.Minute))
	case auth.IsDemoToken(snap.Token):
		fmt.Fprintln(a.out, "Token: local demo session")
	}
	return nil
}
