package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nazmul162001/educonnect/internal/data"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/service"
)

type setRoleOptions struct {
	timeoutOptions
	Email string
	Role  domainauth.Role
	Yes   bool
}

func parseSetRoleFlags(args []string) (setRoleOptions, error) {
	fs := flag.NewFlagSet("set-role", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		opts setRoleOptions
		role string
	)
	fs.StringVar(&opts.Email, "email", "", "Email of the user to change")
	fs.StringVar(&role, "role", "", "New role: STUDENT, ADMIN or COLLEGE_ADMIN")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip the confirmation prompt")
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the change")

	if err := fs.Parse(args); err != nil {
		return setRoleOptions{}, err
	}
	opts.Email = domainauth.NormalizeEmail(opts.Email)
	if opts.Email == "" {
		return setRoleOptions{}, errors.New("--email is required")
	}
	parsed, ok := domainauth.ParseRole(role)
	if !ok {
		return setRoleOptions{}, fmt.Errorf("--role %q is not one of STUDENT, ADMIN, COLLEGE_ADMIN", role)
	}
	opts.Role = parsed
	if opts.Timeout <= 0 {
		return setRoleOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runSetRole(cmdCtx *commandContext, args []string) error {
	opts, err := parseSetRoleFlags(args)
	if err != nil {
		return err
	}
	if opts.Role != domainauth.RoleStudent {
		prompt := fmt.Sprintf("Grant %s to %s.", opts.Role, opts.Email)
		if confirmErr := confirm(cmdCtx, opts.Yes, prompt); confirmErr != nil {
			return confirmErr
		}
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		svc := service.NewProfileService(service.ProfileServiceOptions{
			Users:        data.NewUserRepo(db),
			StoreTimeout: cmdCtx.Config.HTTP.StoreTimeout,
			Logger:       cmdCtx.Logger,
		})
		user, setErr := svc.SetRole(ctx, opts.Email, opts.Role)
		if setErr != nil {
			return setErr
		}
		return writef(cmdCtx.Stdout, "%s (%s) is now %s\n", user.Email, user.ID, user.Role)
	})
}
