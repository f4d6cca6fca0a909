package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nazmul162001/educonnect/internal/bootstrap"
	"github.com/nazmul162001/educonnect/internal/core"
	"github.com/nazmul162001/educonnect/internal/data"
	"github.com/nazmul162001/educonnect/internal/devseed"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	"github.com/nazmul162001/educonnect/internal/service"
)

type dbSeedOptions struct {
	timeoutOptions
	AllowRemote bool
}

func parseDBSeedFlags(args []string) (dbSeedOptions, error) {
	fs := flag.NewFlagSet("db-seed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := dbSeedOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for seeding to complete")
	fs.BoolVar(&opts.AllowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")

	if err := fs.Parse(args); err != nil {
		return dbSeedOptions{}, err
	}
	if opts.Timeout <= 0 {
		return dbSeedOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runDBSeed(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBSeedFlags(args)
	if err != nil {
		return err
	}
	if !cmdCtx.Config.IsDev {
		return errors.New("db-seed creates accounts with a shared password and only runs with DEV=true")
	}
	if guardErr := guardRemoteHost(cmdCtx, opts.AllowRemote, "seed development data"); guardErr != nil {
		return guardErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("ensuring database migrations are current")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return migrateErr
		}
		if seedErr := devseed.Run(ctx, devseed.NewServices(db), cmdCtx.Logger); seedErr != nil {
			return fmt.Errorf("seed data: %w", seedErr)
		}
		return writef(cmdCtx.Stdout, "demo accounts use the password %q\n", devseed.DemoPassword)
	})
}

type seedCollegesOptions struct {
	timeoutOptions
	File        string
	DryRun      bool
	AllowRemote bool
}

func parseSeedCollegesFlags(args []string) (seedCollegesOptions, error) {
	fs := flag.NewFlagSet("seed-colleges", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := seedCollegesOptions{}
	fs.StringVar(&opts.File, "file", "", "Path to a JSON array of colleges (- for stdin)")
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for seeding to complete")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Validate the file without writing")
	fs.BoolVar(&opts.AllowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")

	if err := fs.Parse(args); err != nil {
		return seedCollegesOptions{}, err
	}
	if opts.File == "" {
		return seedCollegesOptions{}, errors.New("--file is required")
	}
	if opts.Timeout <= 0 {
		return seedCollegesOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

// readCollegeSeed decodes and validates every entry. The first invalid entry fails the whole file.
func readCollegeSeed(r io.Reader) ([]*model.UpsertCollegeRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var entries []*model.UpsertCollegeRequest
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("seed file contains no colleges")
	}
	for i, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("entry %d: college is required", i)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Name, err)
		}
	}
	return entries, nil
}

func openSeedFile(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	return f, nil
}

func runSeedColleges(cmdCtx *commandContext, args []string) error {
	opts, err := parseSeedCollegesFlags(args)
	if err != nil {
		return err
	}

	f, err := openSeedFile(opts.File)
	if err != nil {
		return err
	}
	entries, err := readCollegeSeed(f)
	if closeErr := f.Close(); closeErr != nil {
		cmdCtx.Logger.Warn("close seed file failed", "error", closeErr)
	}
	if err != nil {
		return err
	}

	if opts.DryRun {
		return writef(cmdCtx.Stdout, "%d colleges valid; nothing written (dry run)\n", len(entries))
	}
	if guardErr := guardRemoteHost(cmdCtx, opts.AllowRemote, "create or replace colleges"); guardErr != nil {
		return guardErr
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	db, redisClient, err := connectInfra(cmdCtx.Logger, &cmdCtx.Config)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeInfra(db, redisClient); cerr != nil {
			cmdCtx.Logger.Warn("close infrastructure failed", "error", cerr)
		}
	}()

	cacheOpts := core.CollegeCacheOptions{Colleges: data.NewCollegeRepo(db), Logger: cmdCtx.Logger}
	if redisClient != nil {
		cacheOpts.Cache = data.NewRedisCacheRepo(redisClient)
	}
	svc := service.NewCollegeService(service.CollegeServiceOptions{
		Colleges:     core.NewCollegeCache(cacheOpts),
		StoreTimeout: cmdCtx.Config.HTTP.StoreTimeout,
		Logger:       cmdCtx.Logger,
	})

	return seedColleges(ctx, cmdCtx, svc, entries)
}

type collegeUpserter interface {
	Upsert(ctx context.Context, req *model.UpsertCollegeRequest) (*model.College, error)
}

func seedColleges(
	ctx context.Context,
	cmdCtx *commandContext,
	svc collegeUpserter,
	entries []*model.UpsertCollegeRequest,
) error {
	for i, e := range entries {
		college, err := svc.Upsert(ctx, e)
		if err != nil {
			return fmt.Errorf("entry %d (%q): %w", i, e.Name, err)
		}
		if err := writef(cmdCtx.Stdout, "%s\t%s\n", college.ID, college.Name); err != nil {
			return err
		}
	}
	cmdCtx.Logger.Info("colleges seeded", "count", len(entries))
	return nil
}
