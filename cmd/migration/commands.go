package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/darkscore-api/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/darkscore-api/internal/platform/dbconn"
)

type command struct {
	names   []string
	usage   string
	summary string
	run     func(ctx context.Context, e env, args []string) error
}

var commands = []command{
	{names: []string{"up"}, usage: "up", summary: "apply all pending migrations", run: withMigrator(migrateUp)},
	{names: []string{"down"}, usage: "down [steps]", summary: "roll back steps migrations (default 1)", run: withMigrator(migrateDown)},
	{names: []string{"version"}, usage: "version", summary: "print the current version", run: withMigrator(printVersion)},
	{names: []string{"force"}, usage: "force <version>", summary: "set the version without migrating", run: withMigrator(forceVersion)},
	{names: []string{"goto", "migrate"}, usage: "goto <version>", summary: "migrate up or down to version", run: withMigrator(gotoVersion)},
	{names: []string{"seed"}, usage: "seed", summary: "load teams and rosters into an empty database", run: seed(false)},
	{names: []string{"seed-refresh"}, usage: "seed-refresh", summary: "rewrite seeded teams and rosters", run: seed(true)},
}

func lookupCommand(name string) (command, bool) {
	for _, cmd := range commands {
		for _, n := range cmd.names {
			if n == name {
				return cmd, true
			}
		}
	}
	return command{}, false
}

type migratorFunc func(m *migrate.Migrate, args []string) error

func withMigrator(fn migratorFunc) func(context.Context, env, []string) error {
	return func(_ context.Context, e env, args []string) error {
		dir, err := resolveMigrationsDir(e.migrationsDir)
		if err != nil {
			return err
		}
		source := "file://" + filepath.ToSlash(dir)
		m, err := migrate.New(source, dbconn.NormalizeURL(e.dbURL, e.disablePreparedBinary))
		if err != nil {
			return fmt.Errorf("create migrator: %w", err)
		}
		defer func() {
			srcErr, dbErr := m.Close()
			if err := errors.Join(srcErr, dbErr); err != nil {
				logger.Warn("close migrator", "error", err)
			}
		}()
		logger.Info("migration source", "source", source)
		return fn(m, args)
	}
}

func migrateUp(m *migrate.Migrate, _ []string) error {
	if err := ignoreNoChange(m.Up()); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func migrateDown(m *migrate.Migrate, args []string) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Steps(-steps)); err != nil {
		return err
	}
	logger.Info("rolled back migrations", "steps", steps)
	return nil
}

func printVersion(m *migrate.Migrate, _ []string) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
	return nil
}

func forceVersion(m *migrate.Migrate, args []string) error {
	if len(args) == 0 {
		return errors.New("force requires a version argument")
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("forced version", "version", version)
	return nil
}

func gotoVersion(m *migrate.Migrate, args []string) error {
	if len(args) == 0 {
		return errors.New("goto requires a target version argument")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Migrate(target)); err != nil {
		return err
	}
	logger.Info("migrated", "version", target)
	return nil
}

// seed loads the team catalogue and placeholder rosters. Plain seed only
// touches an empty database; refresh rewrites existing rows.
func seed(refresh bool) func(context.Context, env, []string) error {
	return func(ctx context.Context, e env, _ []string) error {
		db, err := dbconn.Connect(ctx, dbconn.Options{URL: e.dbURL, DisablePreparedBinary: e.disablePreparedBinary})
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("close postgres", "error", err)
			}
		}()

		if refresh {
			err = postgres.RefreshSeed(ctx, db)
		} else {
			err = postgres.BootstrapSeed(ctx, db)
		}
		if err != nil {
			return err
		}
		logger.Info("seed completed", "refresh", refresh)
		return nil
	}
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}
