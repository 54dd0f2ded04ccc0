package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
)

const commandTimeout = 2 * time.Minute

var logger = logging.NewJSON(logging.LevelInfo).With("component", "migration")

func main() {
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	name := strings.ToLower(strings.TrimSpace(os.Args[1]))
	cmd, ok := lookupCommand(name)
	if !ok {
		printUsage()
		os.Exit(2)
	}

	env, err := loadEnv()
	if err != nil {
		fatal("load environment", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := cmd.run(ctx, env, os.Args[2:]); err != nil {
		cancel()
		fatal(name+" failed", "error", err)
	}
}

// env is what every command reads from the process environment.
type env struct {
	dbURL                 string
	disablePreparedBinary bool
	migrationsDir         string
}

func loadEnv() (env, error) {
	out := env{
		dbURL:                 strings.TrimSpace(os.Getenv("DB_URL")),
		disablePreparedBinary: envBool("DB_DISABLE_PREPARED_BINARY_RESULT"),
		migrationsDir:         firstNonEmpty(os.Getenv("MIGRATIONS_DIR"), os.Getenv("MIGRATIONS_PATH")),
	}
	if out.dbURL == "" {
		return env{}, errors.New("DB_URL is required")
	}
	return out, nil
}

func fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	_ = logger.Sync()
	os.Exit(1)
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// resolveMigrationsDir prefers the configured directory, then the repo and
// container layouts.
func resolveMigrationsDir(configured string) (string, error) {
	candidates := []string{configured, "./db/migrations", "/app/db/migrations"}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func printUsage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n\ncommands:\n", bin)
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-28s %s\n", cmd.usage, cmd.summary)
	}
}
