// Package dbconn opens traced PostgreSQL handles for the API and the
// migration tool.
package dbconn

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const (
	driverName           = "postgres"
	maxTracedQueryLength = 512
	binaryResultParam    = "disable_prepared_binary_result"
)

// Options select the database and how the URL is prepared.
type Options struct {
	URL string
	// DisablePreparedBinary adds disable_prepared_binary_result=yes unless the
	// URL already sets it. Transaction poolers need this.
	DisablePreparedBinary bool
}

func (o Options) dsn() string {
	return NormalizeURL(o.URL, o.DisablePreparedBinary)
}

// Open returns a lazily connected handle whose queries are traced.
func Open(opts Options) (*sqlx.DB, error) {
	dsn := opts.dsn()
	db, err := otelsqlx.Open(driverName, dsn, traceOptions(dsn)...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Connect is Open followed by a ping.
func Connect(ctx context.Context, opts Options) (*sqlx.DB, error) {
	dsn := opts.dsn()
	db, err := otelsqlx.ConnectContext(ctx, driverName, dsn, traceOptions(dsn)...)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

func traceOptions(dsn string) []otelsql.Option {
	return []otelsql.Option{
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(Name(dsn)),
		otelsql.WithQueryFormatter(FormatQuery),
	}
}

// NormalizeURL applies the prepared-binary toggle to a URL-style DSN.
// Key/value DSNs and unparsable input pass through unchanged.
func NormalizeURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get(binaryResultParam) != "" {
		return raw
	}
	query.Set(binaryResultParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

var dsnNamePattern = regexp.MustCompile(`(?:^|\s)dbname=['"]?([^'"\s]+)`)

// Name extracts the database name from either DSN style.
func Name(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}
	if m := dsnNamePattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

var whitespace = regexp.MustCompile(`\s+`)

// FormatQuery collapses whitespace and caps the statement for span attributes.
func FormatQuery(query string) string {
	query = whitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(query) > maxTracedQueryLength {
		return query[:maxTracedQueryLength] + "..."
	}
	return query
}
