package config

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// PostgresDSN is DBURL with the prepared binary flag applied when
// DB_DISABLE_PREPARED_BINARY_RESULT is set. Poolers in transaction mode
// need it.
func (c Config) PostgresDSN() string {
	return WithPreparedBinaryFlag(c.DBURL, c.DBDisablePreparedBinary)
}

// WithPreparedBinaryFlag adds disable_prepared_binary_result=yes to a URL
// DSN unless the caller already set a value. Keyword DSNs pass through.
func WithPreparedBinaryFlag(dsn string, disable bool) string {
	if !disable {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return dsn
	}
	q := u.Query()
	if q.Has(preparedBinaryParam) {
		return dsn
	}
	q.Set(preparedBinaryParam, "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// DBName extracts the database name from either a postgres:// URL or a
// keyword/value DSN. It returns "" when none is present.
func DBName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	for _, kv := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(kv, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}
