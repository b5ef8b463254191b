package app

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/config"
)

// normalizeDBURL adds disable_prepared_binary_result=yes for poolers that
// cannot handle binary results of unnamed prepared statements.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

// dbNameFromURL understands both URL and key=value DSNs.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(strings.TrimSpace(name), `"'`)
		}
	}
	return ""
}

// DatabaseURL is the DSN the migration tool and the services both connect with.
func DatabaseURL(cfg config.Config) string {
	return normalizeDBURL(strings.TrimSpace(cfg.DBURL), cfg.DBDisablePreparedBinary)
}
