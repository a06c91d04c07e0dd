package conn

import (
	"fmt"
	"net/url"
	"strings"
)

// Descriptor is a Postgres connection target parsed from a URL-form string.
type Descriptor struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	SSLMode  string
}

// Resolve normalizes a raw connection string. Literal brackets are removed
// (pasted placeholders like [PASSWORD] are a recurring support issue).
// URL-form strings are parsed and re-rendered as a keyword/value DSN with
// defaults applied; anything else is passed through for the driver to
// interpret.
func Resolve(raw string) string {
	raw = strings.NewReplacer("[", "", "]", "").Replace(raw)
	d, ok := Parse(raw)
	if !ok {
		return raw
	}
	return d.DSN()
}

// Parse splits a postgres:// or postgresql:// URL into a Descriptor.
// Missing parts get the usual defaults: port 5432, database "postgres",
// sslmode "require". Returns false for any other string.
func Parse(raw string) (Descriptor, bool) {
	if !strings.HasPrefix(raw, "postgres://") && !strings.HasPrefix(raw, "postgresql://") {
		return Descriptor{}, false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Descriptor{}, false
	}

	d := Descriptor{
		Host:     u.Hostname(),
		Port:     u.Port(),
		Database: strings.TrimPrefix(u.Path, "/"),
		SSLMode:  u.Query().Get("sslmode"),
	}
	if u.User != nil {
		d.User = u.User.Username()
		d.Password, _ = u.User.Password()
	}
	if d.Port == "" {
		d.Port = "5432"
	}
	if d.Database == "" {
		d.Database = "postgres"
	}
	if d.SSLMode == "" {
		d.SSLMode = "require"
	}
	return d, true
}

// DSN renders the descriptor in libpq keyword/value form.
func (d Descriptor) DSN() string {
	parts := make([]string, 0, 6)
	add := func(key, value string) {
		if value == "" {
			return
		}
		parts = append(parts, fmt.Sprintf("%s=%s", key, quoteValue(value)))
	}
	add("host", d.Host)
	add("port", d.Port)
	add("dbname", d.Database)
	add("user", d.User)
	add("password", d.Password)
	add("sslmode", d.SSLMode)
	return strings.Join(parts, " ")
}

// quoteValue wraps values libpq cannot take bare in single quotes,
// escaping backslashes and quotes.
func quoteValue(v string) string {
	if !strings.ContainsAny(v, " '\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
