package sqlengine

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	timestampLayout = "2006-01-02 15:04:05.000000-07:00"
	dateLayout      = "2006-01-02"
)

// scanLayouts are tried in order when a driver hands back a textual timestamp.
var scanLayouts = []string{
	timestampLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	dateLayout,
}

// formatTimestamp renders a timestamp for storage, nil for the zero time.
// The layout has a fixed width in UTC, so textual comparison in SQLite orders like time does.
func formatTimestamp(t time.Time) any {
	if t.IsZero() {
		return nil
	}

	return t.UTC().Format(timestampLayout)
}

// formatDate renders a calendar date for storage, nil for the zero time.
func formatDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}

	return t.Format(dateLayout)
}

// nullTimestamp scans timestamps and dates from any of the supported drivers.
// pgx and lib/pq return time.Time, SQLite returns text.
type nullTimestamp struct {
	Time time.Time
}

// Scan implements sql.Scanner.
func (n *nullTimestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		n.Time = time.Time{}
		return nil
	case time.Time:
		n.Time = v.UTC()
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", value)
	}
}

// Value implements driver.Valuer.
func (n nullTimestamp) Value() (driver.Value, error) {
	return formatTimestamp(n.Time), nil
}

func (n *nullTimestamp) parse(s string) error {
	if s == "" {
		n.Time = time.Time{}
		return nil
	}

	for _, layout := range scanLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			n.Time = t.UTC()
			return nil
		}
	}

	return fmt.Errorf("unparsable timestamp %q", s)
}
