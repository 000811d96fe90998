package retention

import (
	"fmt"
	"regexp"
	"time"

	cerrors "github.com/elatovg/gce-snapshots/pkg/errors"
)

// TimestampLayout is the provider creation timestamp format, e.g.
// 2023-06-01T09:14:27.361-07:00.
const TimestampLayout = "2006-01-02T15:04:05.999999999-07:00"

var (
	timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{1,9}([+-]\d{2}:\d{2})$`)
	offsetPattern    = regexp.MustCompile(`^[+-]\d{2}:\d{2}$`)
)

// ValidOffset reports whether s looks like a fixed UTC offset such as -08:00.
func ValidOffset(s string) bool {
	return offsetPattern.MatchString(s)
}

// TimestampParser parses creation timestamps. With an empty ExpectedOffset
// the offset is taken from each timestamp; otherwise any other offset is
// rejected.
type TimestampParser struct {
	ExpectedOffset string
}

func (p TimestampParser) Parse(raw string) (time.Time, error) {
	m := timestampPattern.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, cerrors.NewTimestampParse(raw, "want YYYY-MM-DDTHH:MM:SS.fraction±HH:MM", nil)
	}
	if p.ExpectedOffset != "" && m[1] != p.ExpectedOffset {
		return time.Time{}, cerrors.NewTimestampParse(raw, fmt.Sprintf("offset %s, want %s", m[1], p.ExpectedOffset), nil)
	}

	t, err := time.Parse(TimestampLayout, raw)
	if err != nil {
		return time.Time{}, cerrors.NewTimestampParse(raw, "", err)
	}
	return t, nil
}
