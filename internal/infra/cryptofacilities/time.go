package cryptofacilities

import (
	"fmt"
	"time"
)

// wireTimeLayout is the exchange's only timestamp format: millisecond
// precision, milliseconds always zero-padded to 3 digits, literal Z.
// e.g. 2016-02-25T09:45:53.818Z
const wireTimeLayout = "2006-01-02T15:04:05.000Z"

// ParseTime parses an exchange timestamp. The format is strict: exactly
// three fractional digits and a literal Z.
func ParseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(wireTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatTime renders a timestamp in the exchange's wire format, truncating
// any sub-millisecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(wireTimeLayout)
}

// wireTime decodes JSON string timestamps during response unmarshalling.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp is not a JSON string: %s", data)
	}
	parsed, err := ParseTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t wireTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + FormatTime(t.Time) + `"`), nil
}
