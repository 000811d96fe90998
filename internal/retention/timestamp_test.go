package retention_test

import (
	"errors"
	"testing"
	"time"

	"github.com/elatovg/gce-snapshots/internal/retention"
	cerrors "github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampParserParse(t *testing.T) {
	testCases := []struct {
		name     string
		offset   string
		raw      string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "pacific daylight",
			raw:      "2023-06-01T09:14:27.361-07:00",
			expected: time.Date(2023, 6, 1, 16, 14, 27, 361000000, time.UTC),
		},
		{
			name:     "pacific standard",
			raw:      "2023-01-10T08:00:00.000-08:00",
			expected: time.Date(2023, 1, 10, 16, 0, 0, 0, time.UTC),
		},
		{
			name:     "positive offset",
			raw:      "2023-01-10T08:00:00.5+05:30",
			expected: time.Date(2023, 1, 10, 2, 30, 0, 500000000, time.UTC),
		},
		{
			name:     "matching expected offset",
			offset:   "-08:00",
			raw:      "2023-01-10T08:00:00.000-08:00",
			expected: time.Date(2023, 1, 10, 16, 0, 0, 0, time.UTC),
		},
		{name: "missing fraction", raw: "2023-06-01T09:14:27-07:00", wantErr: true},
		{name: "zulu suffix", raw: "2023-06-01T09:14:27.361Z", wantErr: true},
		{name: "no offset", raw: "2023-06-01T09:14:27.361", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "garbage", raw: "yesterday", wantErr: true},
		{name: "out of range month", raw: "2023-13-01T09:14:27.361-07:00", wantErr: true},
		{name: "offset mismatch", offset: "-08:00", raw: "2023-06-01T09:14:27.361-07:00", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parser := retention.TimestampParser{ExpectedOffset: tc.offset}
			got, err := parser.Parse(tc.raw)

			if tc.wantErr {
				require.Error(t, err)
				var tsErr cerrors.ErrTimestampParse
				require.True(t, errors.As(err, &tsErr))
				assert.Equal(t, tc.raw, tsErr.Raw)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "got %s, want %s", got, tc.expected)
		})
	}
}

func TestTimestampParserKeepsOffset(t *testing.T) {
	got, err := retention.TimestampParser{}.Parse("2023-06-01T09:14:27.361-07:00")
	require.NoError(t, err)

	_, offset := got.Zone()
	assert.Equal(t, -7*3600, offset)
}

func TestValidOffset(t *testing.T) {
	assert.True(t, retention.ValidOffset("-08:00"))
	assert.True(t, retention.ValidOffset("+05:30"))
	assert.False(t, retention.ValidOffset("-8:00"))
	assert.False(t, retention.ValidOffset("PST"))
	assert.False(t, retention.ValidOffset(""))
}
