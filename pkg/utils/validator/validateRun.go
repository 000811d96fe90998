package validator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/elatovg/gce-snapshots/internal/retention"
	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/parser"
)

// Matches Compute Engine zones (us-central1-f) and EC2 availability
// zones (us-east-1a).
var zonePattern = regexp.MustCompile(`^[a-z]+(-[a-z0-9]+)+$`)

func (v *ValidatorOptions) ValidateProject(project string) error {
	if strings.TrimSpace(project) == "" {
		return errors.NewInputValidation("project", project, errors.ErrEmptyValue)
	}
	return nil
}

func (v *ValidatorOptions) ValidateInstanceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewInputValidation("instance name", name, errors.ErrEmptyValue)
	}
	return nil
}

func (v *ValidatorOptions) ValidateZone(zone string) error {
	if zone == "" {
		return errors.NewInputValidation("zone", zone, errors.ErrEmptyValue)
	}
	if !zonePattern.MatchString(zone) {
		return errors.NewInputValidation("zone", zone, errors.ErrZoneFormat)
	}
	return nil
}

// ValidateRetentionDays parses the --days value. Zero is allowed and
// deletes everything older than the current instant.
func (v *ValidatorOptions) ValidateRetentionDays(raw string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.NewInputValidation("days", raw, errors.ErrNotInteger)
	}
	if days < 0 {
		return 0, errors.NewInputValidation("days", raw, errors.ErrNegative)
	}
	return days, nil
}

// ValidateOffset accepts an empty offset, meaning each timestamp keeps its own.
func (v *ValidatorOptions) ValidateOffset(offset string) error {
	if offset == "" || retention.ValidOffset(offset) {
		return nil
	}
	return errors.NewInputValidation("offset", offset, errors.ErrOffsetFormat)
}

// ValidateFormat maps a --format value to a parser type. Empty means infer
// from the profile file name.
func (v *ValidatorOptions) ValidateFormat(format string) (parser.ParserType, error) {
	if format == "" {
		return "", nil
	}
	t, ok := v.supportedFormats[strings.ToLower(format)]
	if !ok {
		return parser.Unknown, errors.NewInputValidation("format", format, errors.ErrFormatFlag)
	}
	return t, nil
}
