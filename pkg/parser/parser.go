package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/elatovg/gce-snapshots/pkg/errors"
)

// Profile carries run defaults read from a file. A nil field was not set
// and leaves the built-in default in place.
type Profile struct {
	Zone            *string `hcl:"zone,optional" json:"zone,omitempty"`
	Instance        *string `hcl:"instance,optional" json:"instance,omitempty"`
	RetentionDays   *int    `hcl:"retention_days,optional" json:"retention_days,omitempty"`
	TimestampOffset *string `hcl:"timestamp_offset,optional" json:"timestamp_offset,omitempty"`
	Wait            *bool   `hcl:"wait,optional" json:"wait,omitempty"`
}

type Parser interface {
	Parse(content []byte) (*Profile, error)
}

type ParserType string

const (
	HCL     ParserType = "hcl"
	JSON    ParserType = "json"
	Unknown ParserType = "unknown"
)

func NewParser(t ParserType) (Parser, error) {
	switch t {
	case HCL:
		return &HCLParser{}, nil
	case JSON:
		return &JSONParser{}, nil
	default:
		return nil, errors.NewUnsupportedFormat(string(t))
	}
}

// TypeFromPath guesses the format from the file extension: .json is JSON
// and everything else is HCL.
func TypeFromPath(path string) ParserType {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return HCL
}

// LoadProfile reads and parses path. An empty format is inferred from the
// extension.
func LoadProfile(path string, format ParserType) (*Profile, error) {
	if format == "" {
		format = TypeFromPath(path)
	}
	p, err := NewParser(format)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewReadFileError(path, err)
	}
	return p.Parse(content)
}
