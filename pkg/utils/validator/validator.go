package validator

import "github.com/elatovg/gce-snapshots/pkg/parser"

func NewValidator() Validator {
	return &ValidatorOptions{
		supportedFormats: map[string]parser.ParserType{
			"hcl":  parser.HCL,
			"json": parser.JSON,
		},
	}
}

type ValidatorOptions struct {
	supportedFormats map[string]parser.ParserType
}

// Validator checks run parameters before any provider call is made.
type Validator interface {
	ValidateProject(project string) error
	ValidateInstanceName(name string) error
	ValidateZone(zone string) error
	ValidateRetentionDays(raw string) (int, error)
	ValidateOffset(offset string) error
	ValidateFormat(format string) (parser.ParserType, error)
}
