package parser

import (
	"fmt"

	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"
)

type HCLParser struct{}

func (p *HCLParser) Parse(content []byte) (*Profile, error) {
	log := logger.WithField("component", "profile-parser")
	log.Debug("Parsing HCL profile")

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, "profile.hcl")
	if diags.HasErrors() {
		log.Error("HCL parsing failed",
			zap.String("error", diags.Error()),
			zap.Int("error_count", len(diags)))
		for _, diag := range diags {
			log.Debug("Parsing diagnostic",
				zap.String("summary", diag.Summary),
				zap.String("detail", diag.Detail),
				zap.String("position", fmt.Sprintf("%v", diag.Subject)))
		}
		return nil, errors.ErrHCLParseFailure{Diagnostics: diags}
	}

	var profile Profile
	diags = gohcl.DecodeBody(file.Body, nil, &profile)
	if diags.HasErrors() {
		log.Error("HCL decoding failed",
			zap.String("error", diags.Error()),
			zap.Int("error_count", len(diags)))
		return nil, errors.ErrHCLDecodeFailure{Diagnostics: diags}
	}

	log.Debug("Parsed HCL profile")
	return &profile, nil
}
