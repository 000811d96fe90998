package parser

import (
	"bytes"
	"encoding/json"

	"github.com/elatovg/gce-snapshots/pkg/errors"
)

type JSONParser struct{}

// Parse rejects unknown keys so a typo does not silently fall back to a
// default.
func (p *JSONParser) Parse(content []byte) (*Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()

	var profile Profile
	if err := dec.Decode(&profile); err != nil {
		return nil, errors.ErrParse{Err: err}
	}
	return &profile, nil
}
