// Package types provides type definitions for structured data used throughout the hirelens system.
package types

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Default option values applied when a request leaves them unset. RoleLevel
// has no default; it is advisory and stays empty unless a caller sets it.
const (
	DefaultATSType          = "generic"
	DefaultRecruiterPersona = "generic"
)

// AnalyzeOptions tune a single analysis run. The tag fields are recorded
// into the stage outputs so downstream consumers can see which profile
// produced them; the Include flags control how much of the intermediate
// data is echoed back in API responses.
type AnalyzeOptions struct {
	ATSType                     string `json:"ats_type,omitempty" mapstructure:"ats_type"`
	RecruiterPersona            string `json:"recruiter_persona,omitempty" mapstructure:"recruiter_persona"`
	RoleLevel                   string `json:"role_level,omitempty" mapstructure:"role_level"`
	IncludeParsedResume         bool   `json:"include_parsed_resume,omitempty" mapstructure:"include_parsed_resume"`
	IncludeParsedJobDescription bool   `json:"include_parsed_job_description,omitempty" mapstructure:"include_parsed_job_description"`
	IncludeFeatureVectors       bool   `json:"include_feature_vectors,omitempty" mapstructure:"include_feature_vectors"`
}

// DefaultAnalyzeOptions returns the options used when a caller provides
// none.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		ATSType:          DefaultATSType,
		RecruiterPersona: DefaultRecruiterPersona,
	}
}

// ApplyDefaults fills any unset tag with its default value.
func (o *AnalyzeOptions) ApplyDefaults() {
	if o.ATSType == "" {
		o.ATSType = DefaultATSType
	}
	if o.RecruiterPersona == "" {
		o.RecruiterPersona = DefaultRecruiterPersona
	}
}

// DecodeAnalyzeOptions builds options from a loosely-typed map, starting
// from the defaults so unknown or missing keys fall back cleanly.
func DecodeAnalyzeOptions(raw map[string]any) (AnalyzeOptions, error) {
	opts := DefaultAnalyzeOptions()
	if len(raw) == 0 {
		return opts, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &opts,
		TagName: "mapstructure",
	})
	if err != nil {
		return opts, fmt.Errorf("building options decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return opts, fmt.Errorf("decoding analysis options: %w", err)
	}
	opts.ApplyDefaults()
	return opts, nil
}
