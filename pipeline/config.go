// Package pipeline implements the orchestrator described in §4.G: a
// fixed, grouped pass ordering, multipass convergence, preset bundles,
// and the JSON-compatible configuration shape from §6.
package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/svgshrink/svgshrink/pass"
	"github.com/svgshrink/svgshrink/pathdata"
	"github.com/svgshrink/svgshrink/svgerr"
)

// PassSetting records whether one pass runs and the options it runs
// with (nil uses the pass's own zero-value default).
type PassSetting struct {
	Enabled bool
	Options any
}

// Config is the pipeline's fully-resolved configuration: one
// PassSetting per registered pass identifier (§6's "unknown keys are
// rejected" is enforced at decode time, not here), plus the multipass
// iteration cap.
type Config struct {
	Passes       map[string]PassSetting
	MultipassCap int
}

// document carries the top-level "optimisation" envelope from §6.
type document struct {
	Optimisation json.RawMessage `json:"optimisation"`
}

// ParseConfig decodes the §6 JSON configuration shape. Absent
// "optimisation" yields DefaultConfig(); an "extends" key selects a
// preset bundle to start from before per-pass overrides are applied.
// Unknown pass keys and out-of-range precision values are reported as
// Configuration errors rather than silently ignored, per §6 and §7.
func ParseConfig(data []byte) (*Config, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, svgerr.Wrap(svgerr.Configuration, err)
	}
	if len(doc.Optimisation) == 0 {
		return DefaultConfig(), nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc.Optimisation, &fields); err != nil {
		return nil, svgerr.Wrap(svgerr.Configuration, err)
	}

	cfg := DefaultConfig()
	if extendsRaw, ok := fields["extends"]; ok {
		var extends string
		if err := json.Unmarshal(extendsRaw, &extends); err != nil {
			return nil, svgerr.Wrap(svgerr.Configuration, err)
		}
		preset, err := Preset(extends)
		if err != nil {
			return nil, err
		}
		cfg = preset
		delete(fields, "extends")
	}

	for name, raw := range fields {
		if _, known := pass.Registry[name]; !known {
			return nil, svgerr.New(svgerr.Configuration, fmt.Sprintf("unknown pass %q", name))
		}
		setting, err := decodePassSetting(name, raw)
		if err != nil {
			return nil, err
		}
		cfg.Passes[name] = setting
	}
	return cfg, nil
}

// decodePassSetting decodes one per-pass config value: either a bare
// bool (enable/disable with default options) or an options object
// (implicitly enabled), per §6.
func decodePassSetting(name string, raw json.RawMessage) (PassSetting, error) {
	var enabled bool
	if err := json.Unmarshal(raw, &enabled); err == nil {
		return PassSetting{Enabled: enabled}, nil
	}

	decode, ok := passOptionDecoders[name]
	if !ok {
		// No options type registered for this pass: any non-bool value
		// is invalid configuration.
		return PassSetting{}, svgerr.New(svgerr.Configuration, fmt.Sprintf("pass %q takes no options", name))
	}
	opts, err := decode(raw)
	if err != nil {
		return PassSetting{}, err
	}
	return PassSetting{Enabled: true, Options: opts}, nil
}

// passOptionDecoders maps a pass identifier to a function decoding its
// options object, validating §6's precision bound along the way.
var passOptionDecoders = map[string]func(json.RawMessage) (any, error){
	"cleanupAttrs": func(raw json.RawMessage) (any, error) {
		var o pass.CleanupAttrsOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, svgerr.Wrap(svgerr.Configuration, err)
		}
		return o, nil
	},
	"cleanupNumericValues": decodeNumericOptions,
	"cleanupListOfValues":  decodeNumericOptions,
	"cleanupIds": func(raw json.RawMessage) (any, error) {
		var o pass.CleanupIdsOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, svgerr.Wrap(svgerr.Configuration, err)
		}
		return o, nil
	},
	"removeAttributesBySelector": func(raw json.RawMessage) (any, error) {
		var o pass.RemoveAttributesBySelectorOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, svgerr.Wrap(svgerr.Configuration, err)
		}
		return o, nil
	},
	"convertPathData": func(raw json.RawMessage) (any, error) {
		var o pathdata.CanonOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, svgerr.Wrap(svgerr.Configuration, err)
		}
		if err := validatePrecision(o.Precision, true); err != nil {
			return nil, err
		}
		return o, nil
	},
}

func decodeNumericOptions(raw json.RawMessage) (any, error) {
	var o pass.CleanupNumericValuesOptions
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, svgerr.Wrap(svgerr.Configuration, err)
	}
	if err := validatePrecision(o.Precision, false); err != nil {
		return nil, err
	}
	return o, nil
}

// validatePrecision enforces §6: precision is 0..8 everywhere, and
// path-data precision above 5 is specifically rejected as
// CleanupValuesPrecision (the historical SVGO option name this bound
// is inherited from).
func validatePrecision(p int, isPathData bool) error {
	if p == 0 {
		return nil // unset; the pass applies its own default
	}
	if p < 0 || p > 8 {
		return svgerr.New(svgerr.Configuration, fmt.Sprintf("precision %d out of range 0..8", p))
	}
	if isPathData && p > 5 {
		return svgerr.New(svgerr.Configuration, fmt.Sprintf("CleanupValuesPrecision: path data precision %d exceeds maximum of 5", p))
	}
	return nil
}
