package pipeline

import (
	"fmt"

	"github.com/svgshrink/svgshrink/pass"
	"github.com/svgshrink/svgshrink/svgerr"
)

// Preset bundle names recognized by the "extends" configuration key.
const (
	PresetDefault = "default"
	PresetSafe    = "safe"
	PresetNone    = "none"
)

// safePasses are the passes §4.G calls out as unable to visually alter
// the document: structural cleanup, whitespace/formatting, and
// canonicalization, but none of the content-removing or
// geometry-approximating passes.
var safePasses = map[string]bool{
	"cleanupAttrs":                  true,
	"cleanupNumericValues":          true,
	"cleanupListOfValues":           true,
	"convertColors":                 true,
	"convertPathData":               true,
	"convertTransform":              true,
	"minifyStyles":                  true,
	"removeComments":                true,
	"removeDoctype":                 true,
	"removeEmptyAttrs":              true,
	"removeEmptyContainers":         true,
	"removeEmptyText":               true,
	"removeXmlProcInst":             true,
	"sortAttrs":                     true,
	"sortDefsChildren":              true,
	"removeEditorsNSData":           true,
	"removeUnusedNS":                true,
	"removeDeprecatedAttrs":         true,
	"mergePaths":                    true,
	"collapseGroups":                true,
	"moveElemsAttrsToGroup":         true,
	"moveGroupAttrsToElems":         true,
}

func newConfig(enabled map[string]bool) *Config {
	cfg := &Config{Passes: map[string]PassSetting{}, MultipassCap: 10}
	for id := range pass.Registry {
		cfg.Passes[id] = PassSetting{Enabled: enabled[id]}
	}
	return cfg
}

// DefaultConfig enables every registered pass with its own default
// options, per §4.G's "default: all safe-by-default passes with
// default options" — read here as "every pass", since the distinction
// from "safe" is precisely which passes are excluded, not a second
// independent list.
func DefaultConfig() *Config {
	all := map[string]bool{}
	for id := range pass.Registry {
		all[id] = true
	}
	return newConfig(all)
}

// SafeConfig enables only the passes that cannot visually change a
// conforming document.
func SafeConfig() *Config {
	return newConfig(safePasses)
}

// NoneConfig enables no passes; callers build up a configuration from
// scratch by enabling individual ones.
func NoneConfig() *Config {
	return newConfig(nil)
}

// Preset resolves a bundle name to its Config.
func Preset(name string) (*Config, error) {
	switch name {
	case PresetDefault:
		return DefaultConfig(), nil
	case PresetSafe:
		return SafeConfig(), nil
	case PresetNone:
		return NoneConfig(), nil
	default:
		return nil, svgerr.New(svgerr.Configuration, fmt.Sprintf("unknown preset %q", name))
	}
}
