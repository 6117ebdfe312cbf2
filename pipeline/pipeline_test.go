package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/svgerr"
)

const sampleDoc = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
  <!-- a comment -->
  <title>Untitled</title>
  <g fill="red"><rect x="0.123456" y="0" width="10" height="10"/></g>
</svg>`

func TestRunDefaultConfigOptimizes(t *testing.T) {
	res, err := Run(strings.NewReader(sampleDoc), ParsePermissive, DefaultConfig(), dom.DefaultWriteOptions())
	require.NoError(t, err)
	assert.NotContains(t, string(res.Output), "<!--")
	assert.NotContains(t, string(res.Output), "<title>")
	assert.NotContains(t, string(res.Output), "width=\"100\"")
	assert.Contains(t, string(res.Output), "viewBox")
}

func TestRunNoneConfigIsIdentityModuloParsing(t *testing.T) {
	res, err := Run(strings.NewReader(sampleDoc), ParsePermissive, NoneConfig(), dom.DefaultWriteOptions())
	require.NoError(t, err)
	assert.Contains(t, string(res.Output), "<!--")
	assert.Contains(t, string(res.Output), "<title>")
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	first, err := Run(strings.NewReader(sampleDoc), ParsePermissive, cfg, dom.DefaultWriteOptions())
	require.NoError(t, err)
	second, err := Run(strings.NewReader(string(first.Output)), ParsePermissive, cfg, dom.DefaultWriteOptions())
	require.NoError(t, err)
	assert.Equal(t, string(first.Output), string(second.Output))
}

func TestRunRespectsMultipassCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MultipassCap = 1
	res, err := Run(strings.NewReader(sampleDoc), ParsePermissive, cfg, dom.DefaultWriteOptions())
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Passes, 1)
}

func TestParseConfigDefaultsWhenAbsent(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, cfg.Passes["removeComments"].Enabled)
}

func TestParseConfigExtendsSafe(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"optimisation":{"extends":"safe"}}`))
	require.NoError(t, err)
	assert.True(t, cfg.Passes["removeComments"].Enabled)
	assert.False(t, cfg.Passes["removeHiddenElems"].Enabled)
}

func TestParseConfigPerPassOverride(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"optimisation":{"cleanupIds":false,"convertPathData":{"precision":4}}}`))
	require.NoError(t, err)
	assert.False(t, cfg.Passes["cleanupIds"].Enabled)
	assert.True(t, cfg.Passes["convertPathData"].Enabled)
}

func TestParseConfigRejectsUnknownPass(t *testing.T) {
	_, err := ParseConfig([]byte(`{"optimisation":{"notAPass":true}}`))
	require.Error(t, err)
	var svgErr *svgerr.Error
	require.ErrorAs(t, err, &svgErr)
	assert.Equal(t, svgerr.Configuration, svgErr.Kind)
}

func TestParseConfigRejectsHighPathPrecision(t *testing.T) {
	_, err := ParseConfig([]byte(`{"optimisation":{"convertPathData":{"precision":6}}}`))
	require.Error(t, err)
	var svgErr *svgerr.Error
	require.ErrorAs(t, err, &svgErr)
	assert.Equal(t, svgerr.Configuration, svgErr.Kind)
}

func TestRunBatchPreservesOrder(t *testing.T) {
	jobs := []Job{
		{Name: "a", Data: []byte(sampleDoc)},
		{Name: "b", Data: []byte(`<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`)},
	}
	results := RunBatch(jobs, ParsePermissive, DefaultConfig(), dom.DefaultWriteOptions())
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, "b", results[1].Name)
	for _, r := range results {
		require.NoError(t, r.Err)
	}
}
