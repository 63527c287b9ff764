package chc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	require.NoError(t, o.Validate())

	globals := map[string]string{}
	for _, p := range o.globalParams() {
		globals[p.key] = p.text()
	}
	assert.Equal(t, map[string]string{
		"rewriter.pull_cheap_ite": "true",
		"rlimit":                  "1000000",
	}, globals)

	want := []param{
		{"fp.engine", "spacer"},
		{"fp.spacer.q3.use_qgen", true},
		{"fp.spacer.mbqi", false},
		{"fp.spacer.ground_pobs", false},
		{"fp.xform.slice", false},
		{"fp.xform.inline_linear", false},
		{"fp.xform.inline_eager", false},
	}
	if diff := cmp.Diff(want, o.engineParams(), cmp.AllowUnexported(param{})); diff != "" {
		t.Errorf("engine params (-want +got):\n%s", diff)
	}
}

func TestExtraParamsAreTypedAndSorted(t *testing.T) {
	o := DefaultOptions()
	o.Extra = map[string]string{
		"fp.spacer.max_level":    "40",
		"fp.print_statistics":    "true",
		"fp.spacer.arith.solver": "six",
	}

	ps := o.engineParams()
	extra := ps[len(ps)-3:]
	assert.Equal(t, []param{
		{"fp.print_statistics", true},
		{"fp.spacer.arith.solver", "six"},
		{"fp.spacer.max_level", uint(40)},
	}, extra)
}

func TestParseParamValue(t *testing.T) {
	cases := []struct {
		in   string
		want interface{}
	}{
		{"true", true},
		{"false", false},
		{"0", uint(0)},
		{"17", uint(17)},
		{"-1", "-1"},
		{"True", "True"},
		{"spacer", "spacer"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, parseParamValue(tc.in))
		})
	}
}

func writeOptions(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOptionsOverridesDefaults(t *testing.T) {
	path := writeOptions(t, `
rlimit: 5000
spacer:
  mbqi: true
xform:
  slice: true
extra:
  fp.spacer.max_level: "12"
`)

	o, err := LoadOptions(path)
	require.NoError(t, err)

	want := DefaultOptions()
	want.ResourceLimit = 5000
	want.Spacer.MBQI = true
	want.Transforms.Slice = true
	want.Extra = map[string]string{"fp.spacer.max_level": "12"}
	if diff := cmp.Diff(want, o); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadOptions(writeOptions(t, "rlimit: [1, 2"))
	assert.ErrorContains(t, err, "parse options")

	_, err = LoadOptions(writeOptions(t, "engine: \"\"\n"))
	assert.ErrorContains(t, err, "engine must be set")

	_, err = LoadOptions(writeOptions(t, "rlimit: 0\n"))
	assert.ErrorContains(t, err, "resource limit")
}

func TestNewConfig(t *testing.T) {
	c := newConfig(nil)
	assert.Equal(t, DefaultOptions(), c.opts)
	require.NotNil(t, c.logger)

	custom := DefaultOptions()
	custom.Engine = "bmc"
	logger := zap.NewExample()
	c = newConfig([]Option{WithOptions(custom), WithLogger(logger)})
	assert.Equal(t, "bmc", c.opts.Engine)
	assert.Same(t, logger, c.logger)

	c = newConfig([]Option{WithLogger(logger), WithLogger(nil)})
	assert.Same(t, logger, c.logger)
}

func TestCheckResultString(t *testing.T) {
	assert.Equal(t, "SATISFIABLE", Satisfiable.String())
	assert.Equal(t, "UNSATISFIABLE", Unsatisfiable.String())
	assert.Equal(t, "UNKNOWN", Unknown.String())
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "CheckResult(?)", CheckResult(42).String())
}
