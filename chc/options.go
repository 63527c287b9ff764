package chc

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultResourceLimit bounds the engine's work per query in Z3 resource
// units. It is the only cancellation mechanism a query has.
const DefaultResourceLimit = 1000000

// Options configures the engine. Defaults favour proofs that map back to a
// faithful counterexample over solving speed: transformations that rewrite
// the rule set (slicing, inlining) are off.
type Options struct {
	// ResourceLimit and PullCheapIte are process-wide Z3 settings. Setting
	// them affects every Z3 context created afterwards in the process, not
	// only this Interface.
	ResourceLimit uint `yaml:"rlimit"`
	PullCheapIte  bool `yaml:"pull_cheap_ite"`

	Engine     string           `yaml:"engine"`
	Spacer     SpacerOptions    `yaml:"spacer"`
	Transforms TransformOptions `yaml:"xform"`

	// Extra holds further fixedpoint parameters by full name, e.g.
	// "fp.spacer.max_level". Values "true"/"false" are booleans, unsigned
	// integers are numbers, anything else is a symbol.
	Extra map[string]string `yaml:"extra"`
}

// SpacerOptions tunes the Spacer engine for array and loop reasoning.
type SpacerOptions struct {
	QuantifiedGeneralization bool `yaml:"q3_use_qgen"`
	MBQI                     bool `yaml:"mbqi"`
	GroundPobs               bool `yaml:"ground_pobs"`
}

// TransformOptions toggles rule-set preprocessing.
type TransformOptions struct {
	Slice        bool `yaml:"slice"`
	InlineLinear bool `yaml:"inline_linear"`
	InlineEager  bool `yaml:"inline_eager"`
}

// DefaultOptions returns the configuration used when New is called without
// WithOptions.
func DefaultOptions() Options {
	return Options{
		ResourceLimit: DefaultResourceLimit,
		PullCheapIte:  true,
		Engine:        "spacer",
		Spacer: SpacerOptions{
			QuantifiedGeneralization: true,
			MBQI:                     false,
			GroundPobs:               false,
		},
		Transforms: TransformOptions{
			Slice:        false,
			InlineLinear: false,
			InlineEager:  false,
		},
	}
}

// LoadOptions reads YAML from path on top of DefaultOptions, so a file only
// needs the keys it changes.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("chc: parse options %s: %w", path, err)
	}
	return opts, opts.Validate()
}

// Validate rejects configurations the engine cannot run with.
func (o Options) Validate() error {
	if o.Engine == "" {
		return errors.New("chc: engine must be set")
	}
	if o.ResourceLimit == 0 {
		return errors.New("chc: resource limit must be positive")
	}
	return nil
}

// param is one engine setting; value is a bool, uint or string.
type param struct {
	key   string
	value interface{}
}

func (p param) text() string {
	return fmt.Sprint(p.value)
}

func (o Options) globalParams() []param {
	return []param{
		{"rewriter.pull_cheap_ite", o.PullCheapIte},
		{"rlimit", o.ResourceLimit},
	}
}

func (o Options) engineParams() []param {
	ps := []param{
		{"fp.engine", o.Engine},
		{"fp.spacer.q3.use_qgen", o.Spacer.QuantifiedGeneralization},
		{"fp.spacer.mbqi", o.Spacer.MBQI},
		{"fp.spacer.ground_pobs", o.Spacer.GroundPobs},
		{"fp.xform.slice", o.Transforms.Slice},
		{"fp.xform.inline_linear", o.Transforms.InlineLinear},
		{"fp.xform.inline_eager", o.Transforms.InlineEager},
	}
	keys := make([]string, 0, len(o.Extra))
	for k := range o.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ps = append(ps, param{k, parseParamValue(o.Extra[k])})
	}
	return ps
}

func parseParamValue(s string) interface{} {
	if s == "true" || s == "false" {
		return s == "true"
	}
	if n, err := strconv.ParseUint(s, 10, 0); err == nil {
		return uint(n)
	}
	return s
}

type config struct {
	opts   Options
	logger *zap.Logger
}

// Option customises New.
type Option func(*config)

// WithOptions replaces the engine configuration.
func WithOptions(o Options) Option {
	return func(c *config) { c.opts = o }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(options []Option) config {
	c := config{opts: DefaultOptions(), logger: zap.NewNop()}
	for _, o := range options {
		o(&c)
	}
	return c
}
