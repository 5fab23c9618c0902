package ingest

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed layouts.yaml
var defaultLayoutsYAML []byte

// Layout ids of the built-in source-system layouts. Detector predicates
// and row transformers are registered against these ids; everything
// else about a layout (display name, required sheets, sheet-category
// mappings) is configuration.
const (
	LayoutOrangeCallSMS = "orange_call_sms"
	LayoutSharedIMEI    = "shared_imei"
	LayoutMTNStandard   = "mtn_standard"
)

// LayoutConfig describes one recognized source-system layout.
type LayoutConfig struct {
	ID          string   `yaml:"id" validate:"required"`
	Name        string   `yaml:"name" validate:"required"`
	Required    []string `yaml:"required" validate:"required,min=1"`
	Subscribers []string `yaml:"subscribers"`
	Listings    []string `yaml:"listings" validate:"required,min=1"`
}

// Config is the full layout registry configuration: the closed set of
// layouts plus the sheet-name alias lists shared between them.
type Config struct {
	Aliases map[string][]string `yaml:"aliases"`
	Layouts []LayoutConfig      `yaml:"layouts" validate:"required,min=1,dive"`
}

// RowTransform rewrites a raw row from a category-specific shape onto
// the standard listing column names. Pure: input rows are not mutated.
type RowTransform func(Row) Row

// detector decides whether a layout applies to a source, given the
// sheet names present.
type detector func(r *Registry, sheetNames []string) bool

// Registry holds the configured layouts together with their in-code
// detector predicates and transformers. Layouts are tried in
// configuration order; the first matching detector wins.
type Registry struct {
	cfg          Config
	detectors    map[string]detector
	transformers map[string]RowTransform // keyed by canonical sheet name
}

var configValidator = validator.New()

// NewRegistry builds a registry from the embedded default layout
// configuration.
func NewRegistry() *Registry {
	cfg, err := parseConfig(defaultLayoutsYAML)
	if err != nil {
		// The embedded config ships with the binary; failing to parse
		// it is a build defect.
		panic(fmt.Sprintf("ingest: embedded layout config invalid: %v", err))
	}
	r, err := NewRegistryWithConfig(cfg)
	if err != nil {
		panic(fmt.Sprintf("ingest: embedded layout config invalid: %v", err))
	}
	return r
}

// NewRegistryWithConfig builds a registry from an explicit
// configuration, typically loaded with LoadConfig.
func NewRegistryWithConfig(cfg Config) (*Registry, error) {
	if err := configValidator.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("layout config: %w", err)
	}

	r := &Registry{
		cfg: cfg,
		detectors: map[string]detector{
			LayoutOrangeCallSMS: detectOrange,
			LayoutSharedIMEI:    detectSharedIMEI,
			LayoutMTNStandard:   detectSingleListing,
		},
		transformers: map[string]RowTransform{
			"Listing SMS": TransformSMSRow,
		},
	}

	for _, layout := range cfg.Layouts {
		if _, ok := r.detectors[layout.ID]; !ok {
			return nil, fmt.Errorf("layout config: no detector registered for layout %q", layout.ID)
		}
	}
	return r, nil
}

// LoadConfig reads a layout configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("layout config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("layout config: %w", err)
	}
	return cfg, nil
}

// Layouts returns the configured layouts in detection order.
func (r *Registry) Layouts() []LayoutConfig {
	return r.cfg.Layouts
}

// matchSheet resolves a canonical sheet name against the names present
// in a source, honoring the configured aliases.
func (r *Registry) matchSheet(sheetNames []string, want string) (string, bool) {
	return MatchName(sheetNames, want, r.cfg.Aliases[want])
}

func (r *Registry) hasSheet(sheetNames []string, want string) bool {
	_, ok := r.matchSheet(sheetNames, want)
	return ok
}

// Detect returns the first configured layout whose detector matches the
// source's sheet names. Deterministic: same input, same layout.
func (r *Registry) Detect(sheetNames []string) (LayoutConfig, bool) {
	for _, layout := range r.cfg.Layouts {
		if r.detectors[layout.ID](r, sheetNames) {
			return layout, true
		}
	}
	return LayoutConfig{}, false
}

// Validate resolves each of the layout's required sheets against the
// actual sheet names. It returns the canonical-to-actual name mapping
// for the ones found and the list of still-missing required sheets.
func (r *Registry) Validate(layout LayoutConfig, sheetNames []string) (found map[string]string, missing []string) {
	found = make(map[string]string, len(layout.Required))
	for _, want := range layout.Required {
		if actual, ok := r.matchSheet(sheetNames, want); ok {
			found[want] = actual
		} else {
			missing = append(missing, want)
		}
	}
	return found, missing
}

// Built-in detectors. The Orange export splits calls and SMS into two
// listing sheets; the shared-IMEI export has no subscriber roster; the
// MTN export is the plain single-listing form.

func detectOrange(r *Registry, sheetNames []string) bool {
	return r.hasSheet(sheetNames, "Listing Appel") && r.hasSheet(sheetNames, "Listing SMS")
}

func detectSharedIMEI(r *Registry, sheetNames []string) bool {
	return r.hasSheet(sheetNames, "IMEI partagé") &&
		!r.hasSheet(sheetNames, "Abonné")
}

func detectSingleListing(r *Registry, sheetNames []string) bool {
	return r.hasSheet(sheetNames, "Listing")
}
