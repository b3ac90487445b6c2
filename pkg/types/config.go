package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// HTTPConfig holds HTTP settings for the fetch stage.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0"`
}

// FetchConfig holds settings for downloading raw input tables.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// RawDir is where downloaded tables are written.
	RawDir string `json:"raw_dir" yaml:"raw_dir" mapstructure:"raw_dir"`

	// Sources maps a local file name to the URL it is downloaded from.
	Sources map[string]string `json:"sources" yaml:"sources" mapstructure:"sources" validate:"dive,keys,required,endkeys,url"`

	// Delay is the pause between consecutive downloads.
	Delay time.Duration `json:"delay" yaml:"delay" mapstructure:"delay"`
}

// InputConfig names the raw table files read by the load stage. An empty
// path disables that source.
type InputConfig struct {
	NUBASE       string `json:"nubase" yaml:"nubase" mapstructure:"nubase" validate:"omitempty,file"`
	IAEACRP      string `json:"iaea_crp" yaml:"iaea_crp" mapstructure:"iaea_crp" validate:"omitempty,file"`
	FRDM         string `json:"frdm" yaml:"frdm" mapstructure:"frdm" validate:"omitempty,file"`
	WS36         string `json:"ws36" yaml:"ws36" mapstructure:"ws36" validate:"omitempty,file"`
	QRPAPn       string `json:"qrpa_pn" yaml:"qrpa_pn" mapstructure:"qrpa_pn" validate:"omitempty,file"`
	QRPAHalfLife string `json:"qrpa_half_life" yaml:"qrpa_half_life" mapstructure:"qrpa_half_life" validate:"required_with=QRPAPn"`
}

// StoreConfig holds settings for the artifact store.
type StoreConfig struct {
	// Dir contains artifacts.db and the export/ directory.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir" validate:"required"`
}

// MergeConfig holds settings for the combine stage.
type MergeConfig struct {
	// RestrictToBound limits FRDM+QRPA candidates to nuclides inside the
	// FRDM drip lines before they are chained.
	RestrictToBound bool `json:"restrict_to_bound" yaml:"restrict_to_bound" mapstructure:"restrict_to_bound"`
}

// ChartConfig holds settings for the chart stage.
type ChartConfig struct {
	// Output is the SVG file written by the chart stage.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// CellSize is the edge length of one nuclide cell in SVG units.
	CellSize float64 `json:"cell_size" yaml:"cell_size" mapstructure:"cell_size" validate:"gte=0"`

	// MaxN and MaxZ bound the plotted grid.
	MaxN int `json:"max_n" yaml:"max_n" mapstructure:"max_n" validate:"gte=0"`
	MaxZ int `json:"max_z" yaml:"max_z" mapstructure:"max_z" validate:"gte=0"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch  FetchConfig `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Inputs InputConfig `json:"inputs" yaml:"inputs" mapstructure:"inputs"`
	Store  StoreConfig `json:"store" yaml:"store" mapstructure:"store"`
	Merge  MergeConfig `json:"merge" yaml:"merge" mapstructure:"merge"`
	Chart  ChartConfig `json:"chart" yaml:"chart" mapstructure:"chart"`
}

// Validate checks the configuration and reports every failing field.
func (c PipelineConfig) Validate() error {
	return validateStruct(c)
}

// Validate checks only the fetch settings. Input files need not exist yet.
func (c FetchConfig) Validate() error {
	return validateStruct(c)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: rule %q failed for %v", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
