package config

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// OutputConfig holds settings related to report output.
type OutputConfig struct {
	// Format is FormatText or FormatJSON.
	Format string `yaml:"format" validate:"oneof=text json"`

	// Top limits each ranked list in the text report. 0 prints everything.
	Top int `yaml:"top" validate:"gte=0"`

	// Records includes the per-game records in the report.
	Records bool `yaml:"records"`

	// Indent pretty-prints JSON output.
	Indent bool `yaml:"indent"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format: FormatText,
		Top:    10,
		Indent: true,
	}
}
