// Package config defines core configuration types for cppdoc.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies the format of the build report.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// Flavor specifies the Markdown flavor to use for rendering.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultBaseURL is the site that autolink hrefs point into.
const DefaultBaseURL = "https://zh.cppreference.com/w/"

// AutolinkConfig controls linking of standard library names in C++ blocks.
type AutolinkConfig struct {
	// Enabled is a pointer so that a config file can switch a default-on
	// feature off.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Index is a JSON or YAML symbol index replacing the embedded one.
	Index string `yaml:"index,omitempty"`

	BaseURL string `yaml:"base_url,omitempty"`
}

// IsEnabled reports whether autolinking is on. Unset means on.
func (a AutolinkConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// CodemoConfig controls runnable code blocks.
type CodemoConfig struct {
	// TriggerTitle is the title attribute of the run trigger.
	TriggerTitle string `yaml:"trigger_title,omitempty"`
}

// Config is the root configuration structure for cppdoc.
type Config struct {
	// Source is the directory holding the tutorial's Markdown files.
	Source string `yaml:"source,omitempty"`

	// Output is the directory rendered pages are written to.
	Output string `yaml:"output,omitempty"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// Title is the site title shown in every page's <title>.
	Title string `yaml:"title,omitempty"`

	// Lang is the html lang attribute.
	Lang string `yaml:"lang,omitempty"`

	// Ignore contains glob patterns, relative to Source, for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// IgnoreFile names a gitignore-style file inside Source.
	IgnoreFile string `yaml:"ignore_file,omitempty"`

	// DetectLanguage guesses the language of unlabeled fences.
	DetectLanguage bool `yaml:"detect_language,omitempty"`

	Autolink AutolinkConfig `yaml:"autolink,omitempty"`
	Codemo   CodemoConfig   `yaml:"codemo,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"-"`

	// Watch rebuilds on source changes.
	Watch bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	enabled := true
	return &Config{
		Source:     ".",
		Output:     "dist",
		Flavor:     FlavorCommonMark,
		Lang:       "zh-CN",
		IgnoreFile: ".cppdocignore",
		Autolink: AutolinkConfig{
			Enabled: &enabled,
			BaseURL: DefaultBaseURL,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}
