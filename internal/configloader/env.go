package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yaklabco/cppdoc/pkg/config"
)

// envVarPrefix is the prefix for all cppdoc environment variables.
const envVarPrefix = "CPPDOC_"

// envVar binds one CPPDOC_ variable to a config field.
type envVar struct {
	suffix string
	field  string
	help   string
	set    func(cfg *config.Config, value string) error
}

func stringVar(dst func(*config.Config) *string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*dst(cfg) = value
		return nil
	}
}

// Variables in application order.
//
//nolint:gochecknoglobals // read-only lookup table
var envVars = []envVar{
	{"SOURCE", "source", "Directory holding the Markdown sources",
		stringVar(func(c *config.Config) *string { return &c.Source })},
	{"OUTPUT", "output", "Directory rendered pages are written to",
		stringVar(func(c *config.Config) *string { return &c.Output })},
	{"FLAVOR", "flavor", "Markdown flavor: commonmark or gfm",
		func(c *config.Config, v string) error { c.Flavor = config.Flavor(v); return nil }},
	{"TITLE", "title", "Site title",
		stringVar(func(c *config.Config) *string { return &c.Title })},
	{"LANG", "lang", "html lang attribute",
		stringVar(func(c *config.Config) *string { return &c.Lang })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		func(c *config.Config, v string) error { c.Ignore = parseSliceValue(v); return nil }},
	{"IGNORE_FILE", "ignore_file", "gitignore-style file inside the source",
		stringVar(func(c *config.Config) *string { return &c.IgnoreFile })},
	{"DETECT_LANGUAGE", "detect_language", "Guess unlabeled fence languages: true or false",
		func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			c.DetectLanguage = b
			return err
		}},
	{"AUTOLINK", "autolink.enabled", "Link standard library names: true or false",
		func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			c.Autolink.Enabled = &b
			return err
		}},
	{"AUTOLINK_INDEX", "autolink.index", "Symbol index file (JSON or YAML)",
		stringVar(func(c *config.Config) *string { return &c.Autolink.Index })},
	{"AUTOLINK_BASE_URL", "autolink.base_url", "Prefix of autolink hrefs",
		stringVar(func(c *config.Config) *string { return &c.Autolink.BaseURL })},
	{"TRIGGER_TITLE", "codemo.trigger_title", "Title of codemo run triggers",
		stringVar(func(c *config.Config) *string { return &c.Codemo.TriggerTitle })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			c.Jobs = n
			return err
		}},
	{"FORMAT", "format", "Report format: text, table, json or summary",
		func(c *config.Config, v string) error { c.Format = config.OutputFormat(v); return nil }},
}

// ReadDotEnv reads a .env file without touching the process environment.
// An empty path yields an empty map.
func ReadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

// LoadFromEnv applies CPPDOC_ variables (e.g. CPPDOC_FLAVOR) to cfg.
// Values from dotenv apply only where the process environment leaves a
// variable unset. Empty values are ignored.
func LoadFromEnv(cfg *config.Config, dotenv map[string]string) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value, ok := os.LookupEnv(name)
		if !ok {
			value = dotenv[name]
		}
		if value == "" {
			continue
		}

		if err := v.set(cfg, value); err != nil {
			return fmt.Errorf("invalid value for %s: %q: %w", name, value, err)
		}
	}

	return nil
}

// parseSliceValue splits a comma-separated list, dropping empty elements.
func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetEnvVarName returns the environment variable for a config field, or ""
// when the field has none.
func GetEnvVarName(field string) string {
	for _, v := range envVars {
		if v.field == field {
			return envVarPrefix + v.suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, v := range envVars {
		vars[envVarPrefix+v.suffix] = v.help
	}
	return vars
}
