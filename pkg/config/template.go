package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

const yamlTemplate = `# cppdoc configuration
# See: https://github.com/yaklabco/cppdoc

# Directory holding the tutorial's Markdown files and sidebar.yml
source: .

# Directory rendered pages are written to
output: dist

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Site title and html lang attribute
# title: C++ 教程
lang: zh-CN

# Guess the language of fences without one
# detect_language: false

# File patterns to skip, relative to source
# ignore:
#   - "drafts/**"
#   - "node_modules/**"

# gitignore-style file inside source
ignore_file: .cppdocignore

# Link standard library names in C++ blocks
autolink:
  enabled: true
  base_url: https://zh.cppreference.com/w/
  # index: symbols.yml

# Runnable code blocks
# codemo:
#   trigger_title: 显示代码
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	return []byte(yamlTemplate), nil
}

// templateToJSON renders the defaults a template would produce as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()
	cfg.Title = ""

	jsonBytes, err := json.MarshalIndent(map[string]any{
		"source":      cfg.Source,
		"output":      cfg.Output,
		"flavor":      cfg.Flavor,
		"lang":        cfg.Lang,
		"ignore_file": cfg.IgnoreFile,
		"autolink": map[string]any{
			"enabled":  cfg.Autolink.IsEnabled(),
			"base_url": cfg.Autolink.BaseURL,
		},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}
