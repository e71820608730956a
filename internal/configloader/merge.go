package configloader

import "github.com/yaklabco/cppdoc/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	for _, s := range []struct {
		dst *string
		src string
	}{
		{&result.Source, override.Source},
		{&result.Output, override.Output},
		{&result.Title, override.Title},
		{&result.Lang, override.Lang},
		{&result.IgnoreFile, override.IgnoreFile},
		{&result.Autolink.Index, override.Autolink.Index},
		{&result.Autolink.BaseURL, override.Autolink.BaseURL},
		{&result.Codemo.TriggerTitle, override.Codemo.TriggerTitle},
	} {
		if s.src != "" {
			*s.dst = s.src
		}
	}

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Plain booleans can only be switched on by a later layer.
	if override.DetectLanguage {
		result.DetectLanguage = true
	}
	if override.Watch {
		result.Watch = true
	}

	if override.Autolink.Enabled != nil {
		enabled := *override.Autolink.Enabled
		result.Autolink.Enabled = &enabled
	}

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
