// Package config resolves the settings of one bulkrename run.
//
// Values come from four layers, highest precedence first:
//  1. command-line flags that were set explicitly
//  2. BULKRENAME_* environment variables (dashes become underscores,
//     so --dry-run maps to BULKRENAME_DRY_RUN)
//  3. a preset file named by --preset (YAML, JSON or JSONC)
//  4. built-in defaults
//
// The layering is delegated to github.com/spf13/viper. Preset files are
// decoded here and merged into viper as a plain map.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/bulkrename/internal/model"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "BULKRENAME"

// Setting keys. They double as flag names and preset keys.
const (
	KeyDir      = "dir"
	KeyPattern  = "pattern"
	KeySortNum  = "sortnum"
	KeyPrefix   = "prefix"
	KeyOrigin   = "origin"
	KeySuffix   = "suffix"
	KeyYes      = "yes"
	KeyDryRun   = "dry-run"
	KeyProgress = "progress"
	KeyPreset   = "preset"
)

// presetKeys lists the keys a preset file may set. --yes and --preset are
// deliberately absent: a preset must not skip the confirmation or chain
// to another preset.
var presetKeys = []string{
	KeyDir, KeyPattern, KeySortNum, KeyPrefix, KeyOrigin, KeySuffix, KeyDryRun, KeyProgress,
}

// Settings is the resolved configuration of a run.
type Settings struct {
	Options model.RenameOptions

	// Yes skips the confirmation prompt.
	Yes bool

	// DryRun prints the plan and stops.
	DryRun bool

	// Progress shows a progress bar while renaming.
	Progress bool

	// Preset is the preset file that was applied, if any.
	Preset string
}

// RegisterFlags defines the setting flags on fs. Load expects a flag set
// prepared by this function.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyDir, ".", "directory containing the files to rename")
	fs.String(KeyPattern, "", "glob pattern selecting files by name (e.g. \"*.jpg\")")
	fs.Bool(KeySortNum, false, "order files by the last number in their names")
	fs.String(KeyPrefix, "", "text placed at the start of every new name")
	fs.Bool(KeyOrigin, false, "keep the original name (without extension) after the prefix")
	fs.Bool(KeySuffix, false, "append a zero-padded sequence number")
	fs.BoolP(KeyYes, "y", false, "rename without asking for confirmation")
	fs.BoolP(KeyDryRun, "n", false, "show the plan without renaming anything")
	fs.Bool(KeyProgress, false, "show a progress bar while renaming")
	fs.String(KeyPreset, "", "load settings from a YAML or JSON preset file")
}

// Load resolves Settings from flags, the environment and the optional
// preset file.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault(KeyDir, ".")
	v.SetDefault(KeyPattern, "")
	v.SetDefault(KeySortNum, false)
	v.SetDefault(KeyPrefix, "")
	v.SetDefault(KeyOrigin, false)
	v.SetDefault(KeySuffix, false)
	v.SetDefault(KeyYes, false)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyProgress, false)
	v.SetDefault(KeyPreset, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	preset := v.GetString(KeyPreset)
	if preset != "" {
		values, err := LoadPreset(preset)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(values); err != nil {
			return nil, fmt.Errorf("failed to apply preset %s: %w", preset, err)
		}
	}

	return &Settings{
		Options: model.RenameOptions{
			SourceDir:       v.GetString(KeyDir),
			FilePattern:     v.GetString(KeyPattern),
			SortByNumber:    v.GetBool(KeySortNum),
			Prefix:          v.GetString(KeyPrefix),
			UseOriginalName: v.GetBool(KeyOrigin),
			AddSequence:     v.GetBool(KeySuffix),
		},
		Yes:      v.GetBool(KeyYes),
		DryRun:   v.GetBool(KeyDryRun),
		Progress: v.GetBool(KeyProgress),
		Preset:   preset,
	}, nil
}

// LoadPreset reads a preset file and returns its key/value pairs.
//
// The format is chosen by extension: .yaml and .yml are decoded with
// gopkg.in/yaml.v3; .json and .jsonc have comments and trailing commas
// stripped by github.com/tidwall/jsonc before encoding/json decodes them.
// Keys outside the preset key set are rejected.
func LoadPreset(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("preset file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}

	values := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse preset at %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &values); err != nil {
			return nil, fmt.Errorf("failed to parse preset at %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported preset format %q (use .yaml, .yml, .json or .jsonc)", ext)
	}

	// An empty YAML document decodes to a nil map.
	if values == nil {
		values = map[string]any{}
	}

	normalized := lo.MapKeys(values, func(_ any, k string) string {
		return strings.ToLower(k)
	})
	unknown := lo.Without(lo.Keys(normalized), presetKeys...)
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("preset %s: unknown keys %s (allowed: %s)",
			path, strings.Join(unknown, ", "), strings.Join(presetKeys, ", "))
	}
	return normalized, nil
}
