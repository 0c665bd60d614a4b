// Package config loads the tsvenn run configuration from a YAML file and
// TSVENN_ environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/tsvenn"
	"github.com/nao1215/tsvenn/domain/model"
)

// Environment variables overriding the configuration file.
const (
	EnvStore       = "TSVENN_STORE"
	EnvDescriptor  = "TSVENN_DESCRIPTOR"
	EnvArity       = "TSVENN_ARITY"
	EnvOnError     = "TSVENN_ON_ERROR"
	EnvTableNaming = "TSVENN_TABLE_NAMING"
	EnvKeepTables  = "TSVENN_KEEP_TABLES"
	EnvList        = "TSVENN_LIST"
	EnvDiagram     = "TSVENN_DIAGRAM"
	EnvLogLevel    = "TSVENN_LOG_LEVEL"
	EnvLogFormat   = "TSVENN_LOG_FORMAT"
)

// Config describes one comparison run.
type Config struct {
	// Store is the SQLite database path; ":memory:" keeps nothing on disk
	Store string `yaml:"store"`
	// Descriptor is the flat "source|skip|..." load descriptor
	Descriptor string `yaml:"descriptor"`
	// Arity is "strict" or "lenient"
	Arity string `yaml:"arity,omitempty"`
	// OnError is "continue" or "abort"
	OnError string `yaml:"on-error,omitempty"`
	// TableNaming is "path" or "base"
	TableNaming string `yaml:"table-naming,omitempty"`
	// KeepTables leaves the loaded tables in the store after a run
	KeepTables bool           `yaml:"keep-tables,omitempty"`
	Left       model.Relation `yaml:"left"`
	Right      model.Relation `yaml:"right"`
	Output     Output         `yaml:"output"`
	LogLevel   string         `yaml:"log-level,omitempty"`
	LogFormat  string         `yaml:"log-format,omitempty"`
}

// Output holds the artifact paths. An empty path skips the artifact.
type Output struct {
	List    string `yaml:"list"`
	Diagram string `yaml:"diagram"`
}

// Default returns the configuration of the IMI Protect versus SIDER
// adverse event comparison.
func Default() *Config {
	const (
		meddra   = "input/meddra.tsv"
		drugs    = "input/drug_names.tsv"
		allSe    = "input/meddra_all_se.tsv"
		imiTable = "input/CopyofFinalrepository_DLP30Jun2016.tsv"
	)

	return &Config{
		Store:       "output/survey.db",
		Descriptor:  meddra + "|0|" + drugs + "|0|" + allSe + "|0|" + imiTable + "|9",
		Arity:       "strict",
		OnError:     "continue",
		TableNaming: "path",
		Left: model.Relation{
			Label: "IMI",
			From:  model.TableRef{Name: imiTable},
			Name:  model.Field{Column: "A2"},
			Code:  model.Field{Column: "A9"},
		},
		Right: model.Relation{
			Label: "Sider",
			From:  model.TableRef{Name: allSe, Alias: "AllSe"},
			Join: &model.JoinSpec{
				Table: model.TableRef{Name: drugs, Alias: "Drug"},
				Left:  model.Field{Table: "Drug", Column: "A1"},
				Right: model.Field{Table: "AllSe", Column: "A1"},
			},
			Name:  model.Field{Table: "Drug", Column: "A2"},
			Code:  model.Field{Table: "AllSe", Column: "A6"},
			Where: []model.Condition{{Field: model.Field{Table: "AllSe", Column: "A4"}, Equals: "PT"}},
		},
		Output: Output{
			List:    "output/imi_sider_mutual_adverse_effects.tsv",
			Diagram: "output/modest_venn_diagram.txt",
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads the YAML file at path over Default. Empty keys keep their
// default value; a relation given in the file replaces the default one
// as a whole.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Configuration path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg := Default()
	cfg.merge(&file)
	return cfg, nil
}

// merge copies every non-empty setting of other into c.
func (c *Config) merge(other *Config) {
	strs := []struct {
		dst *string
		src string
	}{
		{&c.Store, other.Store},
		{&c.Descriptor, other.Descriptor},
		{&c.Arity, other.Arity},
		{&c.OnError, other.OnError},
		{&c.TableNaming, other.TableNaming},
		{&c.Output.List, other.Output.List},
		{&c.Output.Diagram, other.Output.Diagram},
		{&c.LogLevel, other.LogLevel},
		{&c.LogFormat, other.LogFormat},
	}
	for _, s := range strs {
		if s.src != "" {
			*s.dst = s.src
		}
	}
	if other.KeepTables {
		c.KeepTables = true
	}
	if other.Left.From.Name != "" {
		c.Left = other.Left
	}
	if other.Right.From.Name != "" {
		c.Right = other.Right
	}
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// ApplyEnv overrides every field whose TSVENN_ variable is set.
func (c *Config) ApplyEnv() {
	overrides := map[string]*string{
		EnvStore:       &c.Store,
		EnvDescriptor:  &c.Descriptor,
		EnvArity:       &c.Arity,
		EnvOnError:     &c.OnError,
		EnvTableNaming: &c.TableNaming,
		EnvList:        &c.Output.List,
		EnvDiagram:     &c.Output.Diagram,
		EnvLogLevel:    &c.LogLevel,
		EnvLogFormat:   &c.LogFormat,
	}
	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}
	c.KeepTables = parseBoolEnvDefault(EnvKeepTables, c.KeepTables)
}

// Validate reports every inconsistent setting.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Store) == "" {
		errs = append(errs, errors.New("store path is required"))
	}
	if _, err := model.ParseDescriptor(c.Descriptor); err != nil {
		errs = append(errs, err)
	}
	if _, err := tsvenn.ParseArityPolicy(c.Arity); err != nil {
		errs = append(errs, err)
	}
	if _, err := tsvenn.ParseFailurePolicy(c.OnError); err != nil {
		errs = append(errs, err)
	}
	if _, err := tsvenn.ParseTableNaming(c.TableNaming); err != nil {
		errs = append(errs, err)
	}
	if err := c.Left.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("left: %w", err))
	}
	if err := c.Right.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("right: %w", err))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q: use 'text' or 'json'", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Options converts the policy settings into library options.
func (c *Config) Options() ([]tsvenn.Option, error) {
	arity, err := tsvenn.ParseArityPolicy(c.Arity)
	if err != nil {
		return nil, err
	}
	failure, err := tsvenn.ParseFailurePolicy(c.OnError)
	if err != nil {
		return nil, err
	}
	naming, err := tsvenn.ParseTableNaming(c.TableNaming)
	if err != nil {
		return nil, err
	}
	return []tsvenn.Option{
		tsvenn.WithArityPolicy(arity),
		tsvenn.WithFailurePolicy(failure),
		tsvenn.WithTableNaming(naming),
	}, nil
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBoolEnvDefault(key string, defaultVal bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return defaultVal
	}
	if v == "0" || v == "false" || v == "no" || v == "off" {
		return false
	}
	if v == "1" || v == "true" || v == "yes" || v == "on" {
		return true
	}
	return defaultVal
}
