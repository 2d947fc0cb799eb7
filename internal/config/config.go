package config

// Config is the root configuration of the ukstyle command.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Humanise  HumaniseConfig  `yaml:"humanise"`
	Terms     TermsConfig     `yaml:"terms"`
	Store     StoreConfig     `yaml:"store"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Batch     BatchConfig     `yaml:"batch"`
	Log       LogConfig       `yaml:"log"`
}

// OutputConfig controls report format and column wrapping of rewritten text.
type OutputConfig struct {
	Clean     bool   `yaml:"clean"      env:"UKSTYLE_CLEAN"`
	NoWrap    bool   `yaml:"no_wrap"    env:"UKSTYLE_NO_WRAP"`
	WrapWidth int    `yaml:"wrap_width" env:"UKSTYLE_WRAP_WIDTH" env-default:"90"`
	Format    string `yaml:"format"     env:"UKSTYLE_FORMAT"     env-default:"text"`
}

// HumaniseConfig holds connector insertion settings. Seed 0 picks a fresh
// seed per run.
type HumaniseConfig struct {
	Seed                 int64   `yaml:"seed"                  env:"UKSTYLE_SEED"`
	ConnectorProbability float64 `yaml:"connector_probability" env:"UKSTYLE_CONNECTOR_PROBABILITY" env-default:"0.35"`
}

// TermsConfig points at an optional YAML file replacing the built-in tables.
type TermsConfig struct {
	Path string `yaml:"path" env:"UKSTYLE_TERMS_PATH"`
}

// StoreConfig enables the sqlite run history when Path is set.
type StoreConfig struct {
	Path string `yaml:"path" env:"UKSTYLE_HISTORY_DB"`
}

// WorkspaceConfig enables per-document project folders with report.json.
type WorkspaceConfig struct {
	Enabled bool   `yaml:"enabled" env:"UKSTYLE_WORKSPACE"`
	Root    string `yaml:"root"    env:"UKSTYLE_WORKSPACE_ROOT"`
}

type BatchConfig struct {
	Workers int `yaml:"workers" env:"UKSTYLE_BATCH_WORKERS" env-default:"0"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
