package config

// LogLevel is the minimum level written to the log.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level diana configuration, corresponding to .diana.yml.
type Config struct {
	APIBaseURL            string   `yaml:"api_base_url" koanf:"api_base_url"`
	DataDir               string   `yaml:"data_dir" koanf:"data_dir"`
	Port                  int      `yaml:"port" koanf:"port"`
	AllowAllOrigins       bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	StatsIntervalSeconds  int      `yaml:"stats_interval_seconds" koanf:"stats_interval_seconds"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`
	LogFile               string   `yaml:"log_file" koanf:"log_file"`
	LogLevel              LogLevel `yaml:"log_level" koanf:"log_level"`
	LogConsole            bool     `yaml:"log_console" koanf:"log_console"`
}
