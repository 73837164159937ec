package domain

// Config mirrors ~/.burst/config.yaml.
//
// The expr tags expose the same keys to the console, so `conf.term_width`
// reads the way it is written in the file.
type Config struct {
	ConfigFormatVersion string `yaml:"config_format_version" expr:"config_format_version"`
	TermWidth           string `yaml:"term_width" expr:"term_width"`
	HistorySize         int    `yaml:"history_size" expr:"history_size"`
	Pager               string `yaml:"pager" expr:"pager"`
	PayloadsDir         string `yaml:"payloads_dir" expr:"payloads_dir"`
	DefaultSession      string `yaml:"default_session" expr:"default_session"`
}
