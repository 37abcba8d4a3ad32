package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{
			Path: "/bin/bash",
		},
		Commands: CommandConfig{
			Timeout: "0",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
