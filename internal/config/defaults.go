package config

const (
	defaultOutputDir   = "alac"
	defaultKeepArtwork = true
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			Directory:   defaultOutputDir,
			KeepArtwork: defaultKeepArtwork,
		},
		Runtime: Runtime{
			Workers: 0,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
