package config

const (
	defaultDataDir   = "~/.local/share/adpod"
	defaultOutputDir = "~/.local/share/adpod/packages"
	defaultLogDir    = "~/.local/share/adpod/logs"
	defaultIssuer    = "Qube Cinema"
	defaultCreator   = "Qube Ad Pod Compiler"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns the repository default configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Compiler: Compiler{
			Issuer:  defaultIssuer,
			Creator: defaultCreator,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
