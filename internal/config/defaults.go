package config

const (
	defaultDataDir              = "~/.local/share/anishelf"
	defaultLogDir               = "~/.local/share/anishelf/logs"
	defaultAPIBind              = "127.0.0.1:7607"
	defaultSourceBaseURL        = "https://www.animenewsnetwork.com"
	defaultSourceCDNURL         = "https://cdn.animenewsnetwork.com"
	defaultSourceTimeoutSeconds = 15
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Source: Source{
			BaseURL:        defaultSourceBaseURL,
			CDNURL:         defaultSourceCDNURL,
			TimeoutSeconds: defaultSourceTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
