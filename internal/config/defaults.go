package config

const (
	defaultLogDir               = "~/.local/share/retake/logs"
	defaultSidecarSuffix        = ".json"
	defaultMaxCollisionAttempts = 1000
	defaultToolBinary           = "exiftool"
	defaultToolTimeoutSeconds   = 120
	defaultTimezone             = "UTC"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

func defaultTruncateLengths() []int {
	return []int{48, 47, 46}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Matching: Matching{
			SidecarSuffix:   defaultSidecarSuffix,
			TruncateLengths: defaultTruncateLengths(),
		},
		Allocation: Allocation{
			MaxCollisionAttempts: defaultMaxCollisionAttempts,
		},
		Tool: Tool{
			Binary:         defaultToolBinary,
			TimeoutSeconds: defaultToolTimeoutSeconds,
		},
		Pipeline: Pipeline{
			Timezone:     defaultTimezone,
			VerifyCopies: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
