package exitcode

const (
	Success       = 0
	UsageError    = 1
	RegistryError = 2
	ConfigError   = 3
	ReadError     = 4
	ExtractError  = 5
	WriteError    = 6
)
