package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	// EnvPrefix is prepended to every environment override, e.g. TAADOL_DATABASE_URI.
	EnvPrefix = "TAADOL"

	AppName = "taadol_backend"
)
