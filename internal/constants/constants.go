package constants

import "time"

const (
	Version        = `0.1.0`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `.kb`
	LogFile        = `kb.log`
	EnvPrefix      = `KB`
	EnvConfig      = `KB_CONFIG`

	DefaultExtension    = `md`
	DefaultTickInterval = 200 * time.Millisecond
	PreviewCacheSize    = 64
)
