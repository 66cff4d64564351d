package config

// ConfigInitError reports a configuration the program cannot start with.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}
