package config

import "time"

// DefaultTimeout bounds a single git log invocation.
const DefaultTimeout = 30 * time.Second

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"git_backend": "cli",
		"git_binary":  "git",
		// timeout: "0s" disables the limit.
		"timeout": DefaultTimeout.String(),
		"format":  "text",
	}
}

// Keys returns the recognized configuration keys.
func Keys() []string {
	return []string{"git_backend", "git_binary", "timeout", "format"}
}
