package utils

import (
	"fmt"
	"os"
)

const (
	// DefaultConfigFile describes config file name looked up in the configs dir.
	DefaultConfigFile = "fastlab.yaml"
)

// GetCurrentWorkingDir returns application working directory.
func GetCurrentWorkingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic("Failed to get current working dir")
	}

	return cwd
}

// GetDefaultConfigsDir returns default config directory which is cwd/configs.
func GetDefaultConfigsDir() string {
	if ConfigDir != "" {
		return ConfigDir
	}

	return fmt.Sprintf("%s/configs", GetCurrentWorkingDir())
}

// GetDefaultConfigFile returns default config file location.
func GetDefaultConfigFile() string {
	return fmt.Sprintf("%s/%s", GetDefaultConfigsDir(), DefaultConfigFile)
}

// ConfigDir allows to re-write default config directory.
var ConfigDir = ""
