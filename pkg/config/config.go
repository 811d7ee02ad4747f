package config

import (
	"github.com/flyteorg/flytestdlib/config"
)

//go:generate pflags Config --default-var=DefaultConfig

const configSectionKey = "jobtrace"

var (
	DefaultConfig = &Config{}

	configSection = config.MustRegisterSection(configSectionKey, DefaultConfig)
)

// Config is the top level configuration. Component specific configuration
// registers as subsections under it.
type Config struct {
	GraphFiles []string `json:"graph-files" pflag:",Job declaration files the dependency graph is assembled from"`
}

func GetConfig() *Config {
	return configSection.GetConfig().(*Config)
}

func SetConfig(cfg *Config) error {
	return configSection.SetConfig(*cfg)
}

// MustRegisterSubSection registers component configuration under the top level
// section.
func MustRegisterSubSection(subSectionKey string, section config.Config) config.Section {
	return configSection.MustRegisterSection(subSectionKey, section)
}
