package traversal

import (
	jtConfig "github.com/jobflow/jobtrace/pkg/config"
)

//go:generate pflags Config --default-var=defaultConfig

type Policy = string

const (
	PolicyLRU         = "LRU"
	PolicyPassThrough = "PassThrough"
)

var (
	defaultConfig = &Config{
		Policy: PolicyLRU,
		Size:   1000,
	}

	configSection = jtConfig.MustRegisterSubSection("reachability", defaultConfig)
)

type Config struct {
	Policy Policy `json:"policy" pflag:",Reachability oracle policy to initialize"`
	Size   int    `json:"size" pflag:",The maximum size of the LRU cache"`
}

func GetConfig() *Config {
	return configSection.GetConfig().(*Config)
}

func SetConfig(cfg *Config) error {
	return configSection.SetConfig(*cfg)
}
