package config

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/imdario/mergo"
)

// GetConfig decodes a report config file. Keys missing from the file are left zero.
func GetConfig(configFileLocation string) (ReportConfig, error) {
	var conf ReportConfig
	_, err := toml.DecodeFile(configFileLocation, &conf)
	return conf, err
}

// MergeConfigs fills every unset field of override from def.
func MergeConfigs(def ReportConfig, override ReportConfig) (ReportConfig, error) {
	err := mergo.Merge(&override, def)
	return override, err
}

func EncodeConfig(w io.Writer, conf interface{}) error {
	return toml.NewEncoder(w).Encode(conf)
}
