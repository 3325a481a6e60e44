package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Token       string `mapstructure:"TOKEN"`
	GithubToken string `mapstructure:"GH_TOKEN"`
	Prefix      string `mapstructure:"prefix"`
	MappingFile string `mapstructure:"mapping_file"`
	DBFile      string `mapstructure:"db_file"`
}

var Cfg Config

func LoadConfig() (err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("prefix", "+")
	viper.SetDefault("mapping_file", "config.json")
	viper.SetDefault("db_file", "./data/issuebot.db")

	err = viper.ReadInConfig()
	if err != nil {
		// A missing config file is fine, everything can come from the
		// environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&Cfg)
	return
}
