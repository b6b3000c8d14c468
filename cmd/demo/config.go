package main

import "github.com/JeremyLoy/config"

type Config struct {
	ScriptPath    string `config:"SCRIPT_PATH"`
	LogLevel      string `config:"LOG_LEVEL"`
	RedisAddress  string `config:"REDIS_ADDRESS"`
	RedisPassword string `config:"REDIS_PASSWORD"`
}

func LoadConfig() Config {
	cfg := Config{
		LogLevel: "info",
	}
	err := config.FromEnv().To(&cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}
