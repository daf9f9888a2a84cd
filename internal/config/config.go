package config

import (
	"github.com/kelseyhightower/envconfig"
)

type EngineConfiguration struct {
	Engine struct {
		Name     string `envconfig:"ENGINE_NAME" default:"weak-engines"`
		Author   string `envconfig:"ENGINE_AUTHOR" default:"weak-engines contributors"`
		Strategy string `envconfig:"ENGINE_STRATEGY" default:"random"`
		Seed     int64  `envconfig:"ENGINE_SEED"`
	}
	Book struct {
		Path string `envconfig:"BOOK_PATH"`
	}
}

type DatabaseConfiguration struct {
	Address      string `envconfig:"MONGO_ADDRESS"`
	DatabaseName string `envconfig:"MONGO_DATABASE"`
	Collection   string `envconfig:"MONGO_COLLECTION"`
}

type ArenaConfiguration struct {
	Arena struct {
		Workers    int    `envconfig:"ARENA_WORKERS" default:"4"`
		MoveTimeMs int    `envconfig:"ARENA_MOVETIME_MS" default:"100"`
		MaxPlies   int    `envconfig:"ARENA_MAX_PLIES" default:"600"`
		SelfPlay   bool   `envconfig:"ARENA_SELF_PLAY"`
		Strategies string `envconfig:"ARENA_STRATEGIES"`
		Seed       int64  `envconfig:"ARENA_SEED"`
	}
	Book struct {
		Path string `envconfig:"BOOK_PATH"`
	}
	Database DatabaseConfiguration
	External struct {
		Path  string   `envconfig:"EXTERNAL_ENGINE_PATH"`
		Args  []string `envconfig:"EXTERNAL_ENGINE_ARGS"`
		Depth int      `envconfig:"EXTERNAL_ENGINE_DEPTH" default:"6"`
	}
}

type ServerConfiguration struct {
	Server struct {
		Host string `envconfig:"SERVER_HOST"`
		Port string `envconfig:"SERVER_PORT" default:"8080"`
	}
	Book struct {
		Path string `envconfig:"BOOK_PATH"`
	}
	Engine struct {
		Seed int64 `envconfig:"ENGINE_SEED"`
	}
	Database DatabaseConfiguration
}

func InitEngineConfig() (*EngineConfiguration, error) {
	cfg := &EngineConfiguration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}

func InitArenaConfig() (*ArenaConfiguration, error) {
	cfg := &ArenaConfiguration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}

func InitServerConfig() (*ServerConfiguration, error) {
	cfg := &ServerConfiguration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}
