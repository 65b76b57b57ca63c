package market

import (
	"os"

	"github.com/pelletier/go-toml"
)

type Configuration struct {
	Node struct {
		Listen          string `toml:"listen"`
		LogLevel        int    `toml:"log-level"`
		VerifyOwnership bool   `toml:"verify-ownership"`
	} `toml:"node"`
	Genesis []GenesisEntry `toml:"genesis"`
}

type GenesisEntry struct {
	Address string `toml:"address"`
	Amount  string `toml:"amount"`
}

func Setup(path string) (*Configuration, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Configuration
	err = toml.Unmarshal(f, &conf)
	if err != nil {
		return nil, err
	}
	if conf.Node.Listen == "" {
		conf.Node.Listen = ":7001"
	}
	return &conf, nil
}
