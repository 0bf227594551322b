// Package config defines the runtime configuration shared by
// cmd/chainindexer's subcommands, bound from command-line flags via viper.
package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the ingest and serve subcommands need.
type Config struct {
	BlockDir     string
	BindAddr     string
	LogLevel     string
	SnapshotPath string
}

// BindFlags registers the configuration's flags on flags and binds each one
// into v with BindPFlag, so viper.Get* returns the flag's value, or the
// flag's default when it is not set. Environment variables and config files
// are not read.
func BindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	flags.String("block-dir", "./blocks", "directory containing blkNNNNN.dat files")
	flags.String("bind-addr", "127.0.0.1:8080", "HTTP bind address for the serve subcommand")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("snapshot-path", "./chainlens.db", "path to the resolved-chain snapshot database")

	for _, name := range []string{"block-dir", "bind-addr", "log-level", "snapshot-path"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the bound configuration out of v.
func Load(v *viper.Viper) Config {
	return Config{
		BlockDir:     v.GetString("block-dir"),
		BindAddr:     v.GetString("bind-addr"),
		LogLevel:     v.GetString("log-level"),
		SnapshotPath: v.GetString("snapshot-path"),
	}
}
