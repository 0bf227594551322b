// Command chainindexer decodes a directory of Bitcoin blkNNNNN.dat files,
// resolves the main chain, and optionally serves the result over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"chain-lens/internal/config"
)

var v = viper.New()

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	return config.Load(v)
}
