package main

import (
	"fmt"
	"os"

	"quiz-automation/internal/config"

	"github.com/spf13/afero"
)

var version = "0.1.0"

func main() {
	c := &cli{
		fs:         afero.NewOsFs(),
		out:        os.Stdout,
		errOut:     os.Stderr,
		loadConfig: config.LoadConfigFrom,
	}
	if err := c.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
