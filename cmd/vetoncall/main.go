package main

import (
	"fmt"
	"os"

	"github.com/clinicwatch/vetoncall/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		os.Exit(1)
	}

	root := newRootCmd(cfg)
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
