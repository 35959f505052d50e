// gwal - A wallpaper colorscheme generator
//
// gwal derives a 16-colour terminal colorscheme from an image and publishes
// it for other tools to read.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/gwal/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
