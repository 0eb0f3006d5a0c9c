package main

import (
	"os"

	"people-directory/pkg/di"
)

func main() {
	if err := newRootCmd(di.OpenStore).Execute(); err != nil {
		os.Exit(1)
	}
}
