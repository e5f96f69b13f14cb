package main

import (
	"os"
)

// -------------------- MAIN --------------------

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
