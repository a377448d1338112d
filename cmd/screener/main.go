package main

import (
	"os"

	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
