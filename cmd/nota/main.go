package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		red := color.New(color.FgRed, color.Bold)
		fmt.Fprintf(os.Stderr, "%s %s\n", red.Sprint("nota:"), diagnose(err))
		os.Exit(1)
	}
}
