// Package main provides the entry point for the samplers CLI tool.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/samplers/cmd/samplers/commands"
	"github.com/Sumatoshi-tech/samplers/pkg/stream"
	"github.com/Sumatoshi-tech/samplers/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	// Writes to a closed pipe must surface as EPIPE instead of killing the process.
	signal.Ignore(syscall.SIGPIPE)

	err := commands.NewRootCommand().Execute()
	if err != nil && !stream.IsClosedPipe(err) {
		errLabel := color.New(color.FgRed, color.Bold).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %v\n", errLabel("Error:"), err)
		os.Exit(1)
	}
}
