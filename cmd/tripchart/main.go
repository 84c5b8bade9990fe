package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/macropower/tripchart/internal/cli"
)

const (
	cmdName = "tripchart"

	shortDesc = "Chart half-hour bike trip counts."
	longDesc  = `tripchart reads a CSV file of bike trip counts per half-hour bucket and
draws them as a bar chart, in chronological order, with each bar labeled
with its count.

Charts are shown in the terminal or written to PNG, SVG or PDF files.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	err := cmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
