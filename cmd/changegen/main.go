package main

import (
	"context"
	"io"
	"os"

	"github.com/ariel-frischer/changegen/internal/build"
	"github.com/ariel-frischer/changegen/internal/cli"
	"github.com/charmbracelet/fang"
	"github.com/fatih/color"
)

func main() {
	ctx := context.Background()

	rootCmd := cli.NewRootCmd()
	err := fang.Execute(ctx, rootCmd,
		fang.WithVersion(build.Version),
		fang.WithCommit(build.Commit),
		fang.WithErrorHandler(printError),
		fang.WithNotifySignal(os.Interrupt),
	)
	os.Exit(cli.ExitCode(err))
}

func printError(w io.Writer, _ fang.Styles, err error) {
	cli.PrintError(w, err, color.NoColor)
}
