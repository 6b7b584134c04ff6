package main

import (
	"io"
	"os"

	"github.com/kbukum/envcascade/config"
	"github.com/kbukum/envcascade/source"
)

func main() {
	os.Exit(run(os.Args[1:], source.FromOS(), os.Stdout, os.Stderr))
}

func run(args []string, env source.Environment, stdout, stderr io.Writer) int {
	cmd := newRootCmd(env)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		config.WriterReporter(stderr).Report(err)
		return 1
	}
	return 0
}
