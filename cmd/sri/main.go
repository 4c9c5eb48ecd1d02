package main

import (
	"fmt"
	"os"

	"github.com/cdnjs/sri-tools/sentry"
)

func main() {
	sentry.Init()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defer sentry.PanicHandler()

	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "error: %s\n", err)
		return 1
	}
	return 0
}
