package main

import (
	"github.com/lordoftheflies/java-role/cmd"
	errUtils "github.com/lordoftheflies/java-role/errors"
)

func main() {
	// CheckErrorPrintAndExit terminates through errUtils.OsExit with the
	// exit code carried by the error, so tests can intercept the exit.
	if err := cmd.Execute(); err != nil {
		errUtils.CheckErrorPrintAndExit(err)
	}
}
