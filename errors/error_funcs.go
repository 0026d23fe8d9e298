package errors

import (
	"os"

	log "github.com/lordoftheflies/java-role/pkg/logger"
)

// OsExit is a variable for testing, so we can mock os.Exit.
var OsExit = os.Exit

// Exit terminates the process with the given exit code.
func Exit(code int) {
	OsExit(code)
}

// CheckErrorAndPrint prints an error message.
func CheckErrorAndPrint(err error) {
	if err == nil {
		return
	}
	log.Error(err.Error())
}

// CheckErrorPrintAndExit prints an error message and exits with the
// exit code carried by the error.
func CheckErrorPrintAndExit(err error) {
	if err == nil {
		return
	}
	CheckErrorAndPrint(err)
	Exit(GetExitCode(err))
}
