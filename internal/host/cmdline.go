// SPDX-License-Identifier: MPL-2.0

package host

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ShellLine renders an argv as a copy-pasteable POSIX shell line, quoting
// arguments that need it. Used for verbose logging so the operator can
// rerun any step by hand.
func ShellLine(path string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(path))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	quoted, err := syntax.Quote(arg, syntax.LangPOSIX)
	if err != nil {
		// Quote fails on bytes the POSIX dialect cannot represent;
		// fall back to the raw value so the log line still shows intent.
		return arg
	}
	return quoted
}
