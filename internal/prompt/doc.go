// SPDX-License-Identifier: MPL-2.0

// Package prompt collects operator input from the terminal during
// installation. It renders styled labels, supports hidden entry for
// secrets, and re-asks until a validator accepts the value.
package prompt
