// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"
)

// SetHomeDir points HOME at dir and returns a cleanup function restoring
// the original value. Useful for tests that exercise config lookup under
// a temporary home directory.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tmpDir := t.TempDir()
//	    t.Cleanup(testutil.SetHomeDir(t, tmpDir))
//
//	    // Test code that uses the home directory...
//	}
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()
	return MustSetenv(t, "HOME", dir)
}
