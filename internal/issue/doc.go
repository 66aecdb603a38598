// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling for operator-facing failures.
//
// Provisioning errors almost always originate in a host command or a host file;
// the types here attach the attempted operation, the resource involved, and
// remediation suggestions while keeping the underlying host diagnostic intact
// in the cause chain.
package issue
