// Package types defines the configuration, fixture rows, query variants,
// scenario outcomes, and standard errors shared by the ctebug packages.
package types
