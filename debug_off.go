//go:build !owsql_debug

package owsql

// IsDebugBuild reports whether this binary was compiled with the owsql_debug
// build tag. The Debug error level is rejected outside such builds.
const IsDebugBuild = false
