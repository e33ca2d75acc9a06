// Command owsql is the operator CLI for the owsql query-composition
// library: it rewrites or runs a hand-typed SQL string through the same
// tokenize/rewrite pipeline application code uses via Connection, and
// ships a self-contained demo of ow/int/allowlist.
package main

import "github.com/datashield/owsql/cli"

func main() {
	cli.Run()
}
