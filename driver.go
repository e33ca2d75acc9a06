package owsql

// Driver is the two-operation collaborator the core pipeline delegates to,
// per spec.md §6's driver-facing surface. Concrete dialect packages
// (drivers/sqlite, drivers/mysql, drivers/postgres) implement it over a
// pooled database/sql connection; drivers/mock implements it in memory for
// Connection-level tests.
type Driver interface {
	// Execute runs sql with no result set expected.
	Execute(sql string) error

	// Iterate runs sql and invokes cb once per row, in column order, until
	// cb returns false or rows are exhausted.
	Iterate(sql string, cb func([]ColumnValue) bool) error

	// DBType reports the dialect this driver was built for, selecting the
	// Connection's escape predicate.
	DBType() Dialect
}
