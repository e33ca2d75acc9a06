package owsql

// Dialect selects the escape predicate and db_type a Connection reports to
// the core pipeline. The set is closed: spec.md's Data Model fixes
// dialect ∈ {Sqlite, Mysql, Postgresql}.
type Dialect int

const (
	Sqlite Dialect = iota
	Mysql
	Postgresql
)

// String renders the dialect's lowercase name, used in log fields.
func (d Dialect) String() string {
	switch d {
	case Sqlite:
		return "sqlite"
	case Mysql:
		return "mysql"
	case Postgresql:
		return "postgresql"
	default:
		return "unknown"
	}
}

// MustEscape is the dialect's escape predicate: SQLite doubles only a
// single quote; MySQL and PostgreSQL also double a backslash, matching the
// original implementation's single_quotaion_and_backslash_escape grouping
// for every non-SQLite dialect.
func (d Dialect) MustEscape(c rune) bool {
	switch c {
	case '\'':
		return true
	case '\\':
		return d == Mysql || d == Postgresql
	default:
		return false
	}
}

// QuoteAllowlistValue applies the dialect's escape predicate to value and
// wraps it in single quotes, per OwWithoutHTMLEscape's surrounding-quote
// rule (spec.md 4.G) — also used to build the escaped form registered for
// Allowlist/AddAllowlist entries.
func (d Dialect) QuoteAllowlistValue(value string) string {
	return "'" + escapeString(value, d.MustEscape) + "'"
}
