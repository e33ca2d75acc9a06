package owsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// Connection holds all per-connection state named in spec.md §3: the two
// trust registries, the allowlist, the serial counter, the placeholder
// length range, and the error level. Every mutation goes through Connection
// under a single mutex (see CONCURRENCY in SPEC_FULL.md §7); the driver
// call itself runs outside the lock.
type Connection struct {
	mu sync.Mutex

	driver  Driver
	dialect Dialect

	overwrite   *BidiRegistry[string, string]
	errorMsg    *BidiRegistry[string, string]
	errorsByKey map[string]error

	allowlist map[string]struct{}

	serial   uint64
	lenRange lengthRange

	errorLevel ErrorLevel
	logger     Logger

	// whitespaceAround mirrors the original implementation's registry of the
	// same name: present in the design, populated by nothing in the public
	// API. Kept as an internal hook rather than resolved or deleted — see
	// DESIGN.md's Open Questions.
	whitespaceAround *BidiRegistry[string, string]
}

// Option configures a Connection at Open time.
type Option func(*Connection)

// WithLogger installs a structured logger; nil is ignored.
func WithLogger(l Logger) Option {
	return func(c *Connection) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorLevel sets the initial error level (default Develop).
func WithErrorLevel(level ErrorLevel) Option {
	return func(c *Connection) { c.errorLevel = level }
}

// Open wraps driver in a Connection ready for Ow/Int/Allowlist/Execute.
func Open(driver Driver, opts ...Option) *Connection {
	c := &Connection{
		driver:           driver,
		dialect:          driver.DBType(),
		overwrite:        NewBidiRegistry[string, string](),
		errorMsg:         NewBidiRegistry[string, string](),
		errorsByKey:      make(map[string]error),
		allowlist:        make(map[string]struct{}),
		lenRange:         newLengthRange(minPlaceholderLen, minPlaceholderLen+1),
		errorLevel:       Develop,
		logger:           defaultLogger(),
		whitespaceAround: NewBidiRegistry[string, string](),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger.InfoContext(context.Background(), "owsql connection opened", "dialect", c.dialect.String())
	return c
}

// pad wraps a placeholder in the single spaces spec.md's ow contract
// requires.
func pad(placeholder string) string {
	return " " + placeholder + " "
}

// mint produces a placeholder guaranteed unique across both registries,
// re-minting on the astronomically unlikely event of a collision. Callers
// must hold c.mu.
func (c *Connection) mint() (string, error) {
	for {
		ph, err := mintPlaceholder(&c.serial, c.lenRange)
		if err != nil {
			return "", err
		}
		if c.overwrite.ContainsReverse(ph) || c.errorMsg.ContainsReverse(ph) {
			continue
		}
		return ph, nil
	}
}

// registerOverwrite interns fragment in the overwrite registry (a no-op if
// already present, per BidiRegistry's idempotence) and returns its padded
// placeholder. Callers must hold c.mu.
func (c *Connection) registerOverwrite(fragment string) (string, error) {
	if ph, ok := c.overwrite.Get(fragment); ok {
		return pad(ph), nil
	}
	ph, err := c.mint()
	if err != nil {
		return "", err
	}
	c.overwrite.InsertIfAbsent(fragment, ph)
	return pad(ph), nil
}

// registerError builds an OwsqlError from the current error level via the
// factory rule and defers it behind a placeholder in errorMsg, keyed by
// label+detail so that repeating the same failure reuses the same
// placeholder. AlwaysOk swallows the error entirely, per the factory rule,
// and is modeled here as silently registering the empty fragment: the
// caller's concatenation stays infallible and execute succeeds as if the
// rejected content were simply absent. Callers must hold c.mu.
func (c *Connection) registerError(label, detail string) (string, error) {
	oerr := newOwsqlError(c.errorLevel, label, detail)
	if oerr == nil {
		return c.registerOverwrite("")
	}

	key := label + ":" + detail
	if ph, ok := c.errorMsg.Get(key); ok {
		return pad(ph), nil
	}
	ph, err := c.mint()
	if err != nil {
		return "", err
	}
	c.errorMsg.InsertIfAbsent(key, ph)
	c.errorsByKey[key] = oerr
	return pad(ph), nil
}

// Ow registers fragment as a trusted SQL fragment after validating its
// quote balance, returning a padded placeholder. An invalid fragment is not
// rejected immediately — the rejection is deferred to the next
// ActualSQL/Execute/Iterate, per spec.md §7.
func (c *Connection) Ow(fragment string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := checkValidLiteral(fragment); err != nil {
		c.logger.WarnContext(context.Background(), "owsql: deferred invalid literal")
		return c.registerError("invalid literal", fragment)
	}
	return c.registerOverwrite(fragment)
}

// OwWithoutHTMLEscape wraps value in single quotes after dialect-appropriate
// quote (and, for MySQL/PostgreSQL, backslash) doubling, then registers the
// result as a trusted fragment. It is hazardous: unlike Ow it bypasses any
// HTML-entity escaping the caller might otherwise apply on this path.
func (c *Connection) OwWithoutHTMLEscape(value Value) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	quoted := c.dialect.QuoteAllowlistValue(stringify(value))
	return c.registerOverwrite(quoted)
}

// Int registers value's canonical signed 64-bit integer form as a trusted
// fragment, or defers a "non integer" error if it does not parse as one.
func (c *Connection) Int(value Value) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := stringify(value)
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		c.logger.WarnContext(context.Background(), "owsql: deferred non integer")
		return c.registerError("non integer", s)
	}
	return c.registerOverwrite(strconv.FormatInt(n, 10))
}

// Allowlist returns the placeholder for value's escaped allowlist form if
// value was previously passed to AddAllowlist, or defers a "deny value"
// error otherwise.
func (c *Connection) Allowlist(value Value) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := stringify(value)
	if _, ok := c.allowlist[s]; !ok {
		c.logger.WarnContext(context.Background(), "owsql: deferred deny value")
		return c.registerError("deny value", s)
	}
	return c.registerOverwrite(c.dialect.QuoteAllowlistValue(s))
}

// AddAllowlist inserts each stringified value into the allowlist set and
// registers its dialect-escaped form as a trusted fragment, so that a later
// Allowlist call for the same value succeeds.
func (c *Connection) AddAllowlist(values ...Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range values {
		s := stringify(v)
		c.allowlist[s] = struct{}{}
		if _, err := c.registerOverwrite(c.dialect.QuoteAllowlistValue(s)); err != nil {
			return err
		}
	}
	return nil
}

// SetOwLen sets the placeholder length range. A single argument fixes an
// exact length; two arguments set a half-open range [lo, hi) (use hi =
// n+1 for an inclusive upper bound of n). Both ends are raised to 32 if
// given lower.
func (c *Connection) SetOwLen(bounds ...int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch len(bounds) {
	case 1:
		c.lenRange = newLengthRange(bounds[0], bounds[0]+1)
	case 2:
		c.lenRange = newLengthRange(bounds[0], bounds[1])
	default:
		panic("owsql: SetOwLen expects 1 (fixed length) or 2 (range) arguments")
	}
}

// SetErrorLevel changes the error level. Setting Debug outside a build
// compiled with the owsql_debug tag fails.
func (c *Connection) SetErrorLevel(level ErrorLevel) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if level == Debug && !IsDebugBuild {
		return fmt.Errorf("owsql: debug error level requires a debug build")
	}
	c.errorLevel = level
	return nil
}

// registerWhitespaceAround is an internal hook mirroring the original
// implementation's whitespace_around registry; nothing in the public API
// calls it yet (see DESIGN.md).
func (c *Connection) registerWhitespaceAround(fragment, placeholder string) {
	c.whitespaceAround.InsertIfAbsent(fragment, placeholder)
}

// ActualSQL runs the tokenize/rewrite pipeline over q and returns the
// resulting SQL without executing it. When q begins with whitespace (as
// every padded placeholder does) and yields at least one token, the output
// begins with a single space, so ActualSQL(ow(f)) is " f ".
func (c *Connection) ActualSQL(q string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tokens := tokenize(q, c.overwrite, c.errorMsg)
	resolve := func(key string) error { return c.errorsByKey[key] }
	sql, err := rewrite(tokens, c.dialect.MustEscape, resolve)
	if err != nil {
		return "", err
	}
	if len(tokens) > 0 && strings.TrimLeftFunc(q, unicode.IsSpace) != q {
		sql = " " + sql
	}
	return sql, nil
}

// Execute runs q's rewritten SQL against the driver with no result set
// expected.
func (c *Connection) Execute(q string) error {
	sql, err := c.ActualSQL(q)
	if err != nil {
		return err
	}
	if err := c.driver.Execute(sql); err != nil {
		c.logger.ErrorContext(context.Background(), "owsql: execute failed", "error", err)
		return wrapDriverError(err)
	}
	return nil
}

// Iterate runs q's rewritten SQL and invokes cb once per row until cb
// returns false or rows are exhausted.
func (c *Connection) Iterate(q string, cb func([]ColumnValue) bool) error {
	sql, err := c.ActualSQL(q)
	if err != nil {
		return err
	}
	if err := c.driver.Iterate(sql, cb); err != nil {
		c.logger.ErrorContext(context.Background(), "owsql: iterate failed", "error", err)
		return wrapDriverError(err)
	}
	return nil
}

// Rows runs q and materializes every row into a slice.
func (c *Connection) Rows(q string) ([]Row, error) {
	var rows []Row
	err := c.Iterate(q, func(cols []ColumnValue) bool {
		row := Row{}
		for _, cv := range cols {
			row.Columns = append(row.Columns, cv.Column)
			row.Values = append(row.Values, cv.Value)
		}
		rows = append(rows, row)
		return true
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Close releases the underlying driver, if it supports closing.
func (c *Connection) Close() error {
	c.logger.InfoContext(context.Background(), "owsql connection closed", "dialect", c.dialect.String())
	if closer, ok := c.driver.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
