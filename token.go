package owsql

// tokenKind distinguishes the three token shapes the Tokenizer emits.
type tokenKind int

const (
	tokenPlaceholder tokenKind = iota
	tokenErrorPlaceholder
	tokenUserString
)

// token is one element of the Tokenizer's output sequence.
type token struct {
	kind tokenKind

	// text holds the original trusted Fragment for tokenPlaceholder, and the
	// raw untrusted run for tokenUserString.
	text string

	// errKey holds the errorMsg registry key for tokenErrorPlaceholder, used
	// to recover the original *OwsqlError when the Rewriter aborts.
	errKey string
}
