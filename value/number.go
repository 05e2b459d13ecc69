package value

import "github.com/shopspring/decimal"

// NumberFromInt builds a Number value from an int, used by native
// functions (e.g. `length`) that return counts.
func NumberFromInt(n int) Value {
	return Number(decimal.NewFromInt(int64(n)))
}

// NumberFromString parses a decimal literal exactly as the lexer's number
// token text appears (a digit run, optionally followed by `.` and more
// digits). Callers are expected to have already validated
// the text against that grammar, so a parse failure here indicates an
// internal inconsistency rather than a user-facing error.
func NumberFromString(text string) (Value, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Value{}, err
	}
	return Number(d), nil
}
