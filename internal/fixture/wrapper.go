package fixture

import "github.com/mmrzaf/jsonfixture/internal/domain"

// Wrapper holds the tokens written before the opening '[' and after the
// closing ']'.
type Wrapper struct {
	Prefix string
	Suffix string
}

// RawStringWrapper wraps output in a C++ raw string literal: R"delim( ... )delim".
func RawStringWrapper(delim string) Wrapper {
	return Wrapper{
		Prefix: `R"` + delim + `(`,
		Suffix: `)` + delim + `"`,
	}
}

func DefaultWrapper() Wrapper {
	return RawStringWrapper(domain.DefaultDelimiter)
}
