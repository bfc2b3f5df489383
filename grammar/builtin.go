package grammar

import (
	"strconv"

	"github.com/parsekit/gpeg"
)

// builtinRuleRef resolves the fixed vocabulary of primitive names spec §4.2
// lists as always-available rule references (ANY, WHITESPACE, DIGIT<RADIX>,
// ...), bypassing Registry lookup entirely - these aren't user rules, they're
// DSL keywords, the same way pegy-derive's codegen special-cases
// pegy::util's primitive names instead of routing them through its own
// symbol table. Returns ok=false for anything else, so the caller falls
// back to a normal Registry rule reference.
func builtinRuleRef(name, typeArgs string) (gpeg.DynParser, bool) {
	switch name {
	case "ANY":
		return gpeg.Dyn(gpeg.Parser[rune](gpeg.ANY)), true
	case "WHITESPACE":
		return gpeg.Dyn(gpeg.Parser[rune](gpeg.WHITESPACE)), true
	case "ALPHABETIC":
		return gpeg.Dyn(gpeg.Parser[rune](gpeg.ALPHABETIC)), true
	case "ALPHANUMERIC":
		return gpeg.Dyn(gpeg.Parser[rune](gpeg.ALPHANUMERIC)), true
	case "CONTROL":
		return gpeg.Dyn(gpeg.Parser[rune](gpeg.CONTROL)), true
	case "UNICODE_ID_START":
		return gpeg.Dyn(gpeg.Parser[rune](gpeg.UnicodeIDStart)), true
	case "UNICODE_ID_CONTINUE":
		return gpeg.Dyn(gpeg.Parser[rune](gpeg.UnicodeIDContinue)), true
	case "EOF":
		return gpeg.Dyn(gpeg.Parser[struct{}](gpeg.EOF)), true
	case "SOF":
		return gpeg.Dyn(gpeg.Parser[struct{}](gpeg.SOF)), true
	case "DIGIT":
		radix := 16
		if typeArgs != "" {
			if n, err := strconv.Atoi(typeArgs); err == nil {
				radix = n
			}
		}
		return gpeg.Dyn(gpeg.Digit(radix)), true
	default:
		return nil, false
	}
}
