// Package grammar implements the declarative DSL a user type's grammar
// annotation is written in: parsing the DSL text into an AST, optimizing it,
// and interpreting it against a gpeg.Source to bind a struct's fields.
//
// Grounded on pegy-derive's grammar/ast/ast_transform/lib modules, which do
// the equivalent job at Rust compile time via a proc-macro. Go has no
// compile-time macro facility, so every stage here runs at ordinary runtime
// (see DeriveStruct's per-type cache in derive.go) - the spec itself sanctions
// this substitution explicitly (see its design notes on build-time vs.
// runtime grammar compilation).
package grammar

import "fmt"

// Alternatives is an ordered list of Alternative, tried left to right (PEG
// ordered choice), plus a Preparse prefix of terms common to every
// alternative, extracted by Optimize. Grounded on
// pegy-derive/src/ast.rs's Alternatives.
type Alternatives struct {
	Preparse []SpecialTerm
	Alts     []Alternative
}

// Alternative is a sequenced list of SpecialTerm: every term must match, in
// order, for the alternative to succeed.
type Alternative struct {
	Terms []SpecialTerm
}

// SpecialTermKind discriminates the four annotation forms a term may carry.
type SpecialTermKind int

const (
	KindPlain SpecialTermKind = iota
	KindBinding
	KindNegativeLookahead
	KindQuiet
)

// SpecialTerm is one annotated term within an Alternative: a plain match, a
// named/positional binding ($name:term), a negative lookahead (!term), or a
// quiet match (_term) whose output is discarded.
type SpecialTerm struct {
	Kind    SpecialTermKind
	Name    string // binding target; only set when Kind == KindBinding
	Term    Term
	Quant   Quantifier
}

// Equal reports structural equality, used by Optimize to find the longest
// common prefix across a set of alternatives.
func (s SpecialTerm) Equal(o SpecialTerm) bool {
	return s.Kind == o.Kind && s.Name == o.Name && s.Term.Equal(o.Term) && s.Quant.Equal(o.Quant)
}

// TermKind discriminates the five grammar term shapes.
type TermKind int

const (
	TermString TermKind = iota
	TermChar
	TermRuleRef
	TermClass
	TermGroup
)

// CharRange is one inclusive range within a character class.
type CharRange struct {
	Lo, Hi rune
}

// Term is one leaf or nested grammar construct.
type Term struct {
	Kind TermKind

	// TermString
	Literal string

	// TermChar
	Char rune

	// TermRuleRef: Name optionally followed by verbatim generic argument text
	// (e.g. "DIGIT<16>" -> Name="DIGIT", TypeArgs="16").
	Name     string
	TypeArgs string

	// TermClass
	Ranges   []CharRange
	Negated  bool

	// TermGroup
	Group *Alternatives
}

// Equal reports structural equality between two Terms.
func (t Term) Equal(o Term) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TermString:
		return t.Literal == o.Literal
	case TermChar:
		return t.Char == o.Char
	case TermRuleRef:
		return t.Name == o.Name && t.TypeArgs == o.TypeArgs
	case TermClass:
		if t.Negated != o.Negated || len(t.Ranges) != len(o.Ranges) {
			return false
		}
		for i := range t.Ranges {
			if t.Ranges[i] != o.Ranges[i] {
				return false
			}
		}
		return true
	case TermGroup:
		return t.Group.Equal(o.Group)
	default:
		return false
	}
}

// Equal reports structural equality between two Alternatives trees -
// Preparse is excluded, since Optimize is the only producer of a non-empty
// Preparse and two differently-optimized trees should still compare equal by
// their unoptimized shape for testing purposes (see optimize_test.go's
// TestOptimizePreservesSemanticEquivalence).
func (a *Alternatives) Equal(o *Alternatives) bool {
	if a == nil || o == nil {
		return a == o
	}
	all := func(x *Alternatives) []Alternative {
		if len(x.Preparse) == 0 {
			return x.Alts
		}
		combined := make([]Alternative, len(x.Alts))
		for i, alt := range x.Alts {
			terms := make([]SpecialTerm, 0, len(x.Preparse)+len(alt.Terms))
			terms = append(terms, x.Preparse...)
			terms = append(terms, alt.Terms...)
			combined[i] = Alternative{Terms: terms}
		}
		return combined
	}
	xa, xo := all(a), all(o)
	if len(xa) != len(xo) {
		return false
	}
	for i := range xa {
		if len(xa[i].Terms) != len(xo[i].Terms) {
			return false
		}
		for j := range xa[i].Terms {
			if !xa[i].Terms[j].Equal(xo[i].Terms[j]) {
				return false
			}
		}
	}
	return true
}

// QuantifierKind discriminates the quantifier forms a term may carry.
type QuantifierKind int

const (
	QuantNone QuantifierKind = iota
	QuantOptional
	QuantPlus
	QuantStar
	QuantRange
	QuantSeparated
)

// Quantifier modifies how many times, and how, a Term is matched.
type Quantifier struct {
	Kind QuantifierKind

	// QuantRange: Min always set; Max < 0 means unbounded ("{min,}").
	Min, Max int

	// QuantSeparated: the separator term, matched between repetitions.
	Sep *Term
}

// Equal reports structural equality between two Quantifiers.
func (q Quantifier) Equal(o Quantifier) bool {
	if q.Kind != o.Kind {
		return false
	}
	switch q.Kind {
	case QuantRange:
		return q.Min == o.Min && q.Max == o.Max
	case QuantSeparated:
		if q.Sep == nil || o.Sep == nil {
			return q.Sep == o.Sep
		}
		return q.Sep.Equal(*o.Sep)
	default:
		return true
	}
}

func (q Quantifier) String() string {
	switch q.Kind {
	case QuantNone:
		return ""
	case QuantOptional:
		return "?"
	case QuantPlus:
		return "+"
	case QuantStar:
		return "*"
	case QuantRange:
		if q.Max < 0 {
			return fmt.Sprintf("{%d,}", q.Min)
		}
		if q.Max == q.Min {
			return fmt.Sprintf("{%d}", q.Min)
		}
		return fmt.Sprintf("{%d,%d}", q.Min, q.Max)
	case QuantSeparated:
		return "**" + q.Sep.Name
	default:
		return "?unknown?"
	}
}
