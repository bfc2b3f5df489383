// Package pratt implements a generic operator-precedence (Pratt) parser
// layered on a user-supplied primary-expression parser, supporting prefix,
// infix, and postfix operators with configurable precedence and
// declaration-order tie-breaking within a precedence level.
//
// A direct, mechanical port of pegy/src/pratt/mod.rs's PrattBuilder/Pratt:
// tokenize (greedy prefix run, one primary, greedy postfix run, then repeat
// {infix, prefix run, primary, postfix run} until no infix matches) followed
// by a descending-precedence reduction pass. The control flow translates
// cleanly to Go as-is; the only real adaptation is trading Rust's per-variant
// enum (ParsedToken<T>) for a single tagged struct, since Go has no sum
// types, and dropping async/await for ordinary blocking calls against
// gpeg.Source (this package's Parse is itself a suspension point only in
// the sense that the primary parser it drives may block on streaming input).
package pratt

import (
	"fmt"

	"github.com/parsekit/gpeg"
)

// Kind discriminates the three operator roles a rule may be registered
// under.
type Kind int

const (
	Prefix Kind = iota
	Infix
	Postfix
)

type rule[N any] struct {
	name       N
	precedence int
	kind       Kind
	id         int
}

// PrattBuilder accumulates rules before Build freezes them into a Pratt.
// Rules are resorted by precedence in Build; within one precedence level,
// registration order is preserved and is user-visible as the tie-break the
// spec calls out.
type PrattBuilder[N any, T any] struct {
	rules    []rule[N]
	prefixes []opLit
	suffixes []opLit
	infixes  []opLit
	nextID   int
}

type opLit struct {
	id      int
	literal string
}

// NewBuilder starts an empty PrattBuilder.
func NewBuilder[N any, T any]() *PrattBuilder[N, T] {
	return &PrattBuilder[N, T]{}
}

// WithRule registers one operator: precedence (higher binds tighter), a
// name carried into the resulting Node, its role (Prefix/Infix/Postfix), and
// its literal spelling matched via Source.MatchStr. Returns the builder for
// chaining.
func (b *PrattBuilder[N, T]) WithRule(precedence int, name N, kind Kind, literal string) *PrattBuilder[N, T] {
	id := b.nextID
	b.nextID++
	switch kind {
	case Prefix:
		b.prefixes = append(b.prefixes, opLit{id, literal})
	case Infix:
		b.infixes = append(b.infixes, opLit{id, literal})
	case Postfix:
		b.suffixes = append(b.suffixes, opLit{id, literal})
	}
	b.rules = append(b.rules, rule[N]{name: name, precedence: precedence, kind: kind, id: id})
	return b
}

// Build freezes the builder into a Pratt parser, ordering rules ascending
// by precedence (ties broken by registration order, since sort is stable).
func (b *PrattBuilder[N, T]) Build() *Pratt[N, T] {
	rules := append([]rule[N](nil), b.rules...)
	stableSortByPrecedence(rules)
	return &Pratt[N, T]{
		rules:    rules,
		prefixes: append([]opLit(nil), b.prefixes...),
		suffixes: append([]opLit(nil), b.suffixes...),
		infixes:  append([]opLit(nil), b.infixes...),
	}
}

func stableSortByPrecedence[N any](rules []rule[N]) {
	for i := 1; i < len(rules); i++ {
		for j := i; j > 0 && rules[j-1].precedence > rules[j].precedence; j-- {
			rules[j-1], rules[j] = rules[j], rules[j-1]
		}
	}
}

// Node is a reduced Pratt parse result: either a bare primary value or an
// operator application over left and/or right subtrees (right only for a
// Prefix rule, left only for a Postfix rule, both for an Infix rule).
type Node[N any, T any] struct {
	IsPrimary bool
	Primary   T

	Rule  N
	Left  *Node[N, T]
	Right *Node[N, T]
}

type tokKind int

const (
	tkPrefix tokKind = iota
	tkSuffix
	tkInfix
	tkPrimary
	tkNode
)

type token[N any, T any] struct {
	kind  tokKind
	id    int
	span  gpeg.Span
	value T
	left  *token[N, T]
	right *token[N, T]
}

// Pratt is a built, reusable operator-precedence parser.
type Pratt[N any, T any] struct {
	rules    []rule[N]
	prefixes []opLit
	suffixes []opLit
	infixes  []opLit
}

// Builder starts a new PrattBuilder for rule type N and primary type T.
func Builder[N any, T any]() *PrattBuilder[N, T] {
	return NewBuilder[N, T]()
}

// Parse tokenizes src with primary as the leaf parser, then reduces the
// token stream into a single Node.
func (p *Pratt[N, T]) Parse(src gpeg.Source, primary gpeg.Parser[T]) (Node[N, T], error) {
	tokens, err := p.tokenize(src, primary)
	if err != nil {
		return Node[N, T]{}, err
	}
	reduced, err := p.reduce(tokens)
	if err != nil {
		return Node[N, T]{}, err
	}
	return p.toNode(reduced), nil
}

func matchAnyRev(src gpeg.Source, ops []opLit) (opLit, gpeg.Span, bool) {
	for i := len(ops) - 1; i >= 0; i-- {
		start := src.Position()
		if src.MatchStr(ops[i].literal) {
			return ops[i], gpeg.NewSpan(start, src.Position()), true
		}
	}
	return opLit{}, gpeg.Span{}, false
}

func (p *Pratt[N, T]) tokenize(src gpeg.Source, primary gpeg.Parser[T]) ([]token[N, T], error) {
	var tokens []token[N, T]

	for {
		op, span, ok := matchAnyRev(src, p.prefixes)
		if !ok {
			break
		}
		tokens = append(tokens, token[N, T]{kind: tkPrefix, id: op.id, span: span})
	}

	prim, err := primary(src)
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, token[N, T]{kind: tkPrimary, value: prim})

	for {
		op, span, ok := matchAnyRev(src, p.suffixes)
		if !ok {
			break
		}
		tokens = append(tokens, token[N, T]{kind: tkSuffix, id: op.id, span: span})
	}

	for {
		op, span, ok := matchAnyRev(src, p.infixes)
		if !ok {
			break
		}
		tokens = append(tokens, token[N, T]{kind: tkInfix, id: op.id, span: span})

		for {
			pop, pspan, pok := matchAnyRev(src, p.prefixes)
			if !pok {
				break
			}
			tokens = append(tokens, token[N, T]{kind: tkPrefix, id: pop.id, span: pspan})
		}

		prim, err := primary(src)
		if err != nil {
			break
		}
		tokens = append(tokens, token[N, T]{kind: tkPrimary, value: prim})

		for {
			sop, sspan, sok := matchAnyRev(src, p.suffixes)
			if !sok {
				break
			}
			tokens = append(tokens, token[N, T]{kind: tkSuffix, id: sop.id, span: sspan})
		}
	}

	return tokens, nil
}

func isOperand[N any, T any](tk *token[N, T]) bool {
	return tk.kind == tkPrimary || tk.kind == tkNode
}

// reduce applies each rule in descending precedence order, mutating tokens
// in place exactly as the original does (slice-splice instead of Vec::remove
// pairs, same left-to-right/right-to-left scan directions per role).
func (p *Pratt[N, T]) reduce(tokens []token[N, T]) ([]token[N, T], error) {
	for ri := len(p.rules) - 1; ri >= 0; ri-- {
		r := p.rules[ri]

		if r.kind == Prefix {
			for i := len(tokens) - 1; i >= 0; i-- {
				if tokens[i].kind != tkPrefix || tokens[i].id != r.id {
					continue
				}
				if i+1 >= len(tokens) || !isOperand(&tokens[i+1]) {
					return nil, gpeg.NewErrorf(tokens[i].span, "unexpected token")
				}
				right := tokens[i+1]
				node := token[N, T]{kind: tkNode, id: packID(Prefix, r.id), right: &right}
				tokens = append(tokens[:i+1], tokens[i+2:]...)
				tokens[i] = node
			}
			continue
		}

		idx := 0
		for idx < len(tokens) {
			tk := tokens[idx]
			switch {
			case tk.kind == tkInfix && r.kind == Infix && tk.id == r.id:
				if idx-1 < 0 || !isOperand(&tokens[idx-1]) {
					return nil, gpeg.NewErrorf(tk.span, "unexpected token")
				}
				if idx+1 >= len(tokens) || !isOperand(&tokens[idx+1]) {
					return nil, gpeg.NewErrorf(tk.span, "unexpected token")
				}
				left := tokens[idx-1]
				right := tokens[idx+1]
				node := token[N, T]{kind: tkNode, id: packID(Infix, r.id), left: &left, right: &right}
				merged := make([]token[N, T], 0, len(tokens)-2)
				merged = append(merged, tokens[:idx-1]...)
				merged = append(merged, node)
				merged = append(merged, tokens[idx+2:]...)
				tokens = merged
				// idx (unchanged) now addresses the token immediately after
				// the new node - the same left-to-right scan position the
				// original advances to after a Vec::remove pair.
			case tk.kind == tkSuffix && r.kind == Postfix && tk.id == r.id:
				if idx-1 < 0 || !isOperand(&tokens[idx-1]) {
					return nil, gpeg.NewErrorf(tk.span, "unexpected token")
				}
				left := tokens[idx-1]
				node := token[N, T]{kind: tkNode, id: packID(Postfix, r.id), left: &left}
				merged := make([]token[N, T], 0, len(tokens)-1)
				merged = append(merged, tokens[:idx-1]...)
				merged = append(merged, node)
				merged = append(merged, tokens[idx+1:]...)
				tokens = merged
			default:
				idx++
			}
		}
	}

	if len(tokens) != 1 {
		return nil, fmt.Errorf("pratt: reduction left %d tokens, expected 1", len(tokens))
	}
	return tokens, nil
}

// packID combines a Kind and a rule id into reduce's node-identity key, so
// a Prefix rule id and an Infix rule id (drawn from independent counters in
// the original but sharing one counter here via PrattBuilder.nextID) never
// collide when matching a reduced Node back to its originating rule.
func packID(k Kind, id int) int {
	return int(k)<<48 | id
}

func (p *Pratt[N, T]) toNode(tokens []token[N, T]) Node[N, T] {
	return p.tokenToNode(&tokens[0])
}

func (p *Pratt[N, T]) tokenToNode(tk *token[N, T]) Node[N, T] {
	if tk.kind == tkPrimary {
		return Node[N, T]{IsPrimary: true, Primary: tk.value}
	}
	var left, right *Node[N, T]
	if tk.left != nil {
		l := p.tokenToNode(tk.left)
		left = &l
	}
	if tk.right != nil {
		r := p.tokenToNode(tk.right)
		right = &r
	}
	kind, id := unpackID(tk.id)
	for _, r := range p.rules {
		if r.kind == kind && r.id == id {
			return Node[N, T]{Rule: r.name, Left: left, Right: right}
		}
	}
	panic("pratt: reduced node references an unknown rule")
}

func unpackID(packed int) (Kind, int) {
	return Kind(packed >> 48), packed & ((1 << 48) - 1)
}
