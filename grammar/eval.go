package grammar

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/parsekit/gpeg"
)

// Binder receives the output of each binding SpecialTerm encountered while
// evaluating an Alternatives tree against a Source, and constructs the
// user's value once matching succeeds. It is the runtime substitute for the
// teacher's compile-time field-assignment codegen: since Go has no
// compile-time macros, each binding set/get is a reflect.Value operation
// instead of a generated assignment statement.
type Binder struct {
	// fields maps a binding name ("name" for $name:T, "item0"/"item1"/... for
	// positional slots) to the addressable struct field it should be written
	// into.
	fields map[string]reflect.Value
}

// NewBinder builds a Binder over v, which must be a pointer to a struct.
// Every exported field is registered under its Go name and under that name
// with a lower-case first letter (so $name:T reaches field Name); positional slots
// "item0", "item1", ... are additionally registered against the struct's
// fields in declaration order, so a grammar may bind either by field name or
// positionally regardless of how the Go type spells its fields.
func NewBinder(v interface{}) (*Binder, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("grammar: NewBinder requires a pointer to a struct, got %T", v)
	}
	elem := rv.Elem()
	b := &Binder{fields: make(map[string]reflect.Value)}
	for i := 0; i < elem.NumField(); i++ {
		sf := elem.Type().Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := elem.Field(i)
		b.fields[sf.Name] = fv
		r, n := utf8.DecodeRuneInString(sf.Name)
		b.fields[string(unicode.ToLower(r))+sf.Name[n:]] = fv
		b.fields[fmt.Sprintf("item%d", i)] = fv
	}
	return b, nil
}

// Bind assigns val into the field registered under name. val's dynamic type
// must be assignable (or convertible) to the field's type.
func (b *Binder) Bind(name string, val interface{}) error {
	fv, ok := b.fields[name]
	if !ok {
		return fmt.Errorf("grammar: no field bound to %q", name)
	}
	if val == nil {
		return nil
	}
	rv := reflect.ValueOf(val)

	// A repeated binding ($name:T* / + / {...} / **sep) produces []interface{}
	// regardless of T's own concrete type (evalRepeat has no static type to
	// build a typed slice with); if the field is a concrete-element slice,
	// convert element-by-element instead of failing the direct type check.
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Interface &&
		fv.Kind() == reflect.Slice && fv.Type() != rv.Type() {
		out := reflect.MakeSlice(fv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := reflect.ValueOf(rv.Index(i).Interface())
			if !elem.IsValid() {
				continue
			}
			if !elem.Type().AssignableTo(fv.Type().Elem()) {
				if elem.Type().ConvertibleTo(fv.Type().Elem()) {
					elem = elem.Convert(fv.Type().Elem())
				} else {
					return fmt.Errorf("grammar: cannot bind element %d of %s (got %s, want %s)",
						i, name, elem.Type(), fv.Type().Elem())
				}
			}
			out.Index(i).Set(elem)
		}
		fv.Set(out)
		return nil
	}

	// A self-referential field is declared as a pointer to its own type (Go
	// has no other way to give a recursive struct a finite size), but an
	// Optional/quantified rule reference yields its matched value directly,
	// not already boxed - box it here rather than asking every recursive
	// grammar to route through gpeg.Boxed by hand.
	if fv.Kind() == reflect.Ptr && rv.Type().AssignableTo(fv.Type().Elem()) {
		boxed := reflect.New(fv.Type().Elem())
		boxed.Elem().Set(rv)
		fv.Set(boxed)
		return nil
	}

	if !rv.Type().AssignableTo(fv.Type()) {
		if rv.Type().ConvertibleTo(fv.Type()) {
			rv = rv.Convert(fv.Type())
		} else {
			return fmt.Errorf("grammar: cannot bind %s (got %s, want %s)", name, rv.Type(), fv.Type())
		}
	}
	fv.Set(rv)
	return nil
}

// Eval runs alts against src, invoking binder.Bind (if binder is non-nil)
// for every binding SpecialTerm it matches, using reg to resolve rule
// references. It implements the semantics table of the grammar DSL directly
// against a gpeg.Source rather than emitting code that does - the
// runtime-interpreter substitute the spec itself sanctions for
// implementations without compile-time macros.
func Eval(alts *Alternatives, src gpeg.Source, reg *gpeg.Registry, binder *Binder) error {
	start := src.Position()
	for _, st := range alts.Preparse {
		if err := evalSpecialTerm(st, src, reg, binder); err != nil {
			src.SetPosition(start)
			return err
		}
	}

	var worst *gpeg.Error
	for _, alt := range alts.Alts {
		altStart := src.Position()
		err := evalAlternative(alt, src, reg, binder)
		if err == nil {
			return nil
		}
		if perr, ok := err.(*gpeg.Error); ok {
			worst = deepestErr(worst, perr)
		}
		src.SetPosition(altStart)
	}
	src.SetPosition(start)
	if worst != nil {
		return worst
	}
	return gpeg.NewError(gpeg.NewSpan(start, start), "no alternative matched")
}

func deepestErr(a, b *gpeg.Error) *gpeg.Error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.Span.End >= a.Span.End {
		return b
	}
	return a
}

func evalAlternative(alt Alternative, src gpeg.Source, reg *gpeg.Registry, binder *Binder) error {
	start := src.Position()
	for _, st := range alt.Terms {
		if err := evalSpecialTerm(st, src, reg, binder); err != nil {
			src.SetPosition(start)
			return err
		}
	}
	return nil
}

func evalSpecialTerm(st SpecialTerm, src gpeg.Source, reg *gpeg.Registry, binder *Binder) error {
	switch st.Kind {
	case KindNegativeLookahead:
		start := src.Position()
		_, err := evalQuantified(st.Term, st.Quant, src, reg, binder)
		src.SetPosition(start)
		if err == nil {
			return gpeg.NewError(gpeg.NewSpan(start, start), "negative lookahead failed")
		}
		return nil
	case KindQuiet:
		_, err := evalQuantified(st.Term, st.Quant, src, reg, binder)
		return err
	case KindBinding:
		val, err := evalQuantified(st.Term, st.Quant, src, reg, binder)
		if err != nil {
			return err
		}
		if binder != nil {
			if berr := binder.Bind(st.Name, val); berr != nil {
				return berr
			}
		}
		return nil
	default: // KindPlain
		_, err := evalQuantified(st.Term, st.Quant, src, reg, binder)
		return err
	}
}

// evalQuantified evaluates term under quant, returning the value (for
// QuantNone, the term's own value; otherwise a []interface{} of collected
// values, or nil for an unmatched Optional).
func evalQuantified(term Term, quant Quantifier, src gpeg.Source, reg *gpeg.Registry, binder *Binder) (interface{}, error) {
	switch quant.Kind {
	case QuantNone:
		return evalTerm(term, src, reg, binder)

	case QuantOptional:
		start := src.Position()
		v, err := evalTerm(term, src, reg, binder)
		if err != nil {
			src.SetPosition(start)
			return nil, nil
		}
		return v, nil

	case QuantPlus:
		return evalRepeat(term, src, reg, binder, 1, -1, nil)

	case QuantStar:
		return evalRepeat(term, src, reg, binder, 0, -1, nil)

	case QuantRange:
		return evalRepeat(term, src, reg, binder, quant.Min, quant.Max, nil)

	case QuantSeparated:
		return evalRepeat(term, src, reg, binder, 1, -1, quant.Sep)

	default:
		return nil, fmt.Errorf("grammar: unknown quantifier kind %v", quant.Kind)
	}
}

func evalRepeat(term Term, src gpeg.Source, reg *gpeg.Registry, binder *Binder, min, max int, sep *Term) (interface{}, error) {
	start := src.Position()
	var out []interface{}
	last := start
	for max < 0 || len(out) < max {
		itemStart := src.Position()
		v, err := evalTerm(term, src, reg, binder)
		if err != nil {
			src.SetPosition(itemStart)
			break
		}
		out = append(out, v)
		last = src.Position()
		if sep != nil {
			sepStart := src.Position()
			if _, err := evalTerm(*sep, src, reg, binder); err != nil {
				src.SetPosition(sepStart)
				break
			}
		}
	}
	src.SetPosition(last)
	if len(out) < min {
		end := src.Position()
		src.SetPosition(start)
		return nil, gpeg.NewError(gpeg.NewSpan(start, end), "expected minimal number of repeats")
	}
	if out == nil {
		out = []interface{}{}
	}
	return out, nil
}

func evalTerm(term Term, src gpeg.Source, reg *gpeg.Registry, binder *Binder) (interface{}, error) {
	start := src.Position()
	switch term.Kind {
	case TermString:
		if !src.MatchStr(term.Literal) {
			return nil, gpeg.NewErrorf(gpeg.NewSpan(start, start), "expected string literal %q", term.Literal)
		}
		return term.Literal, nil

	case TermChar:
		if !src.MatchChar(term.Char) {
			return nil, gpeg.NewErrorf(gpeg.NewSpan(start, start), "expected character %q", term.Char)
		}
		return term.Char, nil

	case TermRuleRef:
		if p, ok := builtinRuleRef(term.Name, term.TypeArgs); ok {
			return p(src)
		}
		return reg.Symbol(term.Name)(src)

	case TermClass:
		ch, ok := src.Peek()
		if !ok {
			return nil, gpeg.NewError(gpeg.NewSpan(start, start), "expected character class match")
		}
		inClass := false
		for _, r := range term.Ranges {
			if ch.Ch >= r.Lo && ch.Ch <= r.Hi {
				inClass = true
				break
			}
		}
		matched := inClass
		if term.Negated {
			matched = !inClass
		}
		if !matched {
			return nil, gpeg.NewError(gpeg.NewSpan(start, start), "expected character class match")
		}
		src.SetPosition(start + ch.Length)
		return ch.Ch, nil

	case TermGroup:
		// A group shares the enclosing binder, so a binding inside
		// parentheses (e.g. under a repetition quantifier applied to the
		// group) still writes into the surrounding struct.
		err := Eval(term.Group, src, reg, binder)
		if err != nil {
			return nil, err
		}
		end := src.Position()
		return gpeg.NewSpan(start, end), nil

	default:
		return nil, fmt.Errorf("grammar: unknown term kind %v", term.Kind)
	}
}
