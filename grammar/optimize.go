package grammar

// Optimize applies two passes to a's top level, in the order
// pegy-derive/src/ast_transform.rs's Alternatives::optimise runs them:
//
//  1. Unreachable-alternative truncation: the first Alternative with zero
//     terms (an empty alternative, which matches trivially without
//     consuming input) makes every alternative after it dead code - a PEG
//     ordered choice never reaches past a branch that always succeeds - so
//     they are dropped, keeping the empty one as the new last alternative.
//  2. Preparse extraction: the longest run of leading SpecialTerms
//     structurally identical across every (surviving) alternative is moved
//     into a's Preparse list, evaluated once before branching instead of
//     redundantly inside every alternative.
//
// Recurses into group Terms so nested alternations are optimized too.
func Optimize(a *Alternatives) *Alternatives {
	if a == nil {
		return nil
	}
	for i, alt := range a.Alts {
		if len(alt.Terms) == 0 {
			a.Alts = a.Alts[:i+1]
			break
		}
	}

	for i := range a.Alts {
		for j := range a.Alts[i].Terms {
			optimizeTerm(&a.Alts[i].Terms[j].Term)
		}
	}

	if len(a.Alts) < 2 {
		return a
	}

	prefixLen := len(a.Alts[0].Terms)
	for _, alt := range a.Alts[1:] {
		if len(alt.Terms) < prefixLen {
			prefixLen = len(alt.Terms)
		}
	}
	for i := 0; i < prefixLen; i++ {
		candidate := a.Alts[0].Terms[i]
		for _, alt := range a.Alts[1:] {
			if !alt.Terms[i].Equal(candidate) {
				prefixLen = i
				break
			}
		}
		if prefixLen == i {
			break
		}
	}

	if prefixLen == 0 {
		return a
	}

	preparse := append([]SpecialTerm(nil), a.Alts[0].Terms[:prefixLen]...)
	newAlts := make([]Alternative, len(a.Alts))
	for i, alt := range a.Alts {
		newAlts[i] = Alternative{Terms: append([]SpecialTerm(nil), alt.Terms[prefixLen:]...)}
	}

	merged := append([]SpecialTerm(nil), a.Preparse...)
	merged = append(merged, preparse...)
	return &Alternatives{Preparse: merged, Alts: newAlts}
}

func optimizeTerm(t *Term) {
	if t.Kind == TermGroup {
		t.Group = Optimize(t.Group)
	}
}
