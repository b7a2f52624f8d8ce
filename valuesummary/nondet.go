package valuesummary

import "psym/solver"

// NondetChoice combines candidate summaries into one summary in which
// fresh boolean variables select among the candidates wherever more
// than one is alive. The result is total over the union of the
// candidate universes: under every assignment, exactly one candidate
// is picked wherever any is alive.
//
// Selection is earliest-match on the fresh variables, with an
// earliest-alive fallback where no variable fires; every candidate
// remains reachable under its whole universe, which is what makes the
// choice exhaustive for the search.
func NondetChoice(ctx *solver.Context, choices []Summary) Summary {
	switch len(choices) {
	case 0:
		return Prim[bool]{}
	case 1:
		return choices[0]
	}
	parts := make([]Summary, 0, 2*len(choices))
	matched := ctx.False()
	for _, c := range choices {
		v := ctx.FreshVar()
		fires := c.Universe().And(v)
		g := fires.And(matched.Not())
		if !g.IsFalse() {
			parts = append(parts, c.Restrict(g))
		}
		matched = matched.Or(fires)
	}
	fallback := matched.Not()
	for _, c := range choices {
		g := c.Universe().And(fallback)
		if !g.IsZero() && !g.IsFalse() {
			parts = append(parts, c.Restrict(g))
		}
		u := c.Universe()
		if !u.IsZero() {
			fallback = fallback.And(u.Not())
		}
	}
	if len(parts) == 0 {
		// Every candidate was empty; keep the caller's concrete type.
		return choices[0].Restrict(ctx.False())
	}
	out := parts[0]
	if len(parts) > 1 {
		out = out.Merge(parts[1:]...)
	}
	return out
}
