package extract

import "github.com/jsscope/core/facts"

// env is the immutable-by-convention context threaded through the walk: a
// new env is built (not mutated) whenever the walk enters a construct that
// changes one of these facts, mirroring the resolver's own pattern of
// deriving a child scope from its parent rather than mutating shared state.
type env struct {
	scope     facts.ScopeID // current lexical (innermost) scope
	funcScope facts.ScopeID // nearest enclosing function-level scope, var's hoist target
}

func newEnv(scope, funcScope facts.ScopeID) env {
	return env{scope: scope, funcScope: funcScope}
}

func (e env) withScope(s facts.ScopeID) env {
	e.scope = s
	return e
}

func (e env) withFunction(bodyScope facts.ScopeID) env {
	e.scope = bodyScope
	e.funcScope = bodyScope
	return e
}
