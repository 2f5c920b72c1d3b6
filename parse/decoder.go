package parse

import "github.com/npillmayer/fuzzyparse/automaton"

// decoder wraps the automaton's sparse ACTION table (§4.F). It carries
// no state of its own: decoding is a pure (state,symbol) -> Action
// lookup shared by shifts, reduces and gotos alike.
type decoder struct {
	aut *automaton.Automaton
}

func (d decoder) action(state, symbol int32) automaton.Action {
	return d.aut.GetAction(state, symbol)
}
