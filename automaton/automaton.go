/*
Package automaton holds the immutable, read-only DFA and LR tables a
compiled parser/lexer runs against. Tables are loaded once from a
binary resource blob (see Load) and never mutated afterwards; they may
safely be shared across concurrently running parses.
*/
package automaton

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fuzzyparse.automaton'.
func tracer() tracing.Trace {
	return tracing.Select("fuzzyparse.automaton")
}

// DeadState is the sentinel meaning "no transition".
const DeadState int32 = -1

// ActionCode enumerates the four LR action kinds.
type ActionCode int8

const (
	// ActionError means no action is defined for (state, terminal).
	ActionError ActionCode = iota
	// ActionShift means shift and move to the state held in Action.Data.
	ActionShift
	// ActionReduce means reduce by the production at index Action.Data.
	ActionReduce
	// ActionAccept means the input is accepted.
	ActionAccept
)

// Action is an entry of the LR ACTION table: {code, data}. For Shift,
// Data is the next state. For Reduce, Data is a production index.
type Action struct {
	Code ActionCode
	Data int32
}

// TreeAction influences how the AST builder folds a popped subtree
// into its parent during a reduction.
type TreeAction int8

const (
	// TreeNone appends the subtree as a plain child (the default).
	TreeNone TreeAction = iota
	// TreeDrop discards the subtree entirely.
	TreeDrop
	// TreePromote replaces the head by this child.
	TreePromote
	// TreeReplaceByChildren splices this child's children into the head's children.
	TreeReplaceByChildren
)

// Opcode tags a reduction bytecode instruction.
type Opcode int8

const (
	// OpPopStack pops the next symbol of the reduction body, applying a TreeAction.
	OpPopStack Opcode = iota
	// OpAddVirtual inserts a synthetic (virtual) symbol, applying a TreeAction.
	OpAddVirtual
	// OpSemAction invokes a registered semantic-action callback.
	OpSemAction
)

// Instr is one reduction bytecode instruction. AddVirtual and
// SemAction carry an Operand (virtual index / action index
// respectively); PopStack ignores it.
type Instr struct {
	Op      Opcode
	Action  TreeAction // meaningful for PopStack, AddVirtual
	Operand int32      // meaningful for AddVirtual (virtual index), SemAction (action index)
}

// Production is {head, reduction_length, head_action, bytecode}.
type Production struct {
	Head         int32
	ReductionLen int32
	HeadAction   TreeAction
	Bytecode     []Instr
}

// Range is one entry of a state's bulk transition list: all code
// points in [Start,End] transition to Target.
type Range struct {
	Start, End rune
	Target     int32
}

// State is a single DFA state: an (possibly empty) terminals list, a
// dense 256-entry cached transition table for the low-byte dispatch of
// the next code unit, and an ordered bulk transition list covering
// code points outside (or in addition to) the cached range.
type State struct {
	ID         int32
	Terminals  []int32
	Cached     [256]int32 // DeadState where absent
	Bulk       []Range
}

// IsDeadEnd reports whether s has no outgoing transitions at all.
func (s *State) IsDeadEnd() bool {
	for _, t := range s.Cached {
		if t != DeadState {
			return false
		}
	}
	return len(s.Bulk) == 0
}

// HasTerminals reports whether reaching s yields an accepted token.
func (s *State) HasTerminals() bool {
	return len(s.Terminals) > 0
}

// Next returns the target state for code point r from s, or DeadState.
func (s *State) Next(r rune) int32 {
	if r >= 0 && r < 256 {
		if t := s.Cached[r]; t != DeadState {
			return t
		}
	}
	for _, rg := range s.Bulk {
		if r >= rg.Start && r <= rg.End {
			return rg.Target
		}
	}
	return DeadState
}

// Automaton is the frozen, shared DFA + LR table set a parser/lexer
// runs against. Construct with Load.
type Automaton struct {
	states      []State
	actions     *intMatrix // (state, terminal) -> (ActionCode, data)
	productions []Production
	numTerms    int32
	checksum    string
}

// GetState returns the DFA state with the given id.
func (a *Automaton) GetState(i int32) *State {
	return &a.states[i]
}

// StateCount returns the number of DFA states.
func (a *Automaton) StateCount() int {
	return len(a.states)
}

// GetAction looks up the LR action for (state, terminal).
func (a *Automaton) GetAction(state int32, terminal int32) Action {
	code, data := a.actions.values(int(state), int(terminal))
	if code == a.actions.NullValue() {
		return Action{Code: ActionError}
	}
	return Action{Code: ActionCode(code), Data: data}
}

// GetProduction returns the production at index.
func (a *Automaton) GetProduction(index int32) *Production {
	return &a.productions[index]
}

// GetExpected enumerates every terminal id for which GetAction(state, t)
// is non-error, as a sorted set.
func (a *Automaton) GetExpected(state int32) *treeset.Set {
	s := treeset.NewWith(utils.Int32Comparator)
	for t := int32(0); t < a.numTerms; t++ {
		if a.GetAction(state, t).Code != ActionError {
			s.Add(t)
		}
	}
	return s
}

// Checksum returns the hash computed when the table blob was loaded.
// It covers only the state, terminal, action and production counts,
// not the table contents.
func (a *Automaton) Checksum() string {
	return a.checksum
}
