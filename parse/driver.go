package parse

import (
	"github.com/npillmayer/fuzzyparse/automaton"
	"github.com/npillmayer/fuzzyparse/lexer"
	"github.com/npillmayer/fuzzyparse/token"
)

// Driver is the LR(k) parser driver of §4.I: it pairs a precompiled
// Automaton with a token stream and an AST builder, running the
// standard shift/reduce loop plus speculative error recovery.
type Driver struct {
	aut         *automaton.Automaton
	dec         decoder
	actions     []SemanticAction
	variables   []int32
	virtuals    []int32
	maxErrors   int
	maxStack    int
	recovery    bool
	maxDistance int
	nameOf      lexer.NameFunc
}

// NewDriver creates a Driver over aut, applying opts over sensible
// defaults (maxErrors=25, maxStack=4096, recovery=true, maxDistance=2).
func NewDriver(aut *automaton.Automaton, opts ...Option) *Driver {
	d := &Driver{
		aut:         aut,
		dec:         decoder{aut: aut},
		maxErrors:   25,
		maxStack:    4096,
		recovery:    true,
		maxDistance: 2,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Result is the outcome of a Parse call.
type Result struct {
	Tree   *Node
	Errors []token.ParseError
}

// Parse lexes and parses text in one pass, returning the accepted
// syntax tree (nil if parsing aborted) and every error encountered, in
// input order.
func (d *Driver) Parse(text string, sink token.ErrorSink) Result {
	var errs []token.ParseError
	wrapped := func(e token.ParseError) {
		errs = append(errs, e)
		if sink != nil {
			sink(e)
		}
	}

	lx := lexer.New(text, d.aut, d.maxDistance, wrapped, d.nameOf)
	stream := token.NewStream(lx)
	builder := NewBuilder()
	stack := []int32{0}

	tok := stream.GetNextToken()
	for {
		code := d.run(&stack, builder, tok, false)
		switch code {
		case automaton.ActionShift:
			tok = stream.GetNextToken()
		case automaton.ActionAccept:
			return Result{Tree: builder.GetTree(), Errors: errs}
		default: // ActionError
			expected := d.aut.GetExpected(stack[len(stack)-1])
			wrapped(&token.UnexpectedToken{
				Tok:      tok,
				Expected: expectedIDs(expected),
				Line:     tok.Line,
				Column:   tok.Column,
			})
			if len(errs) >= d.maxErrors {
				return Result{Tree: nil, Errors: errs}
			}
			next, recovered := d.onUnexpectedToken(stack, stream, tok)
			if !recovered {
				return Result{Tree: nil, Errors: errs}
			}
			tok = next
		}
		if len(stack) > d.maxStack {
			return Result{Tree: nil, Errors: errs}
		}
	}
}

// run executes the shift/reduce loop for a single lookahead token,
// mutating stack and builder, and returns the terminal action code
// reached (Shift, Accept or Error). When dry is true, reductions skip
// host semantic actions — used by the simulator.
func (d *Driver) run(stack *[]int32, b *Builder, tok token.Token, dry bool) automaton.ActionCode {
	for {
		head := (*stack)[len(*stack)-1]
		act := d.dec.action(head, tok.SymbolID)
		switch act.Code {
		case automaton.ActionShift:
			*stack = append(*stack, act.Data)
			b.StackPush(tok)
			return automaton.ActionShift
		case automaton.ActionReduce:
			prod := d.aut.GetProduction(act.Data)
			*stack = (*stack)[:len(*stack)-int(prod.ReductionLen)]
			d.runReduction(prod, b, dry)
			headSym := d.resolveVariable(prod.Head)
			newHead := (*stack)[len(*stack)-1]
			gotoAct := d.dec.action(newHead, headSym)
			*stack = append(*stack, gotoAct.Data)
		default: // Accept, Error
			return act.Code
		}
	}
}

func expectedIDs(set interface{ Values() []interface{} }) []int32 {
	vals := set.Values()
	ids := make([]int32, len(vals))
	for i, v := range vals {
		ids[i] = v.(int32)
	}
	return ids
}

// onUnexpectedToken runs the three-step speculative recovery of §4.I:
// drop-one, drop-two, insert-expected-terminal. stack is read-only
// here (simulated on a copy); on success it returns the token the
// caller should feed back into the main loop.
func (d *Driver) onUnexpectedToken(stack []int32, stream *token.Stream, tok token.Token) (token.Token, bool) {
	if !d.recovery {
		return token.Token{}, false
	}

	sim := newSimulator(d, stack, stream)

	// Step 1: drop one (the unexpected token itself is simply discarded
	// by not feeding it back in; probe the next 3 tokens as-is).
	if ok, consumed := sim.testForLength(3, nil); ok {
		stream.Rewind(consumed)
		return stream.GetNextToken(), true
	} else {
		stream.Rewind(consumed)
	}

	// Step 2: drop two.
	extra := stream.GetNextToken()
	_ = extra
	if ok, consumed := sim.testForLength(3, nil); ok {
		stream.Rewind(consumed)
		return stream.GetNextToken(), true
	} else {
		stream.Rewind(consumed)
		stream.Rewind(1) // undo the extra drop
	}

	// Step 3: insert each expected terminal, in ascending id order.
	expected := d.aut.GetExpected(stack[len(stack)-1])
	for _, v := range expected.Values() {
		id := v.(int32)
		dummy := token.Token{SymbolID: id, Line: tok.Line, Column: tok.Column}
		if ok, consumed := sim.testForLength(3, &dummy); ok {
			stream.Rewind(consumed)
			return dummy, true
		} else {
			stream.Rewind(consumed)
		}
	}

	return token.Token{}, false
}
