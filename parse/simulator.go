package parse

import (
	"github.com/npillmayer/fuzzyparse/automaton"
	"github.com/npillmayer/fuzzyparse/token"
)

// simulator probes recovery candidates without ever touching the real
// parser's stack or builder (§4.J). It clones the state-stack prefix
// and runs reductions against a throwaway Builder seeded only deep
// enough to keep pop operations from underflowing.
type simulator struct {
	d      *Driver
	prefix []int32
	stream *token.Stream
}

func newSimulator(d *Driver, stack []int32, stream *token.Stream) *simulator {
	prefix := make([]int32, len(stack))
	copy(prefix, stack)
	return &simulator{d: d, prefix: prefix, stream: stream}
}

// testForLength attempts n consecutive shifts without hitting an Error
// action. If injected is non-nil, it is used as the very first
// lookahead (not read from the stream); every subsequent lookahead
// (and the first one, if injected is nil) is read from the real
// stream and counted in consumed, so the caller can rewind exactly
// that many tokens afterwards regardless of outcome.
func (s *simulator) testForLength(n int, injected *token.Token) (ok bool, consumed int) {
	stack := make([]int32, len(s.prefix))
	copy(stack, s.prefix)
	b := NewBuilder()
	b.SeedPlaceholders(len(stack) - 1)

	steps := 0
	pending := injected
	for steps < n {
		var tok token.Token
		if pending != nil {
			tok = *pending
			pending = nil
		} else {
			tok = s.stream.GetNextToken()
			consumed++
		}
		code := s.d.run(&stack, b, tok, true)
		switch code {
		case automaton.ActionShift:
			steps++
		case automaton.ActionAccept:
			return true, consumed
		default: // Error
			return false, consumed
		}
	}
	return true, consumed
}
