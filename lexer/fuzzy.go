package lexer

import (
	"github.com/npillmayer/fuzzyparse/automaton"
	"github.com/npillmayer/fuzzyparse/text"
	"github.com/npillmayer/fuzzyparse/token"
)

// fznode is a fuzzy search frontier node: {prev, state, length,
// distance, error}. prev is an index into the arena slice rather than
// a pointer — the solution path is walked
// backwards through plain integers, no cyclic ownership to worry about.
type fznode struct {
	prev     int // index into the arena, -1 for the root
	state    int32
	length   int
	distance int
	hasErr   bool
	err      token.UnexpectedChar
}

// transition is one DFA edge out of a state, generalizing both a
// single cached byte entry and a bulk range into one [start,end]->target
// interval.
type transition struct {
	start, end rune
	target     int32
}

func (t transition) contains(r rune) bool {
	return r >= t.start && r <= t.end
}

// outgoing enumerates every transition out of s: the 256 cached
// entries that are not dead, followed by the bulk ranges.
func outgoing(s *automaton.State) []transition {
	trans := make([]transition, 0, 8)
	for c := 0; c < 256; c++ {
		if t := s.Cached[c]; t != automaton.DeadState {
			trans = append(trans, transition{start: rune(c), end: rune(c), target: t})
		}
	}
	for _, r := range s.Bulk {
		trans = append(trans, transition{start: r.Start, end: r.End, target: r.Target})
	}
	return trans
}

// FuzzyMatch searches for the DFA match starting at origin that
// minimizes total Levenshtein edit distance (bounded by maxDistance)
// and, among minimizers, maximizes code units consumed. Every
// synthesized edit on the winning path is reported to sink, in input
// order, before FuzzyMatch returns. If no accepting state is reachable
// within maxDistance, FuzzyMatch reports a single UnexpectedChar at
// origin and returns ok=false with length=1 (forward progress is
// still guaranteed by the caller advancing past that one code unit).
func FuzzyMatch(buf *text.Buffer, aut *automaton.Automaton, origin int, maxDistance int, sink token.ErrorSink) (state int32, length int, ok bool) {
	arena := []fznode{{prev: -1, state: 0, length: 0, distance: 0}}
	best := -1

	enqueue := func(cand fznode) {
		for i := len(arena) - 1; i >= 0; i-- {
			e := arena[i]
			if e.state != cand.state {
				continue
			}
			if cand.length < e.length {
				return // strictly worse prefix consumption for this state: discard
			}
			if cand.length > e.length {
				continue // not dominated by this entry; keep scanning
			}
			// same state, same length
			if cand.distance >= e.distance {
				return // discard
			}
		}
		arena = append(arena, cand)
	}

	for i := 0; i < len(arena); i++ {
		head := arena[i]
		idx := origin + head.length
		atEnd := buf.IsEnd(idx)
		var cur rune
		if !atEnd {
			cur = buf.GetValue(idx)
		}
		s := aut.GetState(head.state)

		// 1. Accept book-keeping.
		if s.HasTerminals() {
			if best == -1 ||
				head.distance < arena[best].distance ||
				(head.distance == arena[best].distance && head.length > arena[best].length) {
				best = i
			}
		}

		// 2. Drop the next input code unit (delete).
		if !atEnd && head.distance < maxDistance {
			pos := buf.GetPositionAt(idx)
			enqueue(fznode{
				prev: i, state: head.state, length: head.length + 1, distance: head.distance + 1,
				hasErr: true,
				err:    token.UnexpectedChar{Char: string(cur), Line: pos.Line, Column: pos.Column},
			})
		}

		// 3. Transitions, skipped entirely (besides Drop above) for a dead-end state.
		if !s.IsDeadEnd() {
			for _, t := range outgoing(s) {
				if !atEnd && t.contains(cur) { // Match: no edit
					enqueue(fznode{prev: i, state: t.target, length: head.length + 1, distance: head.distance})
				}
				if head.distance < maxDistance && !atEnd { // Replace: substitute
					pos := buf.GetPositionAt(idx)
					enqueue(fznode{
						prev: i, state: t.target, length: head.length + 1, distance: head.distance + 1,
						hasErr: true,
						err:    token.UnexpectedChar{Char: string(cur), Line: pos.Line, Column: pos.Column},
					})
				}
				if head.distance < maxDistance { // Insert: expected unit, length does not advance
					pos := buf.GetPositionAt(idx)
					errChar := ""
					if !atEnd {
						errChar = string(cur)
					}
					enqueue(fznode{
						prev: i, state: t.target, length: head.length, distance: head.distance + 1,
						hasErr: true,
						err:    token.UnexpectedChar{Char: errChar, Line: pos.Line, Column: pos.Column},
					})
				}
			}
		}
	}

	if best == -1 {
		pos := buf.GetPositionAt(origin)
		e := &token.UnexpectedChar{Line: pos.Line, Column: pos.Column}
		if !buf.IsEnd(origin) {
			e.Char = string(buf.GetValue(origin))
		}
		sink(e)
		return 0, 1, false
	}

	var errs []token.UnexpectedChar
	for n := best; n != -1; n = arena[n].prev {
		if arena[n].hasErr {
			errs = append(errs, arena[n].err)
		}
	}
	// walked newest-to-oldest; reverse to input order
	for l, r := 0, len(errs)-1; l < r; l, r = l+1, r-1 {
		errs[l], errs[r] = errs[r], errs[l]
	}
	for _, e := range errs {
		e := e
		sink(&e)
	}
	return arena[best].state, arena[best].length, true
}
