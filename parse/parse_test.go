package parse

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/npillmayer/fuzzyparse/automaton"
	"github.com/npillmayer/fuzzyparse/token"
)

// buildABGrammar builds a tiny automaton for S -> 'a' 'b': a 3-state
// DFA lexing single-character terminals 'a' (id 3) and 'b' (id 4), and
// a 4-state LR0 table (shift 'a', shift 'b', reduce, accept).
func buildABGrammar(t *testing.T) *automaton.Automaton {
	t.Helper()
	var buf bytes.Buffer
	u32 := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }
	i32 := func(v int32) { binary.Write(&buf, binary.LittleEndian, v) }

	const (
		symA int32 = 3
		symB int32 = 4
		symS int32 = 5
	)

	// --- DFA: s0 -'a'-> s1(accept 3); s0 -'b'-> s2(accept 4) ---
	u32(3)
	// s0
	u32(0)
	for c := 0; c < 256; c++ {
		switch c {
		case 'a':
			i32(1)
		case 'b':
			i32(2)
		default:
			i32(automaton.DeadState)
		}
	}
	u32(0)
	// s1 (accept 'a')
	u32(1)
	i32(symA)
	for c := 0; c < 256; c++ {
		i32(automaton.DeadState)
	}
	u32(0)
	// s2 (accept 'b')
	u32(1)
	i32(symB)
	for c := 0; c < 256; c++ {
		i32(automaton.DeadState)
	}
	u32(0)

	u32(5) // numTerms: ids 0..4 (nothing, epsilon, dollar, a, b)

	// --- LR0 table: 4 parser states (0..3) ---
	u32(5) // action entries
	// (0, 'a') -> Shift 1
	i32(0)
	i32(symA)
	i32(int32(automaton.ActionShift))
	i32(1)
	// (1, 'b') -> Shift 2
	i32(1)
	i32(symB)
	i32(int32(automaton.ActionShift))
	i32(2)
	// (2, '$') -> Reduce production 0
	i32(2)
	i32(token.SymDollar)
	i32(int32(automaton.ActionReduce))
	i32(0)
	// (0, S) -> goto 3 (encoded as Shift)
	i32(0)
	i32(symS)
	i32(int32(automaton.ActionShift))
	i32(3)
	// (3, '$') -> Accept
	i32(3)
	i32(token.SymDollar)
	i32(int32(automaton.ActionAccept))
	i32(0)

	// --- production 0: S -> 'a' 'b', pop b then a (stack order), head=S ---
	u32(1)
	i32(symS) // head
	i32(2)    // reduction length
	i32(int32(automaton.TreeNone))
	u32(2) // bytecode length
	i32(int32(automaton.OpPopStack))
	i32(int32(automaton.TreeNone))
	i32(int32(automaton.OpPopStack))
	i32(int32(automaton.TreeNone))

	a, err := automaton.Load(buf.Bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return a
}

func TestParseAcceptsSimpleGrammar(t *testing.T) {
	aut := buildABGrammar(t)
	d := NewDriver(aut)
	res := d.Parse("ab", nil)

	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	tree := res.Tree
	if tree == nil {
		t.Fatalf("expected a tree, got nil")
	}
	if tree.Kind != KindVariable || tree.Symbol != 5 {
		t.Fatalf("root = %+v, want variable S", tree)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(tree.Children))
	}
	if tree.Children[0].Tok.Value != "a" || tree.Children[1].Tok.Value != "b" {
		t.Errorf("children = %q, %q, want \"a\", \"b\"", tree.Children[0].Tok.Value, tree.Children[1].Tok.Value)
	}
}

func TestParseRecoversFromExtraToken(t *testing.T) {
	// S5-like scenario: "aab" has one stray 'a' the grammar doesn't
	// expect at state 1. Drop-one recovery should discard it and still
	// build the same tree as parsing "ab" directly, reporting exactly
	// one UnexpectedToken error.
	aut := buildABGrammar(t)
	d := NewDriver(aut)
	res := d.Parse("aab", nil)

	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(res.Errors), res.Errors)
	}
	if _, ok := res.Errors[0].(*token.UnexpectedToken); !ok {
		t.Fatalf("expected *UnexpectedToken, got %T", res.Errors[0])
	}
	if res.Tree == nil {
		t.Fatalf("expected recovery to still produce a tree")
	}
	if res.Tree.Kind != KindVariable || res.Tree.Symbol != 5 || len(res.Tree.Children) != 2 {
		t.Fatalf("tree = %+v, want variable S with 2 children", res.Tree)
	}
	if res.Tree.Children[0].Tok.Value != "a" || res.Tree.Children[1].Tok.Value != "b" {
		t.Errorf("children = %q, %q, want \"a\", \"b\"",
			res.Tree.Children[0].Tok.Value, res.Tree.Children[1].Tok.Value)
	}
}

func TestParseRecoversByInsertingExpectedTerminal(t *testing.T) {
	// S6: "a" is missing its required 'b'. Insert-expected recovery
	// should synthesize it (an empty-value leaf) and still build the
	// same tree shape as parsing "ab" directly.
	aut := buildABGrammar(t)
	d := NewDriver(aut)
	res := d.Parse("a", nil)

	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(res.Errors), res.Errors)
	}
	if _, ok := res.Errors[0].(*token.UnexpectedToken); !ok {
		t.Fatalf("expected *UnexpectedToken, got %T", res.Errors[0])
	}
	if res.Tree == nil {
		t.Fatalf("expected recovery to still produce a tree")
	}
	if res.Tree.Kind != KindVariable || res.Tree.Symbol != 5 || len(res.Tree.Children) != 2 {
		t.Fatalf("tree = %+v, want variable S with 2 children", res.Tree)
	}
	if res.Tree.Children[0].Tok.Value != "a" {
		t.Errorf("first child = %q, want \"a\"", res.Tree.Children[0].Tok.Value)
	}
	second := res.Tree.Children[1]
	if second.Symbol != 4 || second.Tok.Value != "" {
		t.Errorf("second child = %+v, want synthetic 'b' leaf with empty value", second)
	}
}
