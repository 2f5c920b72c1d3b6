package automaton

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// blobBuilder assembles a binary automaton resource in the format
// Load expects, for use in tests. Mirrors the layout documented in
// DESIGN.md's Open Question resolution.
type blobBuilder struct {
	buf bytes.Buffer
}

func (b *blobBuilder) u32(v uint32) *blobBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *blobBuilder) i32(v int32) *blobBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *blobBuilder) bytes() []byte { return b.buf.Bytes() }

// buildTwoStateIf builds a tiny automaton accepting the literal string
// "if" as terminal 7: state 0 --'i'--> state 1 --'f'--> state 2 (accepting).
func buildTwoStateIf(t *testing.T) []byte {
	t.Helper()
	b := &blobBuilder{}
	b.u32(3) // 3 states

	// state 0: no terminals, cached['i']=1, rest dead, no bulk ranges
	b.u32(0)
	for c := 0; c < 256; c++ {
		if c == 'i' {
			b.i32(1)
		} else {
			b.i32(DeadState)
		}
	}
	b.u32(0)

	// state 1: no terminals, cached['f']=2
	b.u32(0)
	for c := 0; c < 256; c++ {
		if c == 'f' {
			b.i32(2)
		} else {
			b.i32(DeadState)
		}
	}
	b.u32(0)

	// state 2: terminal 7 (accept), dead-end
	b.u32(1).i32(7)
	for c := 0; c < 256; c++ {
		b.i32(DeadState)
	}
	b.u32(0)

	b.u32(1) // 1 terminal kind
	b.u32(0) // 0 actions
	b.u32(0) // 0 productions

	return b.bytes()
}

func TestLoadTwoStateIf(t *testing.T) {
	a, err := Load(buildTwoStateIf(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if a.StateCount() != 3 {
		t.Fatalf("expected 3 states, got %d", a.StateCount())
	}
	s0 := a.GetState(0)
	if s0.Next('i') != 1 {
		t.Errorf("state0.Next('i') = %d, want 1", s0.Next('i'))
	}
	if s0.Next('x') != DeadState {
		t.Errorf("state0.Next('x') = %d, want DeadState", s0.Next('x'))
	}
	s1 := a.GetState(1)
	if s1.Next('f') != 2 {
		t.Errorf("state1.Next('f') = %d, want 2", s1.Next('f'))
	}
	s2 := a.GetState(2)
	if !s2.HasTerminals() || s2.Terminals[0] != 7 {
		t.Errorf("state2 terminals = %v, want [7]", s2.Terminals)
	}
	if !s2.IsDeadEnd() {
		t.Errorf("state2 should be dead-end")
	}
	if a.Checksum() == "" {
		t.Errorf("expected non-empty checksum")
	}
}

func TestGetActionAndExpected(t *testing.T) {
	b := &blobBuilder{}
	b.u32(1) // 1 state
	b.u32(0)
	for c := 0; c < 256; c++ {
		b.i32(DeadState)
	}
	b.u32(0)
	b.u32(3) // 3 terminal kinds
	b.u32(2) // 2 actions
	// state 0, terminal 1 -> shift to state 5
	b.i32(0).i32(1).i32(int32(ActionShift)).i32(5)
	// state 0, terminal 2 -> reduce production 0
	b.i32(0).i32(2).i32(int32(ActionReduce)).i32(0)
	b.u32(0) // 0 productions

	a, err := Load(b.bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	act := a.GetAction(0, 1)
	if act.Code != ActionShift || act.Data != 5 {
		t.Errorf("GetAction(0,1) = %+v, want Shift/5", act)
	}
	act = a.GetAction(0, 0)
	if act.Code != ActionError {
		t.Errorf("GetAction(0,0) = %+v, want Error", act)
	}
	expected := a.GetExpected(0)
	if expected.Size() != 2 {
		t.Errorf("GetExpected(0) size = %d, want 2", expected.Size())
	}
}

func TestLoadProduction(t *testing.T) {
	b := &blobBuilder{}
	b.u32(0) // 0 states
	b.u32(0) // 0 terminals
	b.u32(0) // 0 actions
	b.u32(1) // 1 production
	// head=3, length=2, headAction=TreeNone, bytecode: PopStack(Drop), SemAction(4)
	b.i32(3).i32(2).i32(int32(TreeNone)).u32(2)
	b.i32(int32(OpPopStack)).i32(int32(TreeDrop))
	b.i32(int32(OpSemAction)).i32(4)

	a, err := Load(b.bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p := a.GetProduction(0)
	if p.Head != 3 || p.ReductionLen != 2 {
		t.Fatalf("unexpected production: %+v", p)
	}
	if len(p.Bytecode) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(p.Bytecode))
	}
	if p.Bytecode[0].Op != OpPopStack || p.Bytecode[0].Action != TreeDrop {
		t.Errorf("instr0 = %+v", p.Bytecode[0])
	}
	if p.Bytecode[1].Op != OpSemAction || p.Bytecode[1].Operand != 4 {
		t.Errorf("instr1 = %+v", p.Bytecode[1])
	}
}
