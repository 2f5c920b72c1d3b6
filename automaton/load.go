package automaton

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cnf/structhash"
)

// Load decodes a binary automaton resource (see DESIGN.md's "Binary
// table field order" for the field layout this reader expects) into a
// frozen Automaton.
// Load is the only place this package touches encoding/binary; every
// other operation is a pure in-memory lookup.
func Load(blob []byte) (*Automaton, error) {
	r := bytes.NewReader(blob)

	numStates, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("automaton: reading state count: %w", err)
	}
	states := make([]State, numStates)
	for i := range states {
		st, err := readState(r, int32(i))
		if err != nil {
			return nil, fmt.Errorf("automaton: reading state %d: %w", i, err)
		}
		states[i] = st
	}

	numTerms, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("automaton: reading terminal count: %w", err)
	}
	numActions, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("automaton: reading action count: %w", err)
	}
	actions := newIntMatrix(int(numStates), int(numTerms), defaultNullValue)
	for i := uint32(0); i < numActions; i++ {
		state, term, code, data, err := readActionEntry(r)
		if err != nil {
			return nil, fmt.Errorf("automaton: reading action %d: %w", i, err)
		}
		actions.set(int(state), int(term), code, data)
	}

	numProds, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("automaton: reading production count: %w", err)
	}
	productions := make([]Production, numProds)
	for i := range productions {
		p, err := readProduction(r)
		if err != nil {
			return nil, fmt.Errorf("automaton: reading production %d: %w", i, err)
		}
		productions[i] = p
	}

	a := &Automaton{
		states:      states,
		actions:     actions,
		productions: productions,
		numTerms:    int32(numTerms),
	}
	a.checksum = fmt.Sprintf("%x", structhash.Md5(summary{numStates, numTerms, numActions, numProds}, 1))
	tracer().Infof("loaded automaton: %d states, %d terminals, %d actions, %d productions (checksum %s)",
		numStates, numTerms, numActions, numProds, a.checksum)
	return a, nil
}

// summary is hashed at load time as a cheap corruption/mismatch check;
// it is not meant as a cryptographic digest of the whole table.
type summary struct {
	States, Terms, Actions, Productions uint32
}

func readU32(r *bytes.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readI32(r *bytes.Reader) (int32, error) {
	var v int32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readState(r *bytes.Reader, id int32) (State, error) {
	s := State{ID: id}
	termCount, err := readU32(r)
	if err != nil {
		return s, err
	}
	s.Terminals = make([]int32, termCount)
	for i := range s.Terminals {
		if s.Terminals[i], err = readI32(r); err != nil {
			return s, err
		}
	}
	for i := 0; i < 256; i++ {
		if s.Cached[i], err = readI32(r); err != nil {
			return s, err
		}
	}
	bulkCount, err := readU32(r)
	if err != nil {
		return s, err
	}
	s.Bulk = make([]Range, bulkCount)
	for i := range s.Bulk {
		start, err := readI32(r)
		if err != nil {
			return s, err
		}
		end, err := readI32(r)
		if err != nil {
			return s, err
		}
		target, err := readI32(r)
		if err != nil {
			return s, err
		}
		s.Bulk[i] = Range{Start: rune(start), End: rune(end), Target: target}
	}
	return s, nil
}

func readActionEntry(r *bytes.Reader) (state, term, code, data int32, err error) {
	if state, err = readI32(r); err != nil {
		return
	}
	if term, err = readI32(r); err != nil {
		return
	}
	if code, err = readI32(r); err != nil {
		return
	}
	if data, err = readI32(r); err != nil {
		return
	}
	return
}

func readProduction(r *bytes.Reader) (Production, error) {
	var p Production
	head, err := readI32(r)
	if err != nil {
		return p, err
	}
	length, err := readI32(r)
	if err != nil {
		return p, err
	}
	headAction, err := readI32(r)
	if err != nil {
		return p, err
	}
	bcLen, err := readU32(r)
	if err != nil {
		return p, err
	}
	p.Head = head
	p.ReductionLen = length
	p.HeadAction = TreeAction(headAction)
	p.Bytecode = make([]Instr, 0, bcLen)
	for i := uint32(0); i < bcLen; i++ {
		opv, err := readI32(r)
		if err != nil {
			return p, err
		}
		op := Opcode(opv)
		instr := Instr{Op: op}
		switch op {
		case OpPopStack:
			action, err := readI32(r)
			if err != nil {
				return p, err
			}
			instr.Action = TreeAction(action)
		case OpAddVirtual:
			operand, err := readI32(r)
			if err != nil {
				return p, err
			}
			action, err := readI32(r)
			if err != nil {
				return p, err
			}
			instr.Operand = operand
			instr.Action = TreeAction(action)
		case OpSemAction:
			operand, err := readI32(r)
			if err != nil {
				return p, err
			}
			instr.Operand = operand
		default:
			return p, fmt.Errorf("unknown reduction opcode %d", opv)
		}
		p.Bytecode = append(p.Bytecode, instr)
	}
	return p, nil
}
