package parse

import "github.com/npillmayer/fuzzyparse/automaton"

// runReduction executes a production's bytecode (§4.G) against b,
// threading virtuals/variables symbol tables and the semantic-action
// registry. When dry is true (used by the simulator), semantic-action
// opcodes are skipped so probing a recovery candidate never triggers
// host side effects.
func (d *Driver) runReduction(prod *automaton.Production, b *Builder, dry bool) {
	head := d.resolveVariable(prod.Head)
	b.ReductionPrepare(int(prod.ReductionLen))
	for _, instr := range prod.Bytecode {
		switch instr.Op {
		case automaton.OpPopStack:
			b.ReductionPop(instr.Action)
		case automaton.OpAddVirtual:
			b.ReductionVirtual(d.resolveVirtual(instr.Operand), instr.Action)
		case automaton.OpSemAction:
			if dry {
				continue
			}
			if int(instr.Operand) < len(d.actions) {
				b.ReductionSemantic(head, d.actions[instr.Operand])
			}
		}
	}
	b.Reduce(head, prod.HeadAction)
}

func (d *Driver) resolveVariable(index int32) int32 {
	if d.variables == nil {
		return index
	}
	if int(index) < len(d.variables) {
		return d.variables[index]
	}
	return index
}

func (d *Driver) resolveVirtual(index int32) int32 {
	if d.virtuals == nil {
		return index
	}
	if int(index) < len(d.virtuals) {
		return d.virtuals[index]
	}
	return index
}
