/*
Package parse implements the LR(k) driver: the action decoder, the
reduction bytecode interpreter, the AST builder, the main parse loop
with speculative error recovery, and the recovery simulator.
*/
package parse

import (
	"github.com/npillmayer/fuzzyparse/automaton"
	"github.com/npillmayer/fuzzyparse/token"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fuzzyparse.parse'.
func tracer() tracing.Trace {
	return tracing.Select("fuzzyparse.parse")
}

// NodeKind tags what a Node represents.
type NodeKind int8

const (
	KindTerminal NodeKind = iota
	KindVariable
	KindVirtual
	kindPlaceholder // simulator scratch only, never visible in a returned tree
)

// Node is one element of the syntax tree under construction.
type Node struct {
	Kind     NodeKind
	Symbol   int32
	Tok      token.Token // meaningful when Kind == KindTerminal
	Children []*Node

	// transparent marks a node produced with head_action ==
	// ReplaceByChildren: the splice could not happen immediately (there
	// was no active parent children-list at reduce time), so it is
	// deferred to whichever later reduction pops this node. See
	// DESIGN.md's Open Question resolution for head_action.
	transparent bool
}

// SemanticElement is the view a semantic-action callback receives for
// one element of the reduction body, grounded on the Hime runtime's
// SemanticElement/SemanticElementTrait (original_source/runtime-rust/src/symbols.rs).
type SemanticElement struct {
	Kind NodeKind
	Tok  token.Token // valid when Kind == KindTerminal
	Sym  int32       // grammar symbol id for Variable/Virtual elements
}

// SemanticAction is a host callback invoked while a reduction's
// bytecode runs, given the head symbol and the body elements collected
// so far.
type SemanticAction func(head int32, body []SemanticElement)

// Builder is the stack-based AST builder of §4.H. It maintains a
// symbol stack mirroring the parser's state stack.
type Builder struct {
	stack    []*Node
	children []*Node // accumulator for the reduction currently in progress
	promoted *Node   // set by a TreePromote fold, consumed by the next Reduce
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Depth returns the builder's logical symbol-stack depth.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// SeedPlaceholders pushes n opaque placeholder nodes, used only by the
// simulator to give a scratch builder the right starting depth without
// needing real tree content.
func (b *Builder) SeedPlaceholders(n int) {
	for i := 0; i < n; i++ {
		b.stack = append(b.stack, &Node{Kind: kindPlaceholder})
	}
}

// StackPush is called on shift: pushes a terminal leaf for tok.
func (b *Builder) StackPush(tok token.Token) {
	b.stack = append(b.stack, &Node{Kind: KindTerminal, Symbol: tok.SymbolID, Tok: tok})
}

// ReductionPrepare marks the top n symbols as the pending reduction body.
func (b *Builder) ReductionPrepare(n int) {
	b.children = nil
	_ = n // the body lives on b.stack already; n is implicit in the bytecode's PopStack count
}

// ReductionPop moves the next body symbol (the stack's current top)
// into the pending reduction, folding it according to action.
func (b *Builder) ReductionPop(action automaton.TreeAction) {
	idx := len(b.stack) - 1
	node := b.stack[idx]
	b.stack = b.stack[:idx]
	b.fold(node, action)
}

// ReductionVirtual inserts a synthetic symbol with no source text.
func (b *Builder) ReductionVirtual(virtualSymbol int32, action automaton.TreeAction) {
	b.fold(&Node{Kind: KindVirtual, Symbol: virtualSymbol}, action)
}

// ReductionSemantic runs a host callback with a (head, body) view of
// the reduction in progress so far.
func (b *Builder) ReductionSemantic(head int32, action SemanticAction) {
	if action == nil {
		return
	}
	body := make([]SemanticElement, len(b.children))
	for i, c := range b.children {
		body[i] = SemanticElement{Kind: c.Kind, Tok: c.Tok, Sym: c.Symbol}
	}
	action(head, body)
}

// fold applies action to node, folding it into the in-progress
// children accumulator. A node previously marked transparent (by a
// ReplaceByChildren head_action) always splices its children instead
// of being added as a single child, regardless of action, unless the
// caller explicitly asked to Drop or Promote it.
func (b *Builder) fold(node *Node, action automaton.TreeAction) {
	if node.transparent && action == automaton.TreeNone {
		action = automaton.TreeReplaceByChildren
	}
	switch action {
	case automaton.TreeDrop:
		// discard entirely
	case automaton.TreePromote:
		b.promoted = node
	case automaton.TreeReplaceByChildren:
		b.children = append(append([]*Node{}, node.Children...), b.children...)
	default: // TreeNone
		b.children = append([]*Node{node}, b.children...)
	}
}

// Reduce pops the reduction body (already consumed via ReductionPop /
// ReductionVirtual) and pushes the new head, applying headAction.
func (b *Builder) Reduce(headSymbol int32, headAction automaton.TreeAction) {
	var result *Node
	if b.promoted != nil {
		result = b.promoted
	} else {
		node := &Node{Kind: KindVariable, Symbol: headSymbol, Children: b.children}
		switch headAction {
		case automaton.TreePromote:
			if len(node.Children) == 1 {
				result = node.Children[0]
			} else {
				tracer().Debugf("head_action Promote on production with %d children, keeping wrapper", len(node.Children))
				result = node
			}
		case automaton.TreeReplaceByChildren:
			node.transparent = true
			result = node
		default: // None, and Drop (there is no parent to discard into at head position)
			result = node
		}
	}
	b.promoted = nil
	b.children = nil
	b.stack = append(b.stack, result)
}

// GetTree returns the root of the constructed syntax tree, valid after
// the driver reaches Accept.
func (b *Builder) GetTree() *Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}
