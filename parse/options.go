package parse

import "github.com/npillmayer/fuzzyparse/lexer"

// Option configures a Driver, following the functional-options idiom.
type Option func(*Driver)

// WithMaxErrors bounds how many errors (lexical and syntactic together)
// a single Parse accumulates before aborting; the count is checked each
// time an UnexpectedToken is reported. The default is 25.
func WithMaxErrors(n int) Option {
	return func(d *Driver) { d.maxErrors = n }
}

// WithMaxStackSize bounds the parser's state-stack depth. The default
// is 4096; exceeding it aborts the parse with a nil tree, without
// reporting a further error.
func WithMaxStackSize(n int) Option {
	return func(d *Driver) { d.maxStack = n }
}

// WithRecovery toggles the three-step speculative recovery of §4.I.
// Recovery is enabled by default; disabling it makes the first
// unexpected token fatal.
func WithRecovery(enabled bool) Option {
	return func(d *Driver) { d.recovery = enabled }
}

// WithMaxDistance bounds the lexer's fuzzy-match edit budget. The
// default is 2.
func WithMaxDistance(n int) Option {
	return func(d *Driver) { d.maxDistance = n }
}

// WithSemanticActions installs the ordered semantic-action registry
// that reduction bytecode indexes into via its SemAction opcode.
func WithSemanticActions(actions []SemanticAction) Option {
	return func(d *Driver) { d.actions = actions }
}

// WithVariables installs the variable-index -> symbol-id table used to
// resolve a production's head. Nil (the default) treats indices as
// already being symbol ids.
func WithVariables(vars []int32) Option {
	return func(d *Driver) { d.variables = vars }
}

// WithVirtuals installs the virtual-index -> symbol-id table used by
// the AddVirtual bytecode opcode. Nil (the default) treats indices as
// already being symbol ids.
func WithVirtuals(virtuals []int32) Option {
	return func(d *Driver) { d.virtuals = virtuals }
}

// WithNameFunc installs the terminal-id -> name function forwarded to
// the lexer, used only for Token.Name and diagnostics.
func WithNameFunc(f lexer.NameFunc) Option {
	return func(d *Driver) { d.nameOf = f }
}
