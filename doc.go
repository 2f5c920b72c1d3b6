/*
Package fuzzyparse is the runtime core for generated LR(k) language
recognizers.

It is intentionally narrow: it does not compile grammars, it does not
generate target-language source code, it does not bundle documentation.
It consumes a precompiled binary automaton (DFA + LR tables) and drives
two tightly coupled subsystems. Package structure is as follows:

■ automaton: read-only in-memory view of the compiled DFA/LR tables.

■ text: random-access view over input text with line/column positions.

■ token: the token type, the rewindable token stream, and the tagged
lexical/syntactic error variants.

■ lexer: the exact DFA matcher and the bounded-edit-distance fuzzy
matcher used to recover from lexical errors.

■ parse: the LR(k) driver, its reduction-bytecode interpreter, its AST
builder, and the speculative simulator used for parser error recovery.

The base package contains the Position type, the 1-based line/column
location that package text reports.
*/
package fuzzyparse
