package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/fuzzyparse/automaton"
	"github.com/npillmayer/fuzzyparse/parse"
	"github.com/npillmayer/fuzzyparse/token"
)

func newParseCmd() *cobra.Command {
	var maxErrors int
	var maxDistance int
	var noRecovery bool

	cmd := &cobra.Command{
		Use:           "parse <table.bin> <input.txt>",
		Short:         "Parse input.txt against a precompiled automaton table",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read table: %w", err)
			}
			aut, err := automaton.Load(blob)
			if err != nil {
				return fmt.Errorf("load table: %w", err)
			}
			src, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			d := parse.NewDriver(aut,
				parse.WithMaxErrors(maxErrors),
				parse.WithMaxDistance(maxDistance),
				parse.WithRecovery(!noRecovery),
			)
			res := d.Parse(string(src), func(e token.ParseError) {
				pterm.Warning.Println(e.Error())
			})

			if res.Tree == nil {
				pterm.Error.Println("parse failed, no syntax tree produced")
				return fmt.Errorf("%d error(s) reported", len(res.Errors))
			}
			pterm.Success.Printfln("accepted (%d error(s) recovered)", len(res.Errors))
			pterm.DefaultTree.WithRoot(treeOf(res.Tree)).Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&maxErrors, "max-errors", 25, "abort after this many errors")
	cmd.Flags().IntVar(&maxDistance, "max-distance", 2, "fuzzy lexer edit-distance budget")
	cmd.Flags().BoolVar(&noRecovery, "no-recovery", false, "disable speculative parser error recovery")

	return cmd
}

func treeOf(n *parse.Node) pterm.TreeNode {
	label := fmt.Sprintf("sym %d", n.Symbol)
	if n.Kind == parse.KindTerminal {
		label = fmt.Sprintf("%q", n.Tok.Value)
	}
	node := pterm.TreeNode{Text: label}
	for _, c := range n.Children {
		node.Children = append(node.Children, treeOf(c))
	}
	return node
}
