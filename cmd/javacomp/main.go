// cmd/javacomp is the CLI driver: read a source file, run it through
// lexing, parsing, pass-one name resolution (method bodies are not
// name-resolved), CFG construction, and per-method optimization, then
// print the flattened diagnostic log.
// Grounded on the teacher's cmd/sentra/main.go flag-driven entry point
// (os.Args dispatch, log.Fatalf on hard failure, isatty-gated color)
// trimmed down to the single compile action this module implements —
// the teacher's run/repl/test/build/fmt/lint/debug/watch/lsp/package-
// manager surface has no analogue here, since none of those actions
// are part of what this core does.
package main

import (
	"flag"
	"fmt"
	"os"

	"javacomp/internal/cfgbuild"
	"javacomp/internal/compilerconfig"
	"javacomp/internal/diag"
	"javacomp/internal/lexer"
	"javacomp/internal/optimize"
	"javacomp/internal/parser"
	"javacomp/internal/ssaview"
	"javacomp/internal/symbols"
	"javacomp/internal/tokstream"

	"github.com/mattn/go-isatty"
)

func main() {
	allocFlag := flag.String("allocator", "graph-coloring", "register allocator: graph-coloring or linear-scan")
	kFlag := flag.Int("k", 6, "physical register count")
	dumpLLVM := flag.Bool("dump-llvm", false, "print each method's allocated SSA as LLVM IR text (debug only)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: javacomp [-allocator=graph-coloring|linear-scan] [-k=N] [-dump-llvm] <file.java>")
		os.Exit(2)
	}

	cfgc := compilerconfig.Default()
	cfgc.NumRegisters = *kFlag
	if *allocFlag == "linear-scan" {
		cfgc.Allocator = compilerconfig.LinearScan
	}

	if err := compileFile(args[0], cfgc, *dumpLLVM, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "javacomp: %v\n", err)
		os.Exit(1)
	}
}

func compileFile(path string, cfgc compilerconfig.Config, dumpLLVM bool, out, errOut *os.File) error {
	src, err := os.ReadFile(path)
	if err != nil {
		log := diag.NewLog()
		log.Log(diag.New(diag.CodeFileOpenFailure, path, diag.Span{}, path))
		log.Render(errOut, isatty.IsTerminal(errOut.Fd()))
		return err
	}

	log := diag.NewLog()
	buf := lexer.NewBuffer(src)
	sc := lexer.NewScanner(buf)
	stream := tokstream.New(tokstream.FromScanner(sc))
	p := parser.New(stream, log, path, nil)
	cu := p.ParseCompilationUnit()

	table := symbols.NewTable(log)
	table.ResolvePass1(cu)

	color := isatty.IsTerminal(out.Fd())
	for _, ct := range table.Classes {
		for _, method := range ct.Methods {
			if method.Node == nil || !hasBody(method.Node) {
				continue
			}
			builder := cfgbuild.NewBuilder(ct.MemberNames(), log, path)
			g := builder.BuildMethod(method.Node)
			memberCount := len(ct.MemberNames())
			res := optimize.Run(g, builder.NumVars(), memberCount, cfgc)

			if dumpLLVM {
				m := ssaview.Dump(res.Graph, res.NumVars, ct.Name+"_"+method.Name)
				fmt.Fprintln(out, m.String())
			}
		}
	}

	log.Render(out, color)
	if log.HasError() {
		return fmt.Errorf("compilation failed")
	}
	return nil
}

func hasBody(n *parser.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == parser.KindStmtBlock {
			return true
		}
	}
	return false
}
