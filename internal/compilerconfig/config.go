// Package compilerconfig is the tiny configuration surface spec §9
// names for the optimizer driver: which register allocator to run and
// how many physical registers it has to work with. Grounded on the
// teacher's flag-parsing CLI config struct (cmd/sentra/main.go) in
// shape — a single struct of plain fields populated by flag.Parse,
// no env-var layer or file format, since the pipeline has nothing
// resembling the teacher's multi-backend VM/JIT toggle set.
package compilerconfig

// Allocator selects which register allocator spec §8 implements runs.
type Allocator int

const (
	GraphColoring Allocator = iota
	LinearScan
)

func (a Allocator) String() string {
	if a == LinearScan {
		return "linear-scan"
	}
	return "graph-coloring"
}

// Config is the whole-run configuration. EmitJIL is a no-op hook spec
// §9 reserves for a future bytecode emitter this module does not
// implement (the back end is an external collaborator, spec §1).
type Config struct {
	Allocator  Allocator
	NumRegisters int
	EmitJIL    func(interface{}) error
}

// Default mirrors a conservative small target register file (spec §8
// examples use K in the 4-8 range for worked traces).
func Default() Config {
	return Config{Allocator: GraphColoring, NumRegisters: 6}
}
