package emit

import "shale/ir"

// helperDef is a runtime helper shipped in the emitted script's preamble.
// Helpers are defined only when the script actually invokes them.
type helperDef struct {
	// The helper's function name.
	Name string

	// The POSIX definition text.
	Body string
}

// The runtime helper library, in emission order.
var runtimeHelpers = []helperDef{
	{
		Name: "shale_write_file",
		Body: "shale_write_file() {\n    printf '%s' \"$2\" > \"$1\"\n}",
	},
	{
		Name: "shale_rand",
		Body: "shale_rand() {\n    awk 'BEGIN { srand(); printf \"%d\", int(rand() * 32768) }'\n}",
	},
	{
		Name: "shale_len",
		Body: "shale_len() {\n    printf '%s' \"${#1}\"\n}",
	},
	{
		Name: "shale_trim",
		Body: "shale_trim() {\n    printf '%s' \"$1\" | sed -e 's/^[[:space:]]*//' -e 's/[[:space:]]*$//'\n}",
	},
	{
		Name: "shale_upper",
		Body: "shale_upper() {\n    printf '%s' \"$1\" | tr '[:lower:]' '[:upper:]'\n}",
	},
	{
		Name: "shale_lower",
		Body: "shale_lower() {\n    printf '%s' \"$1\" | tr '[:upper:]' '[:lower:]'\n}",
	},
}

// collectHelpers walks the tree and returns the set of runtime helper names
// the script references.
func collectHelpers(node ir.Node) map[string]bool {
	used := make(map[string]bool)
	collectNodeHelpers(node, used)
	return used
}

func collectNodeHelpers(node ir.Node, used map[string]bool) {
	switch n := node.(type) {
	case *ir.Let:
		collectValueHelpers(n.Value, used)
	case *ir.Command:
		collectCommandHelpers(n, used)
	case *ir.If:
		collectValueHelpers(n.Cond, used)
		collectNodeHelpers(n.Then, used)
		if n.Else != nil {
			collectNodeHelpers(n.Else, used)
		}
	case *ir.Sequence:
		for _, child := range n.Nodes {
			collectNodeHelpers(child, used)
		}
	}
}

func collectValueHelpers(value ir.Value, used map[string]bool) {
	switch v := value.(type) {
	case *ir.Concat:
		for _, part := range v.Parts {
			collectValueHelpers(part, used)
		}
	case *ir.Substitution:
		collectCommandHelpers(v.Cmd, used)
	case *ir.Comparison:
		collectValueHelpers(v.Lhs, used)
		collectValueHelpers(v.Rhs, used)
	case *ir.Arithmetic:
		collectValueHelpers(v.Lhs, used)
		collectValueHelpers(v.Rhs, used)
	case *ir.Logical:
		collectValueHelpers(v.Lhs, used)
		collectValueHelpers(v.Rhs, used)
	case *ir.Not:
		collectValueHelpers(v.Operand, used)
	}
}

func collectCommandHelpers(cmd *ir.Command, used map[string]bool) {
	for _, helper := range runtimeHelpers {
		if cmd.Program == helper.Name {
			used[helper.Name] = true
		}
	}

	for _, arg := range cmd.Args {
		collectValueHelpers(arg, used)
	}
}
