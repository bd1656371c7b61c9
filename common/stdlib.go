package common

import "shale/ast"

// StdFunc describes a standard-library function: a source-level name that
// lowers to a fixed shell command or runtime helper rather than to an inlined
// user function body.
type StdFunc struct {
	// The source-level name of the function.
	Name string

	// The parameter types of the function.  A nil Params with Variadic set
	// means any number of string-like arguments.
	Params []ast.Type

	// Whether the function accepts extra trailing string arguments.
	Variadic bool

	// The result type of the function.  UnitType means the call is a plain
	// command; any other type means the call lowers to a value (a command
	// substitution or inline expansion).
	Return ast.Type

	// The program the call lowers to.  For helper-backed functions this is
	// the helper's name.
	Program string

	// Fixed arguments inserted before the call arguments (eg. `-p`).
	FixedArgs []string

	// Whether Program names a runtime helper that must be defined in the
	// emitted script's preamble.
	Helper bool
}

// StdFuncs is the fixed table of standard-library functions keyed by their
// source-level names.  The `echo` entry is dialect-sensitive and handled
// separately by the converter.
var StdFuncs = map[string]*StdFunc{
	"echo": {Name: "echo", Params: []ast.Type{ast.StrType}, Return: ast.UnitType, Program: "echo"},

	"exec": {Name: "exec", Params: []ast.Type{ast.StrType}, Variadic: true, Return: ast.UnitType, Program: ""},

	"env":        {Name: "env", Params: []ast.Type{ast.StrType}, Return: ast.StrType, Program: "printenv"},
	"read_file":  {Name: "read_file", Params: []ast.Type{ast.PathType}, Return: ast.StrType, Program: "cat"},
	"write_file": {Name: "write_file", Params: []ast.Type{ast.PathType, ast.StrType}, Return: ast.UnitType, Program: "shale_write_file", Helper: true},

	"mkdir":   {Name: "mkdir", Params: []ast.Type{ast.PathType}, Return: ast.UnitType, Program: "mkdir"},
	"mkdir_p": {Name: "mkdir_p", Params: []ast.Type{ast.PathType}, Return: ast.UnitType, Program: "mkdir", FixedArgs: []string{"-p"}},
	"rm":      {Name: "rm", Params: []ast.Type{ast.PathType}, Return: ast.UnitType, Program: "rm"},
	"rm_f":    {Name: "rm_f", Params: []ast.Type{ast.PathType}, Return: ast.UnitType, Program: "rm", FixedArgs: []string{"-f"}},
	"ln_s":    {Name: "ln_s", Params: []ast.Type{ast.PathType, ast.PathType}, Return: ast.UnitType, Program: "ln", FixedArgs: []string{"-s"}},
	"ln_sf":   {Name: "ln_sf", Params: []ast.Type{ast.PathType, ast.PathType}, Return: ast.UnitType, Program: "ln", FixedArgs: []string{"-sf"}},
	"cp":      {Name: "cp", Params: []ast.Type{ast.PathType, ast.PathType}, Return: ast.UnitType, Program: "cp"},
	"mv":      {Name: "mv", Params: []ast.Type{ast.PathType, ast.PathType}, Return: ast.UnitType, Program: "mv"},
	"touch":   {Name: "touch", Params: []ast.Type{ast.PathType}, Return: ast.UnitType, Program: "touch"},

	"curl": {Name: "curl", Params: []ast.Type{ast.URLType}, Return: ast.UnitType, Program: "curl", FixedArgs: []string{"-fsSL"}},
	"wget": {Name: "wget", Params: []ast.Type{ast.URLType}, Return: ast.UnitType, Program: "wget", FixedArgs: []string{"-q"}},

	"timestamp": {Name: "timestamp", Return: ast.I32Type, Program: "date", FixedArgs: []string{"+%s"}},
	"random":    {Name: "random", Return: ast.I32Type, Program: "shale_rand", Helper: true},

	"exit": {Name: "exit", Params: []ast.Type{ast.I32Type}, Return: ast.UnitType, Program: "exit"},
}

// -----------------------------------------------------------------------------

// StdMethod describes a standard-library method on a string-typed receiver.
// Methods always lower to runtime helpers invoked in a command substitution.
type StdMethod struct {
	// The source-level method name.
	Name string

	// The number of arguments the method takes (excluding the receiver).
	Arity int

	// The runtime helper the method lowers to.  The receiver is passed as the
	// helper's first argument.
	Helper string
}

// StdMethods is the fixed table of standard-library methods keyed by their
// source-level names.
var StdMethods = map[string]*StdMethod{
	"len":   {Name: "len", Arity: 0, Helper: "shale_len"},
	"trim":  {Name: "trim", Arity: 0, Helper: "shale_trim"},
	"upper": {Name: "upper", Arity: 0, Helper: "shale_upper"},
	"lower": {Name: "lower", Arity: 0, Helper: "shale_lower"},
}
