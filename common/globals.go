package common

// ShaleVersion is the current version of the shale compiler.
const ShaleVersion = "0.3.1"

// MaxExprDepth is the maximum expression nesting depth accepted by the
// validator.  Every later pass walks the tree recursively, so this single
// bound is what makes depth-based recursion safe downstream.
const MaxExprDepth = 32

// ProjectFileName is the name of the project file within a project directory.
const ProjectFileName = "shale.toml"

// SourceExt is the file extension of shale source files.
const SourceExt = ".sl"
