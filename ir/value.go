package ir

// Value represents a shell value: the right-hand side of an assignment, a
// command argument, or a test expression.
type Value interface {
	// Constant returns whether the value is a compile-time constant.  The
	// optimizer folds constant compounds into literals.
	Constant() bool

	// value distinguishes shell values from other types.
	value()
}

/* -------------------------------------------------------------------------- */

// Literal represents a literal string value.  Integer and boolean values are
// carried in their canonical spellings (decimal numerals, `true`/`false`).
type Literal struct {
	// The literal text.
	Text string
}

func (l *Literal) Constant() bool { return true }
func (l *Literal) value()         {}

// Variable represents a reference to a shell variable.
type Variable struct {
	// The shell-level variable name.
	Name string
}

func (v *Variable) Constant() bool { return false }
func (v *Variable) value()         {}

// Concat represents the concatenation of an ordered list of values.
type Concat struct {
	// The parts being concatenated.
	Parts []Value
}

// Constant returns whether every part of the concatenation is constant.
func (c *Concat) Constant() bool {
	for _, part := range c.Parts {
		if !part.Constant() {
			return false
		}
	}

	return true
}

func (c *Concat) value() {}

// Substitution represents a command substitution: `$(...)`.
type Substitution struct {
	// The command whose output is substituted.
	Cmd *Command
}

// Constant always returns false: command output is runtime data.
func (s *Substitution) Constant() bool { return false }
func (s *Substitution) value()         {}

/* -------------------------------------------------------------------------- */

// CompareOp enumerates the comparison operators of `test` expressions.
type CompareOp int

const (
	CmpEq CompareOp = iota // integer `-eq`
	CmpNe                  // integer `-ne`
	CmpLt                  // integer `-lt`
	CmpLe                  // integer `-le`
	CmpGt                  // integer `-gt`
	CmpGe                  // integer `-ge`

	CmpStrEq // string `=`
	CmpStrNe // string `!=`
)

// Token returns the operator's `test` spelling.
func (op CompareOp) Token() string {
	return [...]string{"-eq", "-ne", "-lt", "-le", "-gt", "-ge", "=", "!="}[op]
}

// Comparison represents a comparison usable in test position.
type Comparison struct {
	// The comparison operator.
	Op CompareOp

	// The operand values.
	Lhs, Rhs Value
}

// Constant returns whether both operands are constant (and the comparison is
// therefore foldable).
func (c *Comparison) Constant() bool {
	return c.Lhs.Constant() && c.Rhs.Constant()
}

func (c *Comparison) value() {}

/* -------------------------------------------------------------------------- */

// ArithOp enumerates the arithmetic operators of `$(( ))` expressions.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
)

// Token returns the operator's arithmetic-expansion spelling.
func (op ArithOp) Token() string {
	return [...]string{"+", "-", "*", "/", "%"}[op]
}

// Arithmetic represents an integer arithmetic operation evaluated with
// signed 64-bit wrapping semantics.
type Arithmetic struct {
	// The arithmetic operator.
	Op ArithOp

	// The operand values.
	Lhs, Rhs Value
}

func (a *Arithmetic) Constant() bool {
	return a.Lhs.Constant() && a.Rhs.Constant()
}

func (a *Arithmetic) value() {}

/* -------------------------------------------------------------------------- */

// LogicOp enumerates the logical connectives of test position.
type LogicOp int

const (
	LogicAnd LogicOp = iota
	LogicOr
)

// Token returns the connective's shell spelling.
func (op LogicOp) Token() string {
	return [...]string{"&&", "||"}[op]
}

// Logical represents a logical connective between two test-position values.
type Logical struct {
	// The logical connective.
	Op LogicOp

	// The operand values.
	Lhs, Rhs Value
}

func (l *Logical) Constant() bool {
	return l.Lhs.Constant() && l.Rhs.Constant()
}

func (l *Logical) value() {}

// Not represents logical negation of a test-position value.
type Not struct {
	// The value being negated.
	Operand Value
}

func (n *Not) Constant() bool { return n.Operand.Constant() }
func (n *Not) value()         {}
