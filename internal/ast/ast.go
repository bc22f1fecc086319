// Package ast defines the tagged-variant tree produced by the parser.
package ast

// Pos is a 1-based source location, threaded through every node for
// diagnostics.
type Pos struct {
	Line   int
	Column int
}

// Item is a top-level justfile construct: an assignment, export,
// alias, setting, recipe, or a standalone comment.
type Item interface {
	itemNode()
	Position() Pos
}

// Assignment is `[export] name := expr`.
type Assignment struct {
	Pos      Pos
	Name     string
	Expr     Expr
	Exported bool
	Private  bool // name begins with "_"
}

func (*Assignment) itemNode()        {}
func (a *Assignment) Position() Pos  { return a.Pos }

// Alias is `alias name := target`.
type Alias struct {
	Pos    Pos
	Name   string
	Target string
}

func (*Alias) itemNode()       {}
func (a *Alias) Position() Pos { return a.Pos }

// Setting is `set key [:= value]` or `set key`.
type Setting struct {
	Pos   Pos
	Key   string
	Value string
	HasValue bool
}

func (*Setting) itemNode()       {}
func (s *Setting) Position() Pos { return s.Pos }

// Comment is a `#`-prefixed line, preserved so it can be attached to a
// following recipe as documentation.
type Comment struct {
	Pos  Pos
	Text string
}

func (*Comment) itemNode()       {}
func (c *Comment) Position() Pos { return c.Pos }

// Param is a single recipe parameter.
type Param struct {
	Pos      Pos
	Name     string
	Default  Expr    // nil if required
	Variadic string  // "" | "*" | "+"
	Export   bool    // $name: exported to the environment
}

// Attribute is a bracketed recipe marker, e.g. [private] or
// [linux, macos].
type Attribute struct {
	Pos  Pos
	Name string
	Args []string
}

// BodyLine is one physical line of a recipe body.
type BodyLine struct {
	Pos         Pos
	Segments    []Segment
	Silent      bool // leading @
	IgnoreError bool // leading -
	Elevated    bool // leading +
	Continuation bool // trailing backslash on the raw source line
	Shebang     bool // line begins with #!
}

// Segment is either literal shell text or an interpolation hole.
type Segment struct {
	Literal string
	Expr    Expr // non-nil when this segment is a {{ ... }} interpolation
}

// Recipe is a named, parameterized, attributed sequence of body lines.
type Recipe struct {
	Pos          Pos
	Name         string
	Doc          string
	Params       []Param
	Dependencies []string
	Body         []BodyLine
	Attributes   []Attribute
}

func (*Recipe) itemNode()       {}
func (r *Recipe) Position() Pos { return r.Pos }

// HasAttribute reports whether the recipe carries the named attribute.
func (r *Recipe) HasAttribute(name string) bool {
	for _, a := range r.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Expr is the expression-tree sum type.
type Expr interface {
	exprNode()
	Position() Pos
}

// StringLit is a literal string (already unescaped).
type StringLit struct {
	Pos   Pos
	Value string
}

func (*StringLit) exprNode()        {}
func (s *StringLit) Position() Pos  { return s.Pos }

// NameRef is a reference to a previously assigned variable or
// in-scope parameter.
type NameRef struct {
	Pos  Pos
	Name string
}

func (*NameRef) exprNode()       {}
func (n *NameRef) Position() Pos { return n.Pos }

// Concat is `lhs + rhs`.
type Concat struct {
	Pos      Pos
	Lhs, Rhs Expr
}

func (*Concat) exprNode()       {}
func (c *Concat) Position() Pos { return c.Pos }

// PathJoin is `lhs / rhs`.
type PathJoin struct {
	Pos      Pos
	Lhs, Rhs Expr
}

func (*PathJoin) exprNode()       {}
func (p *PathJoin) Position() Pos { return p.Pos }

// CondOp is the comparison operator of a Conditional.
type CondOp int

const (
	CondEq CondOp = iota
	CondNe
)

// Conditional is `if a OP b { then } else { else }`.
type Conditional struct {
	Pos        Pos
	Lhs, Rhs   Expr
	Op         CondOp
	Then, Else Expr
}

func (*Conditional) exprNode()       {}
func (c *Conditional) Position() Pos { return c.Pos }

// Call is a builtin function invocation.
type Call struct {
	Pos  Pos
	Name string
	Args []Expr
}

func (*Call) exprNode()       {}
func (c *Call) Position() Pos { return c.Pos }

// Backtick is a captured-stdout shell command; Parts mixes literal
// text and interpolations the same way a BodyLine does.
type Backtick struct {
	Pos   Pos
	Parts []Segment
}

func (*Backtick) exprNode()       {}
func (b *Backtick) Position() Pos { return b.Pos }
