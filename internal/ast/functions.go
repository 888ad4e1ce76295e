package ast

// Parameter is one entry of a function's parameter list. Type is nil for
// an unannotated parameter; ScopeBuilder binds those to a fresh Template
// type variable (spec §4.1).
type Parameter struct {
	Meta
	Name string
	Type TypeNode
}

func (p *Parameter) String() string {
	if p.Type == nil {
		return p.Name
	}
	return p.Name + ": " + p.Type.String()
}

// Visibility controls instance-variable and method access from outside
// the declaring class (spec §4.3.4 "Access control").
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate            // source syntax: a leading `-`
)

// FunctionDefinition is a `func` declaration: a free function, a class
// method (including a constructor), or the desugared body of a lambda
// (spec §3 "Function owns").
type FunctionDefinition struct {
	StmtMeta
	Name       string
	Params     []*Parameter
	ReturnType TypeNode // nil: inferred (spec §4.3.5 "Recursive-return inference")
	Body       *BlockStatement

	// IsMethod is true for anything declared inside a class body,
	// including constructors; ScopeBuilder prepends an implicit `self`
	// parameter for these (spec §4.1).
	IsMethod      bool
	IsConstructor bool
	Visibility    Visibility

	// IsLambda marks a function synthesized from a LambdaExpression, so
	// duplication checking skips it (spec §4.1 "Duplication rules").
	// ScopeBuilder keeps Name as given; it does not assign the
	// AnonymousLambdaName form itself.
	IsLambda bool
}

func (n *FunctionDefinition) String() string { return "func " + n.Name }

// AnonymousLambdaName builds a name for the function backing a lambda
// expression: `lambda.<line>.<col>.<length>`, so that two syntactically
// distinct lambdas never collide (spec §4.1 "Anonymous naming"). Nothing
// in the analyzer calls it; whoever builds the lambda's
// FunctionDefinition sets the name.
func AnonymousLambdaName(line, col, length int) string {
	return "lambda." + itoaSmall(line) + "." + itoaSmall(col) + "." + itoaSmall(length)
}

func itoaSmall(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
