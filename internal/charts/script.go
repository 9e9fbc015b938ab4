package charts

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// literalAPI escapes <, > and & so encoded data can never terminate the
// surrounding <script> element.
var literalAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Expr is a JavaScript expression in a generated script.
type Expr interface {
	emit(w *jsWriter)
}

// Stmt is a JavaScript statement in a generated script.
type Stmt interface {
	emit(w *jsWriter)
}

type jsWriter struct {
	sb    strings.Builder
	depth int
	err   error
}

func (w *jsWriter) write(s string) {
	w.sb.WriteString(s)
}

func (w *jsWriter) newline() {
	w.sb.WriteByte('\n')
	for i := 0; i < w.depth; i++ {
		w.sb.WriteByte('\t')
	}
}

func (w *jsWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *jsWriter) block(body []Stmt) {
	w.write("{")
	w.depth++
	for _, s := range body {
		w.newline()
		s.emit(w)
	}
	w.depth--
	w.newline()
	w.write("}")
}

type refExpr string

func (r refExpr) emit(w *jsWriter) { w.write(string(r)) }

// Ref refers to a name or dotted path such as "google.visualization".
func Ref(path string) Expr { return refExpr(path) }

type litExpr struct{ v interface{} }

func (l litExpr) emit(w *jsWriter) {
	b, err := literalAPI.Marshal(l.v)
	if err != nil {
		w.fail(err)
		return
	}
	w.write(string(b))
}

// Lit encodes v as a JSON literal.
func Lit(v interface{}) Expr { return litExpr{v: v} }

type memberExpr struct {
	x    Expr
	name string
}

func (m memberExpr) emit(w *jsWriter) {
	m.x.emit(w)
	w.write("." + m.name)
}

// Member selects property name of x.
func Member(x Expr, name string) Expr { return memberExpr{x: x, name: name} }

type callExpr struct {
	fn   Expr
	args []Expr
	ctor bool
}

func (c callExpr) emit(w *jsWriter) {
	if c.ctor {
		w.write("new ")
	}
	c.fn.emit(w)
	w.write("(")
	for i, a := range c.args {
		if i > 0 {
			w.write(", ")
		}
		a.emit(w)
	}
	w.write(")")
}

// Call invokes fn with args.
func Call(fn Expr, args ...Expr) Expr { return callExpr{fn: fn, args: args} }

// New invokes ctor as a constructor.
func New(ctor Expr, args ...Expr) Expr { return callExpr{fn: ctor, args: args, ctor: true} }

// Prop is one key of an object literal.
type Prop struct {
	Key   string
	Value Expr
}

type objectExpr []Prop

func (o objectExpr) emit(w *jsWriter) {
	w.write("{")
	for i, p := range o {
		if i > 0 {
			w.write(", ")
		}
		if isIdentifier(p.Key) {
			w.write(p.Key)
		} else {
			Lit(p.Key).emit(w)
		}
		w.write(": ")
		p.Value.emit(w)
	}
	w.write("}")
}

// Object builds an object literal that keeps the order of props.
func Object(props ...Prop) Expr { return objectExpr(props) }

type arrayExpr []Expr

func (a arrayExpr) emit(w *jsWriter) {
	w.write("[")
	for i, e := range a {
		if i > 0 {
			w.write(", ")
		}
		e.emit(w)
	}
	w.write("]")
}

// Array builds an array literal.
func Array(elems ...Expr) Expr { return arrayExpr(elems) }

type funcExpr struct {
	name   string
	params []string
	body   []Stmt
}

func (f funcExpr) emit(w *jsWriter) {
	if f.name == "" {
		w.write("function (")
	} else {
		w.write("function " + f.name + "(")
	}
	w.write(strings.Join(f.params, ", ") + ") ")
	w.block(f.body)
}

// Func builds an anonymous function expression.
func Func(params []string, body ...Stmt) Expr {
	return funcExpr{params: params, body: body}
}

type varStmt struct {
	name  string
	value Expr
}

func (v varStmt) emit(w *jsWriter) {
	w.write("var " + v.name + " = ")
	v.value.emit(w)
	w.write(";")
}

// Var declares name initialised to value.
func Var(name string, value Expr) Stmt { return varStmt{name: name, value: value} }

type exprStmt struct{ x Expr }

func (e exprStmt) emit(w *jsWriter) {
	e.x.emit(w)
	w.write(";")
}

// Do evaluates x as a statement.
func Do(x Expr) Stmt { return exprStmt{x: x} }

type funcDecl funcExpr

func (f funcDecl) emit(w *jsWriter) { funcExpr(f).emit(w) }

// FuncDecl declares a named function.
func FuncDecl(name string, params []string, body ...Stmt) Stmt {
	return funcDecl{name: name, params: params, body: body}
}

// Script serializes statements into JavaScript source. Encoding failures
// of any literal abort the whole script.
func Script(stmts ...Stmt) (string, error) {
	w := &jsWriter{}
	for i, s := range stmts {
		if i > 0 {
			w.newline()
		}
		s.emit(w)
	}
	if w.err != nil {
		return "", w.err
	}
	return w.sb.String(), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
