package movecheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"maps"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/cfg"
)

// state maps every variable that may have been moved to the position of its
// first transfer.
type state map[*types.Var]token.Pos

// checkFunc runs a forward may-moved analysis over g and reports every use
// that a moved value can reach. results are the function's tracked named
// results, handed off by a bare return.
func (c *checker) checkFunc(g *cfg.CFG, results []*types.Var) {
	preds := make(map[*cfg.Block][]*cfg.Block, len(g.Blocks))
	for _, b := range g.Blocks {
		for _, succ := range b.Succs {
			preds[succ] = append(preds[succ], b)
		}
	}

	out := make(map[*cfg.Block]state, len(g.Blocks))
	for changed := true; changed; {
		changed = false
		for _, b := range g.Blocks {
			if !b.Live {
				continue
			}
			st := c.transfer(b, join(preds[b], out), results, false)
			if !maps.Equal(st, out[b]) {
				out[b] = st
				changed = true
			}
		}
	}

	for _, b := range g.Blocks {
		if b.Live {
			c.transfer(b, join(preds[b], out), results, true)
		}
	}
}

// join merges predecessor states, keeping the earliest transfer per variable.
func join(preds []*cfg.Block, out map[*cfg.Block]state) state {
	st := make(state)
	for _, p := range preds {
		for v, at := range out[p] {
			if prev, ok := st[v]; !ok || at < prev {
				st[v] = at
			}
		}
	}
	return st
}

func (c *checker) transfer(b *cfg.Block, in state, results []*types.Var, report bool) state {
	w := &walker{c: c, state: in, results: results, report: report}
	if b.Kind == cfg.KindRangeBody {
		if rs, ok := b.Stmt.(*ast.RangeStmt); ok {
			// Each iteration binds fresh key and value variables.
			w.target(rs.Key, rs.Tok)
			w.target(rs.Value, rs.Tok)
		}
	}
	for _, n := range b.Nodes {
		w.node(n)
	}
	return w.state
}

type walker struct {
	c       *checker
	state   state
	results []*types.Var
	report  bool
}

func (w *walker) node(n ast.Node) {
	switch n := n.(type) {
	case *ast.AssignStmt:
		for _, e := range n.Rhs {
			w.expr(e, true)
		}
		for _, e := range n.Lhs {
			w.target(e, n.Tok)
		}
	case *ast.DeclStmt:
		if decl, ok := n.Decl.(*ast.GenDecl); ok {
			for _, spec := range decl.Specs {
				w.node(spec)
			}
		}
	case *ast.ValueSpec:
		for _, e := range n.Values {
			w.expr(e, true)
		}
		for _, name := range n.Names {
			w.ident(name, false)
		}
	case *ast.ReturnStmt:
		for _, e := range n.Results {
			w.expr(e, true)
		}
		if len(n.Results) == 0 {
			for _, v := range w.results {
				w.use(n.Return, v.Name(), v)
				w.move(n.Return, v)
			}
		}
	case *ast.SendStmt:
		w.expr(n.Chan, false)
		w.expr(n.Value, true)
	case *ast.ExprStmt:
		w.expr(n.X, false)
	case *ast.GoStmt:
		w.expr(n.Call, false)
	case *ast.DeferStmt:
		w.expr(n.Call, false)
	case *ast.IncDecStmt:
		w.expr(n.X, false)
	case ast.Expr:
		w.expr(n, false)
	}
}

// target handles the left-hand side of an assignment. Plain assignment and
// definition give the variable a fresh value.
func (w *walker) target(e ast.Expr, tok token.Token) {
	if e == nil {
		return
	}
	if id, ok := astutil.Unparen(e).(*ast.Ident); ok && (tok == token.ASSIGN || tok == token.DEFINE) {
		obj := w.c.pass.TypesInfo.Defs[id]
		if obj == nil {
			obj = w.c.pass.TypesInfo.Uses[id]
		}
		if v := w.c.tracked(obj); v != nil {
			delete(w.state, v)
		}
		return
	}
	w.expr(e, false)
}

// expr visits e in evaluation order. moving reports whether the value of e
// is handed to a new owner.
func (w *walker) expr(e ast.Expr, moving bool) {
	switch e := e.(type) {
	case *ast.Ident:
		w.ident(e, moving)
	case *ast.ParenExpr:
		w.expr(e.X, moving)
	case *ast.CallExpr:
		w.expr(e.Fun, false)
		for _, arg := range e.Args {
			w.expr(arg, true)
		}
	case *ast.SelectorExpr:
		w.expr(e.X, false)
	case *ast.StarExpr:
		w.expr(e.X, false)
	case *ast.UnaryExpr:
		w.expr(e.X, false)
	case *ast.BinaryExpr:
		w.expr(e.X, false)
		w.expr(e.Y, false)
	case *ast.IndexExpr:
		w.expr(e.X, false)
		w.expr(e.Index, false)
	case *ast.IndexListExpr:
		w.expr(e.X, false)
		for _, idx := range e.Indices {
			w.expr(idx, false)
		}
	case *ast.SliceExpr:
		w.expr(e.X, false)
		w.expr(e.Low, false)
		w.expr(e.High, false)
		w.expr(e.Max, false)
	case *ast.TypeAssertExpr:
		w.expr(e.X, false)
	case *ast.CompositeLit:
		for _, elt := range e.Elts {
			w.expr(elt, true)
		}
	case *ast.KeyValueExpr:
		w.expr(e.Key, moving)
		w.expr(e.Value, moving)
	case *ast.FuncLit:
		w.capture(e)
	}
}

func (w *walker) ident(id *ast.Ident, moving bool) {
	if id.Name == "_" {
		return
	}
	info := w.c.pass.TypesInfo
	if obj := info.Defs[id]; obj != nil {
		if v := w.c.tracked(obj); v != nil {
			delete(w.state, v)
		}
		return
	}
	v := w.c.tracked(info.Uses[id])
	if v == nil {
		return
	}
	w.use(id.Pos(), id.Name, v)
	if moving {
		w.move(id.Pos(), v)
	}
}

func (w *walker) move(at token.Pos, v *types.Var) {
	if _, moved := w.state[v]; !moved {
		w.state[v] = at
	}
}

// capture treats every reference inside a closure body as a read at the
// point where the closure is created.
func (w *walker) capture(lit *ast.FuncLit) {
	ast.Inspect(lit.Body, func(n ast.Node) bool {
		id, ok := n.(*ast.Ident)
		if !ok {
			return true
		}
		if v := w.c.tracked(w.c.pass.TypesInfo.Uses[id]); v != nil {
			w.use(id.Pos(), id.Name, v)
		}
		return true
	})
}

func (w *walker) use(pos token.Pos, name string, v *types.Var) {
	at, moved := w.state[v]
	if !moved || !w.report || w.c.reported[pos] {
		return
	}
	w.c.reported[pos] = true
	w.c.pass.Report(analysis.Diagnostic{
		Pos:     pos,
		End:     pos + token.Pos(len(name)),
		Message: fmt.Sprintf("use of transferred value %q (ownership transferred at line %d)", name, w.c.pass.Fset.Position(at).Line),
		Related: []analysis.RelatedInformation{{Pos: at, End: at + token.Pos(len(name)), Message: "ownership transferred here"}},
	})
}
