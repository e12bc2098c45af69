// Package movecheck defines an analyzer that reports uses of move-only values
// after their ownership has been transferred.
//
// A named type opts in with a directive line in its doc comment:
//
//	// Record is one transfer.
//	//
//	//txflow:move
//	type Record struct{ ... }
//
// A local variable of such a type gives its value away when it is passed as a
// call argument, assigned or declared from, returned, sent on a channel, or
// placed in a composite literal; a bare return hands off every named result.
// Any later reference to the variable on some path through the function,
// including reads such as rec.ID() and captures in closures, is reported until
// the variable is assigned again. Taking the address (&rec) and calling
// methods borrow the value without moving it. Moves made inside a closure body
// do not affect the enclosing function.
package movecheck

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/ctrlflow"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/cfg"
)

// Directive marks a type declaration as move-only.
const Directive = "//txflow:move"

const doc = `report uses of move-only values after ownership transfer

Types whose declaration carries the ` + Directive + ` directive are move-only.
Passing such a value by value, assigning it, returning it or storing it
transfers ownership; every later reference to the same variable is an error.`

var Analyzer = &analysis.Analyzer{
	Name:      "movecheck",
	Doc:       doc,
	Requires:  []*analysis.Analyzer{inspect.Analyzer, ctrlflow.Analyzer},
	Run:       run,
	FactTypes: []analysis.Fact{new(moveOnly)},
}

// moveOnly is exported for every type carrying the directive so that
// importing packages track its values too.
type moveOnly struct{ Directive string }

func (*moveOnly) AFact()         {}
func (*moveOnly) String() string { return "move-only" }

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	cfgs := pass.ResultOf[ctrlflow.Analyzer].(*ctrlflow.CFGs)

	insp.Preorder([]ast.Node{(*ast.GenDecl)(nil)}, func(n ast.Node) {
		decl := n.(*ast.GenDecl)
		if decl.Tok != token.TYPE {
			return
		}
		for _, spec := range decl.Specs {
			ts := spec.(*ast.TypeSpec)
			if !hasDirective(ts.Doc) && !(decl.Lparen == token.NoPos && hasDirective(decl.Doc)) {
				continue
			}
			if obj, ok := pass.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
				pass.ExportObjectFact(obj, &moveOnly{Directive: Directive})
			}
		}
	})

	c := &checker{
		pass:     pass,
		moveOnly: make(map[*types.TypeName]bool),
		reported: make(map[token.Pos]bool),
	}
	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)}, func(n ast.Node) {
		var (
			g     *cfg.CFG
			ftype *ast.FuncType
		)
		switch n := n.(type) {
		case *ast.FuncDecl:
			if n.Body == nil {
				return
			}
			g, ftype = cfgs.FuncDecl(n), n.Type
		case *ast.FuncLit:
			g, ftype = cfgs.FuncLit(n), n.Type
		}
		if g != nil {
			c.checkFunc(g, c.namedResults(ftype))
		}
	})
	return nil, nil
}

func hasDirective(cg *ast.CommentGroup) bool {
	if cg == nil {
		return false
	}
	for _, comment := range cg.List {
		if strings.TrimSpace(comment.Text) == Directive {
			return true
		}
	}
	return false
}

type checker struct {
	pass     *analysis.Pass
	moveOnly map[*types.TypeName]bool
	reported map[token.Pos]bool
}

func (c *checker) isMoveOnly(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Origin().Obj()
	if obj.Pkg() == nil {
		return false
	}
	is, cached := c.moveOnly[obj]
	if !cached {
		is = c.pass.ImportObjectFact(obj, new(moveOnly))
		c.moveOnly[obj] = is
	}
	return is
}

// namedResults returns the tracked named results of a function signature.
func (c *checker) namedResults(ftype *ast.FuncType) []*types.Var {
	if ftype == nil || ftype.Results == nil {
		return nil
	}
	var out []*types.Var
	for _, field := range ftype.Results.List {
		for _, name := range field.Names {
			if v := c.tracked(c.pass.TypesInfo.Defs[name]); v != nil {
				out = append(out, v)
			}
		}
	}
	return out
}

// tracked returns obj as a function-local variable of a move-only type.
func (c *checker) tracked(obj types.Object) *types.Var {
	v, ok := obj.(*types.Var)
	if !ok || v.IsField() || v.Pkg() != c.pass.Pkg {
		return nil
	}
	if v.Parent() == nil || v.Parent() == v.Pkg().Scope() {
		return nil
	}
	if !c.isMoveOnly(v.Type()) {
		return nil
	}
	return v
}
