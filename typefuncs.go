package wiregen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sort"
)

// walker adapts a function to satisfy the ast.Visitor interface.
// The function return whether the walk should proceed into the node's children.
type walker func(ast.Node) bool

func (w walker) Visit(node ast.Node) ast.Visitor {
	if w(node) {
		return w
	}
	return nil
}

// FindTypes parses the AST of files of a package, look for the types declared
// in those files, excluding those listed in excludeFiles.
// It returns the sorted type names. Generation feeds them to
// TemplateContext.ExistingTypes so hand-written types are not re-emitted.
func FindTypes(path string, pkgName string, excludeFiles []string) ([]string, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, path, func(fi os.FileInfo) bool {
		for _, f := range excludeFiles {
			if fi.Name() == f {
				return false
			}
		}
		return true
	}, parser.DeclarationErrors)
	if err != nil {
		return nil, err
	}
	pkg, ok := pkgs[pkgName]
	if !ok {
		return nil, fmt.Errorf("%s: package not found in %q", pkgName, path)
	}

	seen := make(map[string]bool)
	for _, astFile := range pkg.Files {
		ast.Walk(walker(func(node ast.Node) bool {
			switch v := node.(type) {
			case *ast.TypeSpec:
				seen[v.Name.String()] = true
			}
			return true
		}), astFile)
	}
	var names []string
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
