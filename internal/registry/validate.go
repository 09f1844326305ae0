package registry

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// expectedTypeName returns the exported type name a custom connector for
// serviceName must declare, e.g. "zendesk" -> "ZendeskConnector".
func expectedTypeName(serviceName string) string {
	if serviceName == "" {
		return "Connector"
	}
	return strings.ToUpper(serviceName[:1]) + serviceName[1:] + "Connector"
}

// validateSource statically checks a candidate connector file's source
// against the shape the Connector Registry requires, without compiling or
// executing it: go/parser.ParseFile is enough to catch syntax errors, and
// an AST walk confirms the structural contract — exactly one matching
// type, a ServiceName() method returning the expected literal, every
// action in actions present as a method, and the two constructors.
//
// This mirrors the validator it is grounded on, adapted to Go: there is no
// decorator-evaluation step to dry-import, since Go has no module-level
// side effects equivalent to a class decorator running at import time —
// that failure mode is instead caught by the subsequent subprocess
// dry-build in custom_loader.go, which is Go's analogue of a dry import.
func validateSource(src []byte, serviceName string, actions []string) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, serviceName+".go", src, parser.AllErrors)
	if err != nil {
		return fmt.Errorf("candidate connector does not parse: %w", err)
	}

	typeName := expectedTypeName(serviceName)
	matchCount := 0
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if ts.Name.Name == typeName {
				matchCount++
			}
		}
	}
	if matchCount == 0 {
		return fmt.Errorf("candidate connector must declare exactly one type named %q, found none", typeName)
	}
	if matchCount > 1 {
		return fmt.Errorf("candidate connector must declare exactly one type named %q, found %d", typeName, matchCount)
	}

	methods := collectMethodNames(file, typeName)

	required := append([]string{"ServiceName", "Invoke"}, actions...)
	var missing []string
	for _, name := range required {
		if !methods[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("candidate connector type %q missing required method(s): %s", typeName, strings.Join(missing, ", "))
	}

	if !hasTopLevelFunc(file, "NewFromSettings") {
		return fmt.Errorf("candidate connector file missing required constructor func NewFromSettings")
	}
	if !hasTopLevelFunc(file, "IsConfigured") && !methods["IsConfigured"] {
		return fmt.Errorf("candidate connector missing required IsConfigured constructor/method")
	}

	return nil
}

// collectMethodNames returns the set of method names declared with a
// receiver of typeName or *typeName.
func collectMethodNames(file *ast.File, typeName string) map[string]bool {
	methods := make(map[string]bool)
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}
		recvType := fn.Recv.List[0].Type
		if star, ok := recvType.(*ast.StarExpr); ok {
			recvType = star.X
		}
		ident, ok := recvType.(*ast.Ident)
		if !ok || ident.Name != typeName {
			continue
		}
		methods[fn.Name.Name] = true
	}
	return methods
}

func hasTopLevelFunc(file *ast.File, name string) bool {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if ok && fn.Recv == nil && fn.Name.Name == name {
			return true
		}
	}
	return false
}
