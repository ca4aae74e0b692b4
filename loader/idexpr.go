package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// IDExpr compiles an expression computing document ids. The expression
// sees
//
//	path  the file path
//	name  the file name
//	stem  the file name without extension
//	doc   the decoded document
//
// and must produce a non-empty string, for example `doc.title ?? stem`.
func IDExpr(src string) (IDExtractor, error) {
	prg, err := expr.Compile(src, expr.Env(idEnv("", nil)))
	if err != nil {
		return nil, fmt.Errorf("could not compile id expression %q: %w", src, err)
	}
	return func(path string, doc map[string]any) (string, error) {
		return runIDExpr(prg, path, doc)
	}, nil
}

func runIDExpr(prg *vm.Program, path string, doc map[string]any) (string, error) {
	out, err := expr.Run(prg, idEnv(path, doc))
	if err != nil {
		return "", fmt.Errorf("%s: error evaluating id expression: %w", path, err)
	}
	id, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("%s: id expression gave %T, not a string", path, out)
	}
	if id == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoID)
	}
	return id, nil
}

func idEnv(path string, doc map[string]any) map[string]any {
	if doc == nil {
		doc = map[string]any{}
	}
	name := filepath.Base(path)
	return map[string]any{
		"path": path,
		"name": name,
		"stem": strings.TrimSuffix(name, filepath.Ext(name)),
		"doc":  doc,
	}
}
