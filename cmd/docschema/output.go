package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
	"github.com/scott-cotton/cli"
	"github.com/signadot/docschema/kpath"
	"github.com/signadot/docschema/schema"
)

// write encodes v as yaml, or as json with -j.
func (cfg *MainConfig) write(w io.Writer, v any) error {
	if cfg.J {
		d, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", d)
		return err
	}
	d, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	out := string(d)
	if cfg.colors(w) {
		out = colorYAML(out)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

func colorYAML(src string) string {
	attr := func(a color.Attribute) func() *printer.Property {
		return func() *printer.Property {
			return &printer.Property{
				Prefix: escape(a),
				Suffix: escape(color.Reset),
			}
		}
	}
	var p printer.Printer
	p.MapKey = attr(color.FgHiCyan)
	p.String = attr(color.FgHiGreen)
	p.Number = attr(color.FgHiMagenta)
	p.Bool = attr(color.FgHiMagenta)
	p.Anchor = attr(color.FgHiYellow)
	p.Alias = attr(color.FgHiYellow)
	return p.PrintTokens(lexer.Tokenize(src))
}

func escape(a color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", a)
}

func relToMap(r schema.Relationship) map[string]any {
	m := map[string]any{
		"path":            r.Path.String(),
		"storage":         string(r.Storage),
		"toMany":          r.ToMany,
		"depthFromParent": r.DepthFromParent,
	}
	if r.EntityTypeName != "" {
		m["entityType"] = r.EntityTypeName
	}
	if r.SchemaRef != "" {
		m["schemaRef"] = r.SchemaRef
	}
	if len(r.ForeignKeyPath) != 0 {
		m["foreignKey"] = r.ForeignKeyPath.String()
	}
	return m
}

// relReport renders rels, with every path passed through fn if it is not
// nil.
func relReport(rels []schema.Relationship, fn kpath.Transformer) (any, error) {
	res := make([]any, 0, len(rels))
	for _, r := range rels {
		res = append(res, relToMap(r))
	}
	if fn == nil {
		return res, nil
	}
	return kpath.Rewrite(res, fn)
}

// pathTransformer builds the rewrite of reported paths from the -prefix
// and -rebase flags. rebase has the form from=to.
func pathTransformer(prefix, rebase string) (kpath.Transformer, error) {
	if prefix != "" && rebase != "" {
		return nil, fmt.Errorf("%w: -prefix and -rebase are exclusive", cli.ErrUsage)
	}
	if prefix != "" {
		p, err := kpath.Parse(prefix)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		return kpath.Prefixer(p), nil
	}
	if rebase == "" {
		return nil, nil
	}
	from, to, ok := strings.Cut(rebase, "=")
	if !ok {
		return nil, fmt.Errorf("%w: -rebase wants from=to, got %q", cli.ErrUsage, rebase)
	}
	fp, err := kpath.Parse(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	tp, err := kpath.Parse(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return kpath.Rebaser(fp, tp), nil
}

func pathStrings(ps []kpath.Path) []string {
	res := make([]string, 0, len(ps))
	for _, p := range ps {
		res = append(res, p.String())
	}
	return res
}
