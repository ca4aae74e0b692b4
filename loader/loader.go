// Package loader registers the schema documents found in a directory.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
	"github.com/signadot/docschema/debug"
	"github.com/signadot/docschema/schema"
)

const PatchSuffix = ".patch.json"

var ErrNoID = errors.New("schema document declares no id")

// Registrar receives loaded schemas. *schema.Registry is a Registrar.
type Registrar interface {
	Register(id string, s *schema.Schema) error
	Deregister(id string) bool
}

// IDExtractor determines the id of the document at path.
type IDExtractor func(path string, doc map[string]any) (string, error)

// DefaultID reads the document's "$id", then its "id".
func DefaultID(path string, doc map[string]any) (string, error) {
	for _, k := range []string{"$id", "id"} {
		if id, ok := doc[k].(string); ok && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("%s: %w", path, ErrNoID)
}

type loadOpts struct {
	recursive bool
	id        IDExtractor
}

type Option func(*loadOpts)

// Recursive makes the loader descend into subdirectories.
func Recursive(v bool) Option {
	return func(o *loadOpts) { o.recursive = v }
}

// IDFunc replaces DefaultID.
func IDFunc(f IDExtractor) Option {
	return func(o *loadOpts) { o.id = f }
}

func options(opts []Option) *loadOpts {
	o := &loadOpts{id: DefaultID}
	for _, f := range opts {
		f(o)
	}
	return o
}

// IsSchemaFile reports whether path names a schema document by extension.
func IsSchemaFile(path string) bool {
	if strings.HasSuffix(path, PatchSuffix) {
		return false
	}
	switch filepath.Ext(path) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadDir parses every schema document under root and registers it with
// reg. It returns the id under which each file was registered.
func LoadDir(ctx context.Context, reg Registrar, root string, opts ...Option) (map[string]string, error) {
	o := options(opts)
	ids := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !o.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if !IsSchemaFile(path) {
			return nil
		}
		id, s, err := LoadFile(path, opts...)
		if err != nil {
			return err
		}
		if err := reg.Register(id, s); err != nil {
			return fmt.Errorf("could not register %s: %w", path, err)
		}
		ids[path] = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	if debug.Load() {
		debug.Logf("loaded %s: %v\n", root, debug.JSON{V: ids})
	}
	return ids, nil
}

// LoadFile parses the schema document at path, applying its overlay if
// there is one.
func LoadFile(path string, opts ...Option) (string, *schema.Schema, error) {
	return load(path, options(opts))
}

func load(path string, o *loadOpts) (string, *schema.Schema, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	if d, err = applyOverlay(path, d); err != nil {
		return "", nil, err
	}
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return "", nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return "", nil, fmt.Errorf("%s: %w: not a mapping", path, schema.ErrInvalidSchema)
	}
	s, err := schema.FromMap(doc)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	id, err := o.id(path, doc)
	if err != nil {
		return "", nil, err
	}
	if debug.Load() {
		debug.Logf("loaded %s as %q\n", path, id)
	}
	return id, s, nil
}

// OverlayPath returns the path of the overlay of the document at path.
func OverlayPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + PatchSuffix
}

func applyOverlay(path string, d []byte) ([]byte, error) {
	pPath := OverlayPath(path)
	pd, err := os.ReadFile(pPath)
	if errors.Is(err, fs.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return nil, fmt.Errorf("could not decode patch %s: %w", pPath, err)
	}
	jd, err := yaml.YAMLToJSON(d)
	if err != nil {
		return nil, fmt.Errorf("could not convert %s to json: %w", path, err)
	}
	out, err := ops.Apply(jd)
	if err != nil {
		return nil, fmt.Errorf("could not apply %s: %w", pPath, err)
	}
	if debug.Load() {
		debug.Logf("applied overlay %s\n", pPath)
	}
	return out, nil
}
