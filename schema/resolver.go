package schema

import "context"

// Resolver resolves a $ref string to a schema. ResolveRef returns nil when
// the reference names nothing.
type Resolver interface {
	ResolveRef(ref string) *Schema
}

type ResolverFunc func(ref string) *Schema

func (f ResolverFunc) ResolveRef(ref string) *Schema {
	return f(ref)
}

// Loader is the blocking form of Resolver used by Expand. A nil schema with
// a nil error means the reference names nothing.
type Loader interface {
	LoadRef(ctx context.Context, ref string) (*Schema, error)
}

type LoaderFunc func(ctx context.Context, ref string) (*Schema, error)

func (f LoaderFunc) LoadRef(ctx context.Context, ref string) (*Schema, error) {
	return f(ctx, ref)
}

// SyncLoader adapts r to a Loader. The returned loader only reports
// context errors.
func SyncLoader(r Resolver) Loader {
	return LoaderFunc(func(ctx context.Context, ref string) (*Schema, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return r.ResolveRef(ref), nil
	})
}

// MapResolver resolves references by exact key.
type MapResolver map[string]*Schema

func (m MapResolver) ResolveRef(ref string) *Schema {
	return m[ref]
}
