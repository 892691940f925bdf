package jsonschema

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/go-faster/errors"
)

type refKey struct {
	loc string
	ref string
}

func (r *refKey) fromURL(u *url.URL) (loc url.URL) {
	{
		// Make copy.
		loc = *u
		loc.Fragment = ""
		r.loc = loc.String()
	}
	r.ref = "#" + u.Fragment
	return loc
}

type resolveCtx struct {
	parent *url.URL
	// Store references to detect infinite recursive references.
	refs map[refKey]struct{}
}

func newResolveCtx(parent *url.URL) *resolveCtx {
	return &resolveCtx{
		parent: parent,
		refs:   map[refKey]struct{}{},
	}
}

// child derives a context with a new base URL, keeping the recursion
// guard shared.
func (r *resolveCtx) child(parent *url.URL) *resolveCtx {
	return &resolveCtx{
		parent: parent,
		refs:   r.refs,
	}
}

func (r *resolveCtx) add(key refKey) error {
	if _, ok := r.refs[key]; ok {
		return errors.Errorf("infinite recursion via %q", key.loc+key.ref)
	}
	r.refs[key] = struct{}{}
	return nil
}

func (r *resolveCtx) delete(key refKey) {
	delete(r.refs, key)
}

func (r *resolveCtx) parseURL(ref string) (*url.URL, error) {
	if r.parent != nil {
		return r.parent.Parse(ref)
	}
	return url.Parse(ref)
}

func (p *compiler) resolve(ref string, ctx *resolveCtx) (*Schema, error) {
	if s, ok := p.refcache[ref]; ok {
		return s, nil
	}

	u, err := ctx.parseURL(ref)
	if err != nil {
		return nil, errors.Wrap(err, "parse ref")
	}
	var key refKey
	locURL := key.fromURL(u)

	if err := ctx.add(key); err != nil {
		return nil, err
	}
	defer func() {
		// Drop the resolved ref to prevent false-positive infinite recursion detection.
		ctx.delete(key)
	}()

	root, err := p.resolveURL(u, key)
	if err != nil {
		return nil, errors.Wrap(err, "resolve URL")
	}

	var raw RawSchema
	if err := json.Unmarshal(root, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshal")
	}

	return p.compile1(raw, &resolveCtx{
		parent: &locURL,
		refs:   ctx.refs,
	}, func(s *Schema) {
		p.refcache[ref] = s
	})
}

func (p *compiler) resolveURL(u *url.URL, key refKey) ([]byte, error) {
	if data, ok, err := p.doc.resolve(u); err != nil {
		return nil, err
	} else if ok {
		return data, nil
	}

	loc := key.loc
	doc, ok := p.remotes[loc]
	if !ok {
		data, err := p.remote.Resolve(context.TODO(), loc)
		if err != nil {
			return nil, errors.Wrapf(err, "remote %q", loc)
		}

		base, err := url.Parse(loc)
		if err != nil {
			return nil, errors.Wrap(err, "parse location")
		}

		doc, err = collectIDs(base, data)
		if err != nil {
			return nil, err
		}
		if doc.id == nil {
			doc.id = base
		}
		if _, ok := doc.ids[loc]; !ok {
			doc.ids[loc] = data
		}
		p.remotes[loc] = doc
	}

	data, ok, err := doc.resolve(u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Errorf("cannot resolve %q", u.String())
	}
	return data, nil
}
