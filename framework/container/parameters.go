package container

import (
	"maps"
	"strings"
)

// Parameters is the nested parameter tree. Branches are map[string]any (or
// Parameters); anything else is a leaf.
type Parameters map[string]any

// Resolve walks the tree along the dot-separated path and returns whatever
// sits at the end of it, leaf or sub-tree.
//
//	p := Parameters{"db": map[string]any{"host": "localhost"}}
//	host, _ := p.Resolve("db.host") // "localhost"
func (p Parameters) Resolve(path string) (any, error) {
	var current any = map[string]any(p)
	for _, segment := range strings.Split(path, ".") {
		branch, ok := asBranch(current)
		if !ok {
			return nil, &ParameterNotFoundError{Path: path}
		}
		next, ok := branch[segment]
		if !ok {
			return nil, &ParameterNotFoundError{Path: path}
		}
		current = next
	}
	return current, nil
}

// Has reports whether Resolve would succeed for path.
func (p Parameters) Has(path string) bool {
	_, err := p.Resolve(path)
	return err == nil
}

// Merge deep-merges other into p, overwriting leaves and merging branches
// that exist on both sides. p is modified in place and returned.
func (p Parameters) Merge(other Parameters) Parameters {
	for k, v := range other {
		src, srcIsBranch := asBranch(v)
		dst, dstIsBranch := asBranch(p[k])
		if srcIsBranch && dstIsBranch {
			merged := Parameters(maps.Clone(dst)).Merge(Parameters(src))
			p[k] = map[string]any(merged)
			continue
		}
		p[k] = v
	}
	return p
}

func asBranch(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Parameters:
		return map[string]any(m), true
	default:
		return nil, false
	}
}
