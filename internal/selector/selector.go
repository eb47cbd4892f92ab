// Package selector picks which pass file represents a texture unit.
package selector

import (
	"fmt"
	"strings"

	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/pass"
	"github.com/mydehq/texlib/internal/types"
)

// Representative returns the pass used for a unit's thumbnail and
// resolution: the first Metallic pass of a Metal unit, else the first
// BaseColor pass, else the first pass. ok is false only for a unit without
// passes.
func Representative(u *types.TextureUnit) (p types.TexturePass, ok bool) {
	if len(u.Passes) == 0 {
		return types.TexturePass{}, false
	}
	if u.CategoryName() == category.Metal {
		if p, ok := u.Pass(pass.Metallic); ok {
			return p, true
		}
	}
	if p, ok := u.Pass(pass.BaseColor); ok {
		return p, true
	}
	return u.Passes[0], true
}

// CompositeName is the request name for the unit's preferred display pass.
const CompositeName = "composite"

// Request names the pass a user wants to export.
type Request struct {
	Composite bool
	Type      pass.Type
}

func (r Request) String() string {
	if r.Composite {
		return CompositeName
	}
	return r.Type.String()
}

// ParseRequest accepts "composite" or a pass type name, ignoring case.
func ParseRequest(s string) (Request, error) {
	if strings.EqualFold(strings.TrimSpace(s), CompositeName) {
		return Request{Composite: true}, nil
	}
	t, err := pass.Parse(s)
	if err != nil {
		return Request{}, fmt.Errorf("invalid pass %q: want %s or one of %v", s, CompositeName, pass.Types())
	}
	return Request{Type: t}, nil
}

// ForExport resolves a request to a concrete pass. A composite request means
// Metallic for Metal units that have one and BaseColor otherwise. When the
// unit has no pass of the chosen type, its first pass is used.
func ForExport(u *types.TextureUnit, req Request) (types.TexturePass, bool) {
	if len(u.Passes) == 0 {
		return types.TexturePass{}, false
	}

	want := req.Type
	if req.Composite {
		want = pass.BaseColor
		if u.CategoryName() == category.Metal {
			if _, ok := u.Pass(pass.Metallic); ok {
				want = pass.Metallic
			}
		}
	}

	if p, ok := u.Pass(want); ok {
		return p, true
	}
	return u.Passes[0], true
}
