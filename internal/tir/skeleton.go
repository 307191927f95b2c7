package tir

// SkeletonEqual reports whether the types at a and b have matching
// skeletons (§4.3): structural compatibility that ignores
// accessibility and any other non-structural metadata. Handle
// equality is always a match, since aliasing (`use ... as X`) never
// creates a second Type value for the same declaration (S7).
func SkeletonEqual(ctx *Context, a, b TypeLocation) bool {
	if a == b {
		return true
	}
	va, aok := ctx.Types.GetAt(a)
	vb, bok := ctx.Types.GetAt(b)
	if !aok || !bok {
		return false
	}
	return skeletonEqualValues(ctx, va, vb)
}

func skeletonEqualValues(ctx *Context, a, b Type) bool {
	switch av := a.(type) {
	case *Primitive:
		bv, ok := b.(*Primitive)
		return ok && av.Kind == bv.Kind
	case *Class:
		if bi, ok := b.(*Interface); ok {
			return classImplementsInterface(ctx, av, bi)
		}
		bv, ok := b.(*Class)
		return ok && av.Path == bv.Path
	case *Function:
		switch bv := b.(type) {
		case *Function:
			return skeletonEqualFuncLike(ctx, av.Name, av.Parameters, av.Return, bv.Name, bv.Parameters, bv.Return)
		case *InterfaceMethod:
			return skeletonEqualFuncLike(ctx, av.Name, av.Parameters, av.Return, bv.Name, bv.Parameters, bv.Return)
		default:
			return false
		}
	case *InterfaceMethod:
		switch bv := b.(type) {
		case *InterfaceMethod:
			return skeletonEqualFuncLike(ctx, av.Name, av.Parameters, av.Return, bv.Name, bv.Parameters, bv.Return)
		case *Function:
			return skeletonEqualFuncLike(ctx, av.Name, av.Parameters, av.Return, bv.Name, bv.Parameters, bv.Return)
		default:
			return false
		}
	case *Interface:
		if bv, ok := b.(*Interface); ok {
			return av.Path == bv.Path
		}
		if bc, ok := b.(*Class); ok {
			return classImplementsInterface(ctx, bc, av)
		}
		return false
	default:
		// ModuleRef and Extension never participate in skeleton
		// comparisons: neither is ever held as a field, parameter or
		// return type.
		return false
	}
}

func skeletonEqualFuncLike(ctx *Context, aName string, aParams []Param, aReturn TypeLocation, bName string, bParams []Param, bReturn TypeLocation) bool {
	// The receiver slot is positional, not part of the member's
	// comparable shape: an interface method's `this` has no class to
	// bind to until an extension supplies one.
	aParams = stripReceiver(aParams)
	bParams = stripReceiver(bParams)
	if aName != bName || len(aParams) != len(bParams) {
		return false
	}
	if !SkeletonEqual(ctx, aReturn, bReturn) {
		return false
	}
	for i := range aParams {
		if aParams[i].Name != bParams[i].Name {
			return false
		}
		if !SkeletonEqual(ctx, aParams[i].Type, bParams[i].Type) {
			return false
		}
	}
	return true
}

func stripReceiver(params []Param) []Param {
	if len(params) > 0 && params[0].Name == "this" {
		return params[1:]
	}
	return params
}

// classImplementsInterface reports whether class c lists an extension
// whose interface set includes iface's canonical path (§4.3, last
// bullet: "Interface matches class iff the class's extensions list
// contains an extension whose interface has the same canonical full
// name").
func classImplementsInterface(ctx *Context, c *Class, iface *Interface) bool {
	for _, extLoc := range c.Extensions {
		ev, ok := ctx.Types.GetAt(extLoc)
		if !ok {
			continue
		}
		ext, ok := ev.(*Extension)
		if !ok {
			continue
		}
		for _, ifaceLoc := range ext.Interfaces {
			iv, ok := ctx.Types.GetAt(ifaceLoc)
			if !ok {
				continue
			}
			if other, ok := iv.(*Interface); ok && other.Path == iface.Path {
				return true
			}
		}
	}
	return false
}
