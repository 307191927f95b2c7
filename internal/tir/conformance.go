package tir

import (
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/source"
)

// FlattenInterface returns an interface's complete member set, its own
// members plus every member inherited from its parent interfaces, as a
// single ordered member map (§4.4, §9 "interface
// multiple-inheritance"). It does not recurse: the resolver already
// copied every parent's members into the interface's own member map
// when it published it. visited only makes a call for a handle already
// in the map return an empty result.
func FlattenInterface(ctx *Context, loc TypeLocation, visited map[TypeLocation]bool) (map[string]TypeLocation, []string) {
	members := make(map[string]TypeLocation)
	var order []string
	if visited == nil {
		visited = make(map[TypeLocation]bool)
	}
	if visited[loc] {
		return members, order
	}
	visited[loc] = true

	v, ok := ctx.Types.GetAt(loc)
	if !ok {
		return members, order
	}
	iface, ok := v.(*Interface)
	if !ok {
		return members, order
	}
	for _, name := range iface.MemberOrder {
		if _, exists := members[name]; !exists {
			order = append(order, name)
		}
		members[name] = iface.Members[name]
	}
	return members, order
}

// Staged is a member an extend clause is contributing, before it has
// been matched against any interface.
type Staged struct {
	Name string
	Type TypeLocation
	Span source.Span
}

// CheckConformance matches an extension's staged members against the
// flattened member set of every listed interface, reporting all three
// independent failure modes (§4.4): a member an interface requires but
// the extension lacks, a member present in both but with a mismatched
// skeleton, and a member the extension contributes that no listed
// interface required.
//
// It returns the diagnostics found (possibly none). Callers merge all
// staged members into the target class's field table regardless of
// match outcome, since a mismatch is reported, not silently dropped.
func CheckConformance(ctx *Context, extendSpan source.Span, interfaceRefSpans map[string]source.Span, interfaces []TypeLocation, staged map[string]Staged) []*diagnostics.Diagnostic {
	var diags []*diagnostics.Diagnostic
	tracking := make(map[string]bool, len(staged))
	for name := range staged {
		tracking[name] = true
	}

	for _, ifaceLoc := range interfaces {
		members, order := FlattenInterface(ctx, ifaceLoc, nil)
		ifaceValue, _ := ctx.Types.GetAt(ifaceLoc)
		iface, _ := ifaceValue.(*Interface)
		refSpan := extendSpan
		if iface != nil {
			if s, ok := interfaceRefSpans[iface.Path]; ok {
				refSpan = s
			}
		}
		for _, name := range order {
			requiredType := members[name]
			stagedMember, present := staged[name]
			if !present {
				diags = append(diags, diagnostics.New(
					diagnostics.InterfaceFieldNotDefined,
					refSpan,
					"extension does not define required member \""+name+"\"",
				))
				continue
			}
			if !SkeletonEqual(ctx, stagedMember.Type, requiredType) {
				diags = append(diags, diagnostics.New(
					diagnostics.TypesDoNotMatch,
					stagedMember.Span,
					"member \""+name+"\" does not match the shape required by the interface",
				))
			}
			delete(tracking, name)
		}
	}

	for name := range tracking {
		diags = append(diags, diagnostics.New(
			diagnostics.ExtraFieldInExtend,
			staged[name].Span,
			"member \""+name+"\" is not required by any listed interface",
		))
	}
	return diags
}
