package tir

import (
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/source"
)

// IsAccessible applies the rule table in §4.5: modules and interfaces
// are always accessible across module boundaries; classes and
// functions only when declared `pub`; extensions are never
// importable at all (they cannot legally appear as the target of a
// `use`, so this function is never even asked about one).
func IsAccessible(kind Kind, isPublic bool) bool {
	switch kind {
	case KindModuleRef, KindInterface:
		return true
	case KindClass, KindFunction:
		return isPublic
	default:
		return false
	}
}

// CheckImportAccessibility builds the accessibility-violation
// diagnostic for a `use` that names a private item, carrying both the
// import site and the declaration site so the rendered error can
// point at the actual private definition (§4.5).
func CheckImportAccessibility(itemName string, importSite, declSite source.Span) *diagnostics.Diagnostic {
	return diagnostics.New(
		diagnostics.AccessibilityViolation,
		importSite,
		"\""+itemName+"\" is private and cannot be imported",
	).WithLabel(declSite, "declared here without pub")
}
