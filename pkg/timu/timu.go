// Package timu is the library-level entry point a host (CLI, editor
// integration, test harness) drives the compiler front end through:
// Parse turns one file's text into an AST, Build turns a complete set
// of parsed files into the resolved TirContext (§6). Neither function
// is reimplemented here beyond wiring the lower packages together —
// the work lives in internal/parser and internal/tir.
package timu

import (
	"strings"

	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/parser"
	"github.com/timu-lang/timu/internal/source"
	"github.com/timu-lang/timu/internal/tir"
	"github.com/timu-lang/timu/internal/tir/resolver"
)

// Source is one (module-path-segments, source-text) input pair (§6).
type Source struct {
	Segments []string
	Text     string
}

// Path returns the dotted module path this source registers under,
// e.g. ["pkg","sub","file"] -> "pkg.sub.file".
func (s Source) Path() string {
	return strings.Join(s.Segments, ".")
}

// NewSourceMap creates the source map a compilation's Parse/Build
// calls share. A host that has every source's text up front may
// ignore it and call CompileSources instead, which creates its own.
func NewSourceMap() *source.Map {
	return source.NewMap()
}

// Parse registers src's text in sources and parses it into a FileAst,
// or returns the first syntax error encountered. Parsing one file
// never depends on any other file (§2: "files may be lexed/parsed
// independently before semantic analysis starts").
func Parse(sources *source.Map, src Source) (*ast.File, *parser.ParseError) {
	path := src.Path()
	handle := sources.Add(path, src.Text)
	return parser.Parse(handle, path, src.Text)
}

// Build consumes every already-parsed file and returns either a fully
// resolved Context or the diagnostics collected along the way (§6).
// Per §7 there is no partial success: a non-empty diagnostic
// collection means the returned Context's types/modules must not be
// trusted.
func Build(sources *source.Map, files []*ast.File) (*tir.Context, *diagnostics.Collection) {
	ctx := tir.NewContext(sources)
	for _, f := range files {
		if _, err := ctx.Modules.RegisterFile(f.Path, f.Handle, f); err != nil {
			ctx.Diagnostics.Add(diagnostics.New(diagnostics.AstModuleAlreadyDefined, f.Sp,
				"module \""+f.Path+"\" is already defined by another file"))
		}
	}
	diags := resolver.Resolve(ctx)
	if diags.HasErrors() {
		return ctx, diags
	}
	return ctx, nil
}

// CompileSources is a convenience wrapper over Parse+Build for a host
// that has every source's text up front and does not need the
// intermediate FileAst slice itself. A syntax error surfaces through
// its own *parser.ParseError return, distinct from the semantic
// diagnostics Build collects (§6: "parse(file) -> FileAst | ParseError").
func CompileSources(sources []Source) (*tir.Context, *diagnostics.Collection, *parser.ParseError) {
	sm := NewSourceMap()
	files := make([]*ast.File, 0, len(sources))
	for _, src := range sources {
		f, perr := Parse(sm, src)
		if perr != nil {
			return nil, nil, perr
		}
		files = append(files, f)
	}
	ctx, diags := Build(sm, files)
	return ctx, diags, nil
}
