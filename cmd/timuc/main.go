// Command timuc is the illustrative host binary for the timu compiler
// front end: it loads a timu.yaml project manifest, parses and builds
// every source file it names, and renders any diagnostics produced.
// The CLI surface itself is out of scope per spec.md §6; this is only
// the thin wiring a real host would also need, in the shape funxy's
// cmd/funxy/main.go wires its own pipeline together.
package main

import (
	"fmt"
	"os"

	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/config"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/pkg/project"
	"github.com/timu-lang/timu/pkg/timu"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: timuc <path-to-%s>\n", config.ManifestFileName)
		os.Exit(2)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(manifestPath string) error {
	manifest, err := project.Load(manifestPath)
	if err != nil {
		return err
	}
	sourceFiles, err := manifest.Files()
	if err != nil {
		return err
	}

	sources := timu.NewSourceMap()
	fileAsts := make([]*ast.File, 0, len(sourceFiles))
	for _, f := range sourceFiles {
		fileAst, perr := timu.Parse(sources, timu.Source{Segments: f.Segments, Text: f.Text})
		if perr != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", f.Path, perr.Error())
			os.Exit(1)
		}
		fileAsts = append(fileAsts, fileAst)
	}

	_, diags := timu.Build(sources, fileAsts)
	renderer := diagnostics.NewRenderer(sources, os.Stdout)
	if diags != nil {
		renderer.RenderCollection(os.Stdout, diags)
		os.Exit(1)
	}
	fmt.Printf("timuc %s: build succeeded (%d files)\n", config.Version, len(sourceFiles))
	return nil
}
