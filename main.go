package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/dioptra/pkg/kernel/sdfx"
)

func main() {
	svgPath := flag.String("svg", "", "Write surfaces and rays to this SVG file")
	asJSON := flag.Bool("json", false, "Print the full evaluation result as JSON")
	style := flag.String("style", sdfx.DefaultLineStyle, "SVG line style")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dioptra [options] scene.dioptra")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading scene: %v", err)
	}

	app := NewApp()

	var result EvalResult
	if *svgPath != "" {
		result, err = app.Render(string(source), sdfx.NewSVGSink(*svgPath, *style))
		if err != nil {
			log.Fatalf("writing %s: %v", *svgPath, err)
		}
	} else {
		result = app.Evaluate(string(source))
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("encoding result: %v", err)
		}
	} else {
		printSummary(result)
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

// printSummary writes errors and warnings to stderr and the trace
// statistics to stdout.
func printSummary(r EvalResult) {
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(os.Stderr, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %s\n", e.Message)
		}
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}
	if len(r.Errors) > 0 {
		return
	}
	s := r.Stats
	fmt.Printf("seeds %d, rays %d, reflections %d, refractions %d, undefined %d, depth-limited %d\n",
		s.Seeds, s.Rays, s.Reflections, s.Refractions, s.Undefined, s.DepthLimited)
}
