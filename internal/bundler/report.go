package bundler

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/lumajs/buildplane/pkg/plan"
)

// writeReports materializes the analysis steps of a descriptor from the
// esbuild metafile: the size report is the raw metafile JSON, the visual
// report is esbuild's human-readable analysis wrapped in a minimal page.
func writeReports(d plan.BuildDescriptor, metafile string) error {
	for _, step := range d.Plugins {
		switch step := step.(type) {
		case plan.SizeReport:
			if err := writeReport(step.File, []byte(metafile)); err != nil {
				return fmt.Errorf("size report for %s (%s): %w", d.Package, d.Target, err)
			}
		case plan.VisualReport:
			analysis := api.AnalyzeMetafile(metafile, api.AnalyzeMetafileOptions{})
			page := fmt.Sprintf(
				"<!doctype html>\n<title>%s bundle analysis</title>\n<pre>%s</pre>\n",
				html.EscapeString(d.Package), html.EscapeString(analysis),
			)
			if err := writeReport(step.File, []byte(page)); err != nil {
				return fmt.Errorf("visual report for %s (%s): %w", d.Package, d.Target, err)
			}
		}
	}
	return nil
}

func writeReport(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
