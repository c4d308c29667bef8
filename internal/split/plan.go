// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Plan is an ordered list of split outputs. Skipped holds input lines that
// could not be read as "<range>: <filename>".
type Plan struct {
	Specs   []types.SplitSpec `json:"specs" yaml:"specs"`
	Skipped []string          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// ParsePlan reads one "<range>: <filename>" spec per line, for example
//
//	1-3: Part1.pdf
//	4-5: Part2.pdf
//	6: CoverPage.pdf
//
// Blank lines are ignored. Lines without a colon are recorded in Skipped
// rather than failing the whole plan. An empty filename or a plan without
// any usable line is a MalformedRangeSyntax error.
func ParsePlan(text string) (Plan, error) {
	var plan Plan
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pages, filename, ok := strings.Cut(line, ":")
		if !ok {
			plan.Skipped = append(plan.Skipped, line)
			continue
		}
		spec := types.SplitSpec{Pages: strings.TrimSpace(pages), Filename: strings.TrimSpace(filename)}
		if spec.Filename == "" {
			return Plan{}, types.Errorf(types.KindMalformedRange, line, "line %q has no output file name", line)
		}
		plan.Specs = append(plan.Specs, spec)
	}
	if len(plan.Specs) == 0 {
		return Plan{}, types.Errorf(types.KindMalformedRange, "", "no page ranges given (expected lines like \"1-3: part1.pdf\")")
	}
	return plan, nil
}

// PairRanges pairs each comma-separated part of ranges with the filename at
// the same position: "1-3,7" with [part1.pdf part2.pdf] gives two outputs.
// When names is empty the outputs are named part1.pdf, part2.pdf, ...
func PairRanges(ranges string, names []string) ([]types.SplitSpec, error) {
	if strings.TrimSpace(ranges) == "" {
		return nil, types.Errorf(types.KindMalformedRange, ranges, "empty page range")
	}
	parts := strings.Split(ranges, ",")
	if len(names) > 0 && len(names) != len(parts) {
		return nil, types.Errorf(types.KindMalformedRange, ranges,
			"%d page ranges but %d file names", len(parts), len(names))
	}
	specs := make([]types.SplitSpec, len(parts))
	for i, p := range parts {
		name := fmt.Sprintf("part%d.pdf", i+1)
		if len(names) > 0 {
			name = strings.TrimSpace(names[i])
		}
		specs[i] = types.SplitSpec{Pages: strings.TrimSpace(p), Filename: name}
	}
	return specs, nil
}

// planFile is the YAML layout of a plan file:
//
//	outputs:
//	  - pages: "1-3"
//	    filename: part1.pdf
type planFile struct {
	Outputs []types.SplitSpec `yaml:"outputs"`
}

// LoadPlanFile reads a YAML plan from path.
func LoadPlanFile(path string) ([]types.SplitSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}
	var pf planFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, types.Errorf(types.KindMalformedRange, path, "plan %s is not valid YAML: %v", path, err)
	}
	if len(pf.Outputs) == 0 {
		return nil, types.Errorf(types.KindMalformedRange, path, "plan %s lists no outputs", path)
	}
	return pf.Outputs, nil
}
