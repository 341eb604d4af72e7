package palette

import (
	"fmt"

	"github.com/meikuraledutech/flow"
)

// Lint reports where a template's declared ports diverge from the ports its
// category classifies to. Divergence is tolerated by the engine; the findings
// are informational.
func Lint(t flow.Template) []string {
	classified := flow.ClassifyPorts(t.Category, t.AICapable)
	var findings []string

	if len(classified.Inputs) == 0 && len(t.InputPorts) > 0 {
		findings = append(findings, fmt.Sprintf("%s declares inputs but %s nodes have no input port", t.ID, t.Category))
	}
	if len(classified.Outputs) == 0 && len(t.OutputPorts) > 0 {
		findings = append(findings, fmt.Sprintf("%s declares outputs but %s nodes have no output port", t.ID, t.Category))
	}

	declared := make(map[string]bool, len(t.OutputPorts))
	for _, p := range t.OutputPorts {
		declared[p.Name] = true
		if len(classified.Outputs) > 0 && !classified.HasOutput(p.Name) {
			findings = append(findings, fmt.Sprintf("%s declares output %q not exposed by the canvas", t.ID, p.Name))
		}
	}
	if len(t.OutputPorts) > 0 {
		for _, p := range classified.Outputs {
			if !declared[p.Name] {
				findings = append(findings, fmt.Sprintf("%s does not declare classified output %q", t.ID, p.Name))
			}
		}
	}
	return findings
}
