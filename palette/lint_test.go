package palette

import (
	"testing"

	"github.com/meikuraledutech/flow"
	"github.com/stretchr/testify/assert"
)

func TestLint(t *testing.T) {
	tests := []struct {
		name     string
		template flow.Template
		findings int
	}{
		{
			name: "matching condition",
			template: flow.Template{ID: "if", Category: flow.CategoryCondition,
				OutputPorts: []flow.PortDecl{{Name: "true"}, {Name: "false"}}},
		},
		{
			name: "gate with domain ports",
			template: flow.Template{ID: "approval", Category: flow.CategoryGate,
				OutputPorts: []flow.PortDecl{{Name: "approved"}, {Name: "rejected"}}},
			findings: 4,
		},
		{
			name: "trigger declaring inputs",
			template: flow.Template{ID: "t", Category: flow.CategoryTrigger,
				InputPorts: []flow.PortDecl{{Name: "input"}}},
			findings: 1,
		},
		{
			name: "terminal declaring outputs",
			template: flow.Template{ID: "end", Category: flow.CategoryTerminal,
				OutputPorts: []flow.PortDecl{{Name: "output"}}},
			findings: 1,
		},
		{
			name:     "no declarations",
			template: flow.Template{ID: "bare", Category: flow.CategoryAction},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Lint(tt.template), tt.findings)
		})
	}
}
