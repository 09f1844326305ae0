package trace

import (
	"fmt"
	"strings"
)

// Report summarizes one workflow execution run: counts, the full trace, and
// any dependency-violation messages surfaced by precondition failures.
type Report struct {
	WorkflowID          string   `json:"workflow_id"`
	WorkflowName        string   `json:"workflow_name"`
	TotalSteps          int      `json:"total_steps"`
	Successful          int      `json:"successful"`
	Failed              int      `json:"failed"`
	Skipped             int      `json:"skipped"`
	Trace               *Trace   `json:"trace"`
	DependencyViolations []string `json:"dependency_violations"`
}

var statusIcon = map[Status]string{
	StatusSuccess: "OK",
	StatusFailed:  "FAIL",
	StatusSkipped: "SKIP",
}

// ToMarkdown renders a human-readable report: header counts, an optional
// dependency-violations section, and a table of every trace step.
func (r *Report) ToMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Execution Report: %s\n\n", r.WorkflowName)
	fmt.Fprintf(&b, "**Workflow ID:** `%s`\n", r.WorkflowID)
	fmt.Fprintf(&b, "**Total steps:** %d\n", r.TotalSteps)
	fmt.Fprintf(&b, "**Successful:** %d\n", r.Successful)
	fmt.Fprintf(&b, "**Failed:** %d\n", r.Failed)
	fmt.Fprintf(&b, "**Skipped:** %d\n\n", r.Skipped)

	if len(r.DependencyViolations) > 0 {
		b.WriteString("## Dependency Violations\n")
		for _, v := range r.DependencyViolations {
			fmt.Fprintf(&b, "- %s\n", v)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Execution Trace\n\n")
	b.WriteString("| # | Node | Service | Action | Status | Detail |\n")
	b.WriteString("|---|------|---------|--------|--------|--------|\n")

	if r.Trace != nil {
		for i, step := range r.Trace.Steps {
			detail := ""
			switch {
			case step.Status == StatusSuccess && step.Result != nil:
				detail = summarizeResult(step.Result)
			case step.Error != "":
				detail = step.Error
			}

			icon, ok := statusIcon[step.Status]
			if !ok {
				icon = string(step.Status)
			}
			fmt.Fprintf(&b, "| %d | `%s` | %s | %s | %s | %s |\n",
				i+1, step.NodeID, step.Service, step.Action, icon, detail)
		}
	}
	b.WriteString("\n")

	if r.Trace != nil && r.Trace.CompletedAt != nil {
		duration := r.Trace.CompletedAt.Sub(r.Trace.StartedAt).Seconds()
		fmt.Fprintf(&b, "**Duration:** %.2fs\n", duration)
	}

	return b.String()
}

// summarizeResult renders a compact "key=value, ..." summary, omitting the
// status key already reflected by the table's Status column.
func summarizeResult(result map[string]interface{}) string {
	keys := make([]string, 0, len(result))
	for k := range result {
		if k == "status" {
			continue
		}
		keys = append(keys, k)
	}
	// deterministic ordering for reproducible reports
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, result[k]))
	}
	return strings.Join(pairs, ", ")
}
