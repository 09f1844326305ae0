package planner

import (
	"encoding/json"
	"fmt"
)

const schemaDescription = `The workflow JSON must conform to this schema:

{
  "id": "string — unique workflow identifier (kebab-case)",
  "name": "string — human-readable name",
  "description": "string — what this workflow accomplishes",
  "team": "string — team whose knowledge base was used",
  "nodes": [
    {
      "id": "string — unique node ID (snake_case)",
      "name": "string — display name",
      "description": "string — what this step does",
      "service": "string — a service tag available in this run's catalog",
      "action": "string — an action registered on that service",
      "actor": "string — responsible role, e.g. hr_manager, it_admin, team_lead",
      "parameters": [
        {
          "name": "string — parameter name matching the action's argument",
          "value": "any — literal, or {{param_name}} / {{node_id.output_key}} template",
          "description": "string",
          "required": true
        }
      ],
      "depends_on": ["node ids this step depends on"],
      "outputs": {"output_name": "description of what this output contains"}
    }
  ],
  "edges": [{"source": "node_id", "target": "node_id"}],
  "parameters": {"global_param": "literal value"},
  "version": 1
}`

const generateSystemPromptTemplate = `You are the Orcheo planning agent: you design workflow automations as structured JSON DAGs.

## Your task
1. Use search_knowledge_base to find relevant policies, roles, and procedures for the request.
2. Use search_catalog to discover which services and actions are available.
3. Design a workflow as a structured JSON DAG based on what you learned.
4. Write the workflow JSON to %s using write_file.
5. Review: verify all required policy steps are included, dependencies are correct, actors match.

## Workflow JSON format
%s

## Rules
- Every node must specify a service, action, actor, and parameters.
- Dependencies must reflect the policy (e.g. a Google account depends on the HR record existing).
- Use search_knowledge_base to find which steps are required by policy.
- Use search_catalog to find the correct service, action, and parameter names for each step.
- Use {{param_name}} for global parameters and {{node_id.output_key}} for upstream outputs.
- The edges array must mirror the depends_on relationships exactly.`

const modifySystemPromptTemplate = `You are the Orcheo planning agent. A team wants to customize an existing workflow.

## Current workflow
%s

## Workflow JSON format
%s

## Instructions
Modify the workflow based on the user's request. You may add nodes, remove nodes (rewiring the
depends_on of anything downstream of them), change parameters, swap a service, or change an actor.
Use search_catalog to discover available actions if you add new steps, and search_knowledge_base
to verify policy compliance.

Write the updated workflow JSON back to %s using write_file.

## Rules
- Maintain valid dependency chains: if you remove a node, update the depends_on of nodes that relied on it.
- The edges array must mirror the depends_on relationships exactly.`

const repairSystemPromptTemplate = `You are the Orcheo planning agent, now fixing a workflow JSON file.

You will be given either a parse/schema error or an execution report showing which nodes failed
and why. Read the existing %s, diagnose the issue, fix it, and write the corrected file back.

%s

## Rules
- Only modify what is necessary to fix the reported failures.
- Use search_catalog to verify correct service actions and parameter names.
- Ensure all node dependencies remain valid and the edges array still mirrors depends_on.`

// draftPrompts builds the system/user prompt pair for the loop's initial
// DRAFTING turn, branching on whether req carries an existing workflow to
// modify.
func draftPrompts(req Request, workspaceRoot string) (system, user string) {
	artifactPath := workspaceRoot + "/" + workflowArtifactName
	team := req.Team
	if team == "" {
		team = "default"
	}

	if req.Existing != nil {
		existingJSON, _ := json.MarshalIndent(req.Existing, "", "  ")
		system = fmt.Sprintf(modifySystemPromptTemplate, string(existingJSON), schemaDescription, workflowArtifactName)
		user = fmt.Sprintf("Your workspace directory is: %s\nWrite all files there using absolute paths (e.g. %s).\n"+
			"Use team %q's knowledge base for policy lookups.\n\n"+
			"Modify the existing workflow based on the following request:\n\n%s%s",
			workspaceRoot, artifactPath, team, req.Description, contextBlock(req.Context))
		return system, user
	}

	system = fmt.Sprintf(generateSystemPromptTemplate, workflowArtifactName, schemaDescription)
	user = fmt.Sprintf("Your workspace directory is: %s\nWrite all files there using absolute paths (e.g. %s).\n"+
		"Use team %q's knowledge base for policy lookups.\n\n"+
		"Design a workflow DAG for the following request:\n\n%s%s",
		workspaceRoot, artifactPath, team, req.Description, contextBlock(req.Context))
	return system, user
}

// repairSystemPrompt builds the fixed system prompt used for every
// REPAIRING turn, independent of whether the repair was triggered by a
// parse error or an execution failure.
func repairSystemPrompt() string {
	return fmt.Sprintf(repairSystemPromptTemplate, workflowArtifactName, schemaDescription)
}

func contextBlock(context map[string]string) string {
	if len(context) == 0 {
		return ""
	}
	block := "\n\nAdditional context:\n"
	for key, value := range context {
		block += fmt.Sprintf("- %s: %s\n", key, value)
	}
	return block
}
