// Package skills embeds the agent skills installed by "ccxp skill install".
package skills

import (
	_ "embed"
)

const SkillFileName = "SKILL.md"

const (
	CCXPCLIName = "ccxp-cli"
	CCXPMCPName = "ccxp-mcp"
)

//go:embed ccxp-cli/SKILL.md
var CCXPCLIContent string

//go:embed ccxp-mcp/SKILL.md
var CCXPMCPContent string
