// Package schema provides CLI and document format schema generation.
package schema

// DocumentFormat describes the user stories document and the fix config for
// LLMs. It is appended to the LLM schema output.
const DocumentFormat = `# User Stories Document Format - LLM Reference

## Purpose
ccxp reads acceptance criteria from, and patches, a markdown user stories
document. The document is plain text; only the headings below are recognised.

## Recognised Sections

` + "```markdown" + `
## Story 1: <title>

### 📋 実装機能一覧
- feature

### 🎯 受け入れ基準
- [ ] GIVEN <precondition> WHEN <action> THEN <outcome>

### 🚀 実装順序
1. step

## Story 2: <title>
` + "```" + `

A section runs from its heading to the next heading starting with "###" or
"##". A section that is the last thing in the document is not patched, so keep
at least one heading after it.

## Acceptance Criteria Grammar

- Keywords GIVEN, WHEN and THEN are upper case and separated from the text by
  whitespace.
- The THEN text runs to the end of the line.
- Lines missing any keyword are ignored.

## Patches Applied by autofix

| Section | Marker | Effect |
|---------|--------|--------|
| 📋 実装機能一覧 | ` + "`**⚡ 追加された必須機能:**`" + ` | Appends the marker and the new features |
| 🎯 受け入れ基準 | any supplied GIVEN text, or 5分間プレイ | Appends one checklist line per criterion |
| 🚀 実装順序 | ` + "`**修正された実装順序:**`" + ` | Replaces the list with a new numbered list |

A patch whose marker is already present is skipped. After the patches a status
entry is appended once per UTC day:

` + "```markdown" + `
## 🔍 MVP検証状況 - 2026-01-31
**状態**: 修正済み - 再検証待ち
**メモ**: MVP検証失敗の自動修正完了

---
` + "```" + `

Before the first write of a run the document is copied to
` + "`<path>.backup.<epoch-ms>`" + `.

## Fix Config (JSON)

` + "```json" + `
{
  "story1": {"missingFeatures": ["..."]},
  "acceptanceCriteria": [{"given": "...", "when": "...", "then": "..."}],
  "implementationOrder": ["..."]
}
` + "```" + `

Every key is optional. Print the built-in set with ` + "`ccxp autofix --print-standard`" + `.
`
