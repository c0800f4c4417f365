// Package story patches markdown user-stories documents.
//
// The document is treated as opaque text. Each patch locates one named
// section with a regex spanning from its heading to the next heading and
// inserts content there, guarded by a marker string so that applying the
// same patch twice changes nothing. A missing section is not an error: the
// patch is skipped and reported as OutcomeSectionNotFound.
package story

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/B16B1RD/cc-xp-kit/internal/criteria"
)

// Section headings and markers recognised in a stories document.
const (
	FeatureSection  = "### 📋 実装機能一覧"
	CriteriaSection = "### 🎯 受け入れ基準"
	OrderSection    = "### 🚀 実装順序"

	FeatureMarker = "**⚡ 追加された必須機能:**"
	OrderMarker   = "**修正された実装順序:**"

	// CriteriaSentinel marks a document that already carries the standard
	// acceptance criteria.
	CriteriaSentinel = "5分間プレイ"

	// StatusHeadingPrefix starts every validation status entry. The date
	// (YYYY-MM-DD) follows it.
	StatusHeadingPrefix = "## 🔍 MVP検証状況 - "
)

// Outcome is the result of one patch operation.
type Outcome string

const (
	OutcomeApplied         Outcome = "applied"
	OutcomeAlreadyApplied  Outcome = "already-applied"
	OutcomeSectionNotFound Outcome = "section-not-found"
	OutcomeNoInput         Outcome = "no-input"
)

// Changed reports whether the operation modified the document.
func (o Outcome) Changed() bool {
	return o == OutcomeApplied
}

var (
	featureSectionPattern  = sectionPattern(FeatureSection)
	criteriaSectionPattern = sectionPattern(CriteriaSection)
	orderSectionPattern    = sectionPattern(OrderSection)
)

// sectionPattern matches from heading up to (capturing) the start of the
// next "### " or "##" heading. A section with no following heading does not
// match.
func sectionPattern(heading string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)(` + regexp.QuoteMeta(heading) + `.*?)(### |##)`)
}

// replaceSection rewrites the first match of re. build receives the section
// text (heading included) and the heading token that ends it.
func replaceSection(content string, re *regexp.Regexp, build func(section, next string) string) (string, bool) {
	loc := re.FindStringSubmatchIndex(content)
	if loc == nil {
		return content, false
	}
	section := content[loc[2]:loc[3]]
	next := content[loc[4]:loc[5]]
	return content[:loc[0]] + build(section, next) + content[loc[1]:], true
}

// InjectFeatures appends a marked list of features to the end of the
// feature-list section.
//
// Parameters:
//   - content: The document text
//   - features: Feature lines to add, without list bullets
//
// Returns:
//   - string: The patched document (content itself unless applied)
//   - Outcome: What happened
func InjectFeatures(content string, features []string) (string, Outcome) {
	if len(features) == 0 {
		return content, OutcomeNoInput
	}
	if strings.Contains(content, FeatureMarker) {
		log.Debug("Feature marker already present, skipping")
		return content, OutcomeAlreadyApplied
	}

	lines := make([]string, len(features))
	for i, f := range features {
		lines[i] = "  - " + f
	}

	out, ok := replaceSection(content, featureSectionPattern, func(section, next string) string {
		return section + "\n" + FeatureMarker + "\n" + strings.Join(lines, "\n") + "\n\n" + next
	})
	if !ok {
		log.Debug("Feature section not found", "heading", FeatureSection)
		return content, OutcomeSectionNotFound
	}
	return out, OutcomeApplied
}

// InjectCriteria appends one checklist line per criterion to the
// acceptance-criteria section.
//
// The criteria are applied as a unit: if any criterion's GIVEN text (or its
// rendered checklist line, or CriteriaSentinel) already appears in the
// document, nothing is added.
func InjectCriteria(content string, list []criteria.Criterion) (string, Outcome) {
	if len(list) == 0 {
		return content, OutcomeNoInput
	}
	if criteriaPresent(content, list) {
		log.Debug("Acceptance criteria already present, skipping")
		return content, OutcomeAlreadyApplied
	}

	out, ok := replaceSection(content, criteriaSectionPattern, func(section, next string) string {
		var b strings.Builder
		b.WriteString(section)
		b.WriteString("\n")
		for _, c := range list {
			b.WriteString(ChecklistLine(c))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(next)
		return b.String()
	})
	if !ok {
		log.Debug("Acceptance criteria section not found", "heading", CriteriaSection)
		return content, OutcomeSectionNotFound
	}
	return out, OutcomeApplied
}

func criteriaPresent(content string, list []criteria.Criterion) bool {
	if strings.Contains(content, CriteriaSentinel) {
		return true
	}
	for _, c := range list {
		if given := strings.TrimSpace(c.Given); given != "" && strings.Contains(content, given) {
			return true
		}
		if strings.Contains(content, ChecklistLine(c)) {
			return true
		}
	}
	return false
}

// ChecklistLine renders c as an unchecked markdown task. A part that already
// starts with its keyword does not get it twice.
func ChecklistLine(c criteria.Criterion) string {
	normalized := criteria.Criterion{
		Given: stripKeyword(c.Given, "GIVEN"),
		When:  stripKeyword(c.When, "WHEN"),
		Then:  stripKeyword(c.Then, "THEN"),
	}
	return "- [ ] " + normalized.String()
}

func stripKeyword(part, keyword string) string {
	part = strings.TrimSpace(part)
	if rest, ok := strings.CutPrefix(part, keyword); ok && (rest == "" || strings.TrimLeft(rest, " \t　") != rest) {
		return strings.TrimSpace(rest)
	}
	return part
}

// ReplaceImplementationOrder replaces the implementation-order section with
// a marked, freshly numbered list. Whatever list was there is discarded.
func ReplaceImplementationOrder(content string, steps []string) (string, Outcome) {
	if len(steps) == 0 {
		return content, OutcomeNoInput
	}
	if strings.Contains(content, OrderMarker) {
		log.Debug("Order marker already present, skipping")
		return content, OutcomeAlreadyApplied
	}

	out, ok := replaceSection(content, orderSectionPattern, func(_, next string) string {
		var b strings.Builder
		b.WriteString(OrderSection + "\n\n" + OrderMarker + "\n")
		for i, step := range steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		b.WriteString("\n")
		b.WriteString(next)
		return b.String()
	})
	if !ok {
		log.Debug("Implementation order section not found", "heading", OrderSection)
		return content, OutcomeSectionNotFound
	}
	return out, OutcomeApplied
}

// StatusHeading returns the validation status heading for the UTC calendar
// day of t.
func StatusHeading(t time.Time) string {
	return StatusHeadingPrefix + t.UTC().Format("2006-01-02")
}

// AppendValidationStatus appends a dated status entry to the end of the
// document. At most one entry is written per calendar day: if the day's
// heading already exists the document is returned unchanged.
//
// Parameters:
//   - content: The document text
//   - now: The instant whose UTC date labels the entry
//   - status: Status text
//   - notes: Optional notes; omitted from the entry when empty
//
// Returns:
//   - string: The patched document
//   - bool: True if an entry was appended
func AppendValidationStatus(content string, now time.Time, status, notes string) (string, bool) {
	heading := StatusHeading(now)
	if strings.Contains(content, heading) {
		log.Debug("Validation status already recorded today", "heading", heading)
		return content, false
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n" + heading + "\n")
	b.WriteString("**状態**: " + status + "\n")
	if notes != "" {
		b.WriteString("**メモ**: " + notes + "\n")
	}
	b.WriteString("\n---\n")
	return b.String(), true
}

// Report summarises one application of a FixSet.
type Report struct {
	Features Outcome `json:"features"`
	Criteria Outcome `json:"criteria"`
	Order    Outcome `json:"order"`

	// Changed is true when at least one patch was applied.
	Changed bool `json:"changed"`

	// BackupPath is the backup written before the document was modified,
	// empty when nothing was written.
	BackupPath string `json:"backup_path,omitempty"`
}

// Apply runs the three FixSet patches over content in order: features,
// acceptance criteria, implementation order.
func Apply(content string, fs *FixSet) (string, Report) {
	report := Report{
		Features: OutcomeNoInput,
		Criteria: OutcomeNoInput,
		Order:    OutcomeNoInput,
	}
	if fs == nil {
		return content, report
	}

	content, report.Features = InjectFeatures(content, fs.Features())
	content, report.Criteria = InjectCriteria(content, fs.AcceptanceCriteria)
	content, report.Order = ReplaceImplementationOrder(content, fs.ImplementationOrder)

	report.Changed = report.Features.Changed() || report.Criteria.Changed() || report.Order.Changed()
	return content, report
}
