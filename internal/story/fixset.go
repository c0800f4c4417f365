package story

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/B16B1RD/cc-xp-kit/internal/criteria"
)

// StoryFix holds the fixes for the first story.
type StoryFix struct {
	MissingFeatures []string `json:"missingFeatures,omitempty"`
}

// FixSet describes what to inject into a stories document.
//
// The JSON form is:
//
//	{
//	  "story1": {"missingFeatures": ["..."]},
//	  "acceptanceCriteria": [{"given": "...", "when": "...", "then": "..."}],
//	  "implementationOrder": ["..."]
//	}
//
// Every key is optional.
type FixSet struct {
	Story1              *StoryFix            `json:"story1,omitempty"`
	AcceptanceCriteria  []criteria.Criterion `json:"acceptanceCriteria,omitempty"`
	ImplementationOrder []string             `json:"implementationOrder,omitempty"`
}

// Features returns the features to inject, or nil.
func (f *FixSet) Features() []string {
	if f == nil || f.Story1 == nil {
		return nil
	}
	return f.Story1.MissingFeatures
}

// StandardFixSet returns the built-in MVP fix set used when no fix
// configuration is supplied.
func StandardFixSet() *FixSet {
	return &FixSet{
		Story1: &StoryFix{
			MissingFeatures: []string{
				"ハードドロップ機能（スペースキー）",
				"7-bag randomizer（公平な出現システム）",
				"レベル・速度システム（段階的難易度上昇）",
				"SRS回転システム（現代標準）",
			},
		},
		AcceptanceCriteria: []criteria.Criterion{
			{Given: "GIVEN 5分間プレイ", When: "WHEN 集中してプレイ", Then: "THEN 適度な緊張感と達成感が得られる"},
			{Given: "GIVEN ハードドロップ使用", When: "WHEN スペース押下", Then: "THEN 瞬間的にピース配置できる"},
			{Given: "GIVEN レベル上昇", When: "WHEN 時間経過", Then: "THEN 落下速度が段階的に上昇する"},
		},
		ImplementationOrder: []string{
			"基本移動・回転システム",
			"ハードドロップ機能",
			"レベル・速度システム",
			"ライン消去システム",
			"7-bag randomizer",
			"SRS回転システム",
		},
	}
}

// ConfigParseError reports a malformed fix configuration file.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("invalid fix config %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message shown to the user.
func (e *ConfigParseError) UserMessage() string {
	return fmt.Sprintf("Could not parse fix config %s: %v\nExpected keys: story1.missingFeatures, acceptanceCriteria, implementationOrder", e.Path, e.Err)
}

// LoadFixSet reads and parses a fix configuration file.
//
// Parameters:
//   - path: Path to the JSON file
//
// Returns:
//   - *FixSet: The parsed fix set
//   - error: A read error, or *ConfigParseError for malformed content
func LoadFixSet(path string) (*FixSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fix config: %w", err)
	}

	fs, err := ParseFixSet(data)
	if err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}
	return fs, nil
}

// ParseFixSet decodes the JSON form of a FixSet, checking the type of every
// known key. Unknown keys are ignored.
func ParseFixSet(data []byte) (*FixSet, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("top-level value must be an object")
	}

	fs := &FixSet{}

	if story1 := root.Get("story1"); story1.Exists() {
		if !story1.IsObject() {
			return nil, errors.New("story1 must be an object")
		}
		features, err := stringArray(story1, "missingFeatures", "story1.missingFeatures")
		if err != nil {
			return nil, err
		}
		fs.Story1 = &StoryFix{MissingFeatures: features}
	}

	if ac := root.Get("acceptanceCriteria"); ac.Exists() {
		if !ac.IsArray() {
			return nil, errors.New("acceptanceCriteria must be an array")
		}
		for i, item := range ac.Array() {
			if !item.IsObject() {
				return nil, fmt.Errorf("acceptanceCriteria[%d] must be an object", i)
			}
			var c criteria.Criterion
			for _, field := range []struct {
				key string
				dst *string
			}{{"given", &c.Given}, {"when", &c.When}, {"then", &c.Then}} {
				v := item.Get(field.key)
				if v.Type != gjson.String {
					return nil, fmt.Errorf("acceptanceCriteria[%d].%s must be a string", i, field.key)
				}
				*field.dst = v.String()
			}
			fs.AcceptanceCriteria = append(fs.AcceptanceCriteria, c)
		}
	}

	order, err := stringArray(root, "implementationOrder", "implementationOrder")
	if err != nil {
		return nil, err
	}
	fs.ImplementationOrder = order

	return fs, nil
}

// stringArray reads an optional array of strings at key.
func stringArray(parent gjson.Result, key, label string) ([]string, error) {
	v := parent.Get(key)
	if !v.Exists() {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("%s must be an array", label)
	}
	var out []string
	for i, item := range v.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%s[%d] must be a string", label, i)
		}
		out = append(out, item.String())
	}
	return out, nil
}

// JSON encodes the fix set in its configuration file form, indented.
func (f *FixSet) JSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error

	if features := f.Features(); len(features) > 0 {
		if out, err = sjson.SetBytes(out, "story1.missingFeatures", features); err != nil {
			return nil, fmt.Errorf("failed to encode features: %w", err)
		}
	}
	if len(f.AcceptanceCriteria) > 0 {
		if out, err = sjson.SetBytes(out, "acceptanceCriteria", f.AcceptanceCriteria); err != nil {
			return nil, fmt.Errorf("failed to encode acceptance criteria: %w", err)
		}
	}
	if len(f.ImplementationOrder) > 0 {
		if out, err = sjson.SetBytes(out, "implementationOrder", f.ImplementationOrder); err != nil {
			return nil, fmt.Errorf("failed to encode implementation order: %w", err)
		}
	}

	return []byte(gjson.GetBytes(out, "@pretty").Raw), nil
}
