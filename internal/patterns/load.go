package patterns

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTable []byte

type fileSpec struct {
	ItemTypes     yaml.Node `yaml:"item_types"`
	BreakPatterns []string  `yaml:"break_patterns"`
	SkipPatterns  []string  `yaml:"skip_patterns"`
}

type ruleFile struct {
	Patterns     []string `yaml:"patterns"`
	SpeakerRE    bool     `yaml:"speaker_re"`
	SpeakerGroup any      `yaml:"speaker_group"`
	Speaker      string   `yaml:"speaker"`
}

// Parse decodes a YAML pattern table. item_types is a mapping whose key
// order is the classification precedence, so it is walked as a raw node
// instead of being decoded into a Go map.
func Parse(data []byte) (Spec, error) {
	var f fileSpec
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Spec{}, fmt.Errorf("decode pattern table: %w", err)
	}
	node := &f.ItemTypes
	if node.Kind == 0 {
		return Spec{}, ErrNoKinds
	}
	if node.Kind != yaml.MappingNode {
		return Spec{}, fmt.Errorf("item_types: expected a mapping at line %d", node.Line)
	}
	spec := Spec{
		BreakPatterns: f.BreakPatterns,
		SkipPatterns:  f.SkipPatterns,
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var rf ruleFile
		if err := val.Decode(&rf); err != nil {
			return Spec{}, fmt.Errorf("item_types.%s: %w", key.Value, err)
		}
		rs := RuleSpec{
			Kind:      key.Value,
			Patterns:  rf.Patterns,
			SpeakerRE: rf.SpeakerRE,
			Speaker:   rf.Speaker,
		}
		if rf.SpeakerGroup != nil {
			rs.SpeakerGroup = fmt.Sprint(rf.SpeakerGroup)
		}
		spec.ItemTypes = append(spec.ItemTypes, rs)
	}
	return spec, nil
}

// Load reads and compiles a pattern table file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern table: %w", err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(spec)
}

// Default compiles the built-in Congressional Record table.
func Default() (*Table, error) {
	spec, err := Parse(defaultTable)
	if err != nil {
		return nil, err
	}
	return Compile(spec)
}

// LoadOrDefault loads path, or the built-in table when path is empty.
func LoadOrDefault(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}
