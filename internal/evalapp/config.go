package evalapp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// configFile mirrors the evaluation flags in YAML form. Scalar fields
// are pointers so an absent key never overrides a flag default; grid
// fields accept a scalar or a sequence.
type configFile struct {
	Output     *string  `yaml:"output"`
	Metrics    []string `yaml:"metrics"`
	SampleSize *int     `yaml:"sample_size"`
	Jobs       *int     `yaml:"jobs"`
	Unordered  *bool    `yaml:"unordered"`

	BaseSize    intList   `yaml:"base_size"`
	Depth       intList   `yaml:"depth"`
	PDup        floatList `yaml:"p_dup"`
	PDupLength  floatList `yaml:"p_dup_length"`
	PLoss       floatList `yaml:"p_loss"`
	PLossLength floatList `yaml:"p_loss_length"`
	PRearr      floatList `yaml:"p_rearr"`
}

func loadConfig(path string) (*configFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// intList decodes either a single YAML scalar or a sequence.
type intList []int

func (l *intList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v int
		if err := value.Decode(&v); err != nil {
			return err
		}
		*l = intList{v}
		return nil
	}
	var vs []int
	if err := value.Decode(&vs); err != nil {
		return err
	}
	*l = vs
	return nil
}

// floatList decodes either a single YAML scalar or a sequence.
type floatList []float64

func (l *floatList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		*l = floatList{v}
		return nil
	}
	var vs []float64
	if err := value.Decode(&vs); err != nil {
		return err
	}
	*l = vs
	return nil
}
