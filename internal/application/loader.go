package application

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

// evaluationFile is the on-disk shape of an evaluation configuration.
type evaluationFile struct {
	Evaluation domain.Evaluation `yaml:"evaluation"`
}

// EvaluationLoader parses evaluation configurations from YAML and validates
// them before they are handed to the engine. Loading fails closed: a file
// that parses but does not validate is not returned.
type EvaluationLoader struct {
	validator *ConfigValidator
}

// NewEvaluationLoader creates a loader with a fresh configuration validator.
func NewEvaluationLoader() *EvaluationLoader {
	return &EvaluationLoader{validator: NewConfigValidator()}
}

// LoadFromFile reads and validates an evaluation configuration from path.
func (l *EvaluationLoader) LoadFromFile(path string) (*domain.Evaluation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open evaluation file: %w", err)
	}
	defer f.Close()

	eval, err := l.LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return eval, nil
}

// LoadFromReader parses an evaluation configuration from r. Unknown fields
// are rejected so typos surface as parse errors instead of silently dropped
// configuration.
func (l *EvaluationLoader) LoadFromReader(r io.Reader) (*domain.Evaluation, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file evaluationFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation YAML: %w", err)
	}

	eval := file.Evaluation
	applyDefaults(&eval)

	if err := l.validator.Validate(&eval).Err(); err != nil {
		return nil, err
	}
	return &eval, nil
}

// applyDefaults fills omitted optional configuration. A zero-valued scale
// means the file left it out entirely, not a degenerate [0, 0] scale.
func applyDefaults(eval *domain.Evaluation) {
	if eval.Scale == (domain.Scale{}) {
		eval.Scale = domain.DefaultScale()
	}
	if eval.Method == "" {
		eval.Method = domain.MethodSimpleAverage
	}
}
