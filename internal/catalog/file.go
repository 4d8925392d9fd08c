package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"outcomepicker/internal/domain"
)

// catalogFile accepts either a bare list of outcomes or {outcomes: [...]}
type catalogFile struct {
	Outcomes []domain.Outcome `json:"outcomes" yaml:"outcomes"`
}

// LoadFile reads outcomes from a .yaml/.yml or .json file. Outcomes without
// an id get a generated one; duplicate ids keep the last occurrence.
func LoadFile(path string) ([]domain.Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var outcomes []domain.Outcome
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		outcomes, err = decodeJSON(data)
	case ".yaml", ".yml":
		outcomes, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("read catalog file: unsupported extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	return dedupe(assignIDs(outcomes)), nil
}

func decodeJSON(data []byte) ([]domain.Outcome, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []domain.Outcome
		err := json.Unmarshal(data, &list)
		return list, err
	}
	var f catalogFile
	err := json.Unmarshal(data, &f)
	return f.Outcomes, err
}

func decodeYAML(data []byte) ([]domain.Outcome, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var list []domain.Outcome
		err := node.Decode(&list)
		return list, err
	}
	var f catalogFile
	err := node.Decode(&f)
	return f.Outcomes, err
}

func assignIDs(outcomes []domain.Outcome) []domain.Outcome {
	for i := range outcomes {
		outcomes[i].ID = strings.TrimSpace(outcomes[i].ID)
		if outcomes[i].ID == "" {
			outcomes[i].ID = uuid.NewString()
		}
	}
	return outcomes
}

func dedupe(outcomes []domain.Outcome) []domain.Outcome {
	index := make(map[string]int, len(outcomes))
	out := make([]domain.Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if i, ok := index[o.ID]; ok {
			out[i] = o
			continue
		}
		index[o.ID] = len(out)
		out = append(out, o)
	}
	return out
}
