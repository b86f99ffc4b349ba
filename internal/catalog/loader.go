package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/vitalplan-backend/internal/types"
)

// LoadCatalog reads a routine catalog snapshot (YAML or JSON by extension)
// into typed routines. The untyped record is kept on Routine.Raw so rule
// actions can resolve arbitrary dot-paths against it.
func LoadCatalog(path string) ([]*types.Routine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

func ParseCatalog(data []byte, ext string) ([]*types.Routine, error) {
	var records []map[string]interface{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
	}
	routines := make([]*types.Routine, 0, len(records))
	for i, record := range records {
		routine, err := routineFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("catalog record %d: %w", i, err)
		}
		routines = append(routines, routine)
	}
	return routines, nil
}

// LoadRuleSet reads the external JSON rule document.
func LoadRuleSet(path string) (*types.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set: %w", err)
	}
	return types.ParseRuleSet(data)
}

func routineFromRecord(record map[string]interface{}) (*types.Routine, error) {
	id := intField(record, "id")
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	routine := &types.Routine{
		ID:               id,
		UniqueID:         intField(record, "uniqueId"),
		Name:             stringField(record, "name"),
		Pillar:           types.Pillar(stringField(record, "pillar")),
		MuscleGroups:     stringField(record, "muscleGroups"),
		MovementType:     stringField(record, "movementType"),
		ScheduleCategory: types.ScheduleCategory(stringField(record, "scheduleCategory")),
		Duration:         floatField(record, "durationCalculated"),
		Amount:           floatField(record, "amount"),
		Unit:             stringField(record, "unit"),
		Sets:             intField(record, "sets"),
		Equipment:        stringField(record, "equipment"),
		DisplayForOrder:  stringField(record, "displayForOrder"),
		Order:            intField(record, "order"),
		Variation:        stringField(record, "variation"),
		PackageTags:      stringListField(record, "packageTags"),
	}
	routine.Tags = tagListField(record, "tags")

	// Normalize the tag list in the raw record so "tags.tag" fan-out works
	// whether the snapshot used tag objects or plain strings.
	normalized := make([]interface{}, 0, len(routine.Tags))
	for _, tag := range routine.Tags {
		normalized = append(normalized, map[string]interface{}{"tag": tag.Tag})
	}
	record["tags"] = normalized
	routine.Raw = record
	return routine, nil
}

func stringField(record map[string]interface{}, key string) string {
	if v, ok := record[key].(string); ok {
		return v
	}
	return ""
}

func intField(record map[string]interface{}, key string) int {
	switch v := record[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func floatField(record map[string]interface{}, key string) float64 {
	switch v := record[key].(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func stringListField(record map[string]interface{}, key string) []string {
	list, ok := record[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// tagListField accepts both tag-object lists and plain string lists.
func tagListField(record map[string]interface{}, key string) []types.Tag {
	list, ok := record[key].([]interface{})
	if !ok {
		return nil
	}
	var out []types.Tag
	for _, el := range list {
		switch t := el.(type) {
		case string:
			out = append(out, types.Tag{Tag: t})
		case map[string]interface{}:
			if s, ok := t["tag"].(string); ok {
				out = append(out, types.Tag{Tag: s})
			}
		}
	}
	return out
}
