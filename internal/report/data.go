package report

import (
	"fmt"
	"sort"
	"strings"
)

// Reserved top-level keys in the standard report data shape.
const (
	keyTitle       = "title"
	keySubtitle    = "subtitle"
	keyAuthor      = "author"
	keyTimestamp   = "timestamp"
	keySections    = "sections"
	keyName        = "name"
	keyValue       = "value"
	keyDescription = "description"
)

// sectionData is the decoded form of one entry under "sections".
type sectionData struct {
	Title       string
	Description string
	Metrics     []metricData
}

// metricData is one name/value row inside a section.
type metricData struct {
	Name        string
	Value       interface{}
	Description string
}

// stringAt reads a string value from a map, tolerating absence.
func stringAt(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// sectionsFromData decodes the "sections" entry of the report data.
// Sections arrive either as []map[string]interface{} built in-process
// or as []interface{} decoded from a JSON request body.
func sectionsFromData(data map[string]interface{}) []sectionData {
	raw, ok := data[keySections]
	if !ok {
		return nil
	}

	var items []interface{}
	switch v := raw.(type) {
	case []interface{}:
		items = v
	case []map[string]interface{}:
		items = make([]interface{}, len(v))
		for i := range v {
			items[i] = v[i]
		}
	default:
		return nil
	}

	sections := make([]sectionData, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		sections = append(sections, sectionData{
			Title:       stringAt(m, keyTitle),
			Description: stringAt(m, keyDescription),
			Metrics:     metricsFromValue(m["metrics"]),
		})
	}
	return sections
}

func metricsFromValue(raw interface{}) []metricData {
	var items []interface{}
	switch v := raw.(type) {
	case []interface{}:
		items = v
	case []map[string]interface{}:
		items = make([]interface{}, len(v))
		for i := range v {
			items[i] = v[i]
		}
	default:
		return nil
	}

	metrics := make([]metricData, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		metrics = append(metrics, metricData{
			Name:        stringAt(m, keyName),
			Value:       m[keyValue],
			Description: stringAt(m, keyDescription),
		})
	}
	return metrics
}

// scalarFields returns the non-reserved top-level entries of the data
// map as sorted key/value rows, for layouts that dump arbitrary
// request data.
func scalarFields(data map[string]interface{}) []metricData {
	reserved := map[string]bool{
		keyTitle: true, keySubtitle: true, keyAuthor: true,
		keyTimestamp: true, keySections: true,
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	rows := make([]metricData, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, metricData{Name: k, Value: data[k]})
	}
	return rows
}

// titleCase converts a snake_case key into a human-readable section
// or metric name.
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
