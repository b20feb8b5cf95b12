package swagger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Syncer keeps a Swagger document's YAML and JSON renditions in step.
// The source of truth is whichever file the caller names as source;
// format is decided by file extension.
type Syncer struct {
	logger *logrus.Logger
}

// NewSyncer creates a syncer.
func NewSyncer(logger *logrus.Logger) *Syncer {
	return &Syncer{logger: logger}
}

// Load reads a Swagger document, parsing by extension.
func (s *Syncer) Load(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := make(map[string]interface{})
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("malformed YAML in %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("malformed JSON in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported swagger document extension: %s", ext)
	}
	return doc, nil
}

// Save writes a Swagger document, serializing by extension.
func (s *Syncer) Save(path string, doc map[string]interface{}) error {
	var (
		raw []byte
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(doc)
	case ".json":
		raw, err = json.MarshalIndent(doc, "", "  ")
	default:
		return fmt.Errorf("unsupported swagger document extension: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", path, err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Sync rewrites target from source.
func (s *Syncer) Sync(source, target string) error {
	doc, err := s.Load(source)
	if err != nil {
		return err
	}

	if err := s.Save(target, doc); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"source": source,
		"target": target,
	}).Info("Synchronized swagger documents")
	return nil
}

// Check compares source and target and returns the paths whose values
// differ, without writing anything. A missing target counts as fully
// out of sync.
func (s *Syncer) Check(source, target string) ([]string, error) {
	src, err := s.Load(source)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(target); os.IsNotExist(err) {
		return []string{"<target missing>"}, nil
	}

	dst, err := s.Load(target)
	if err != nil {
		return nil, err
	}

	var diffs []string
	diffValues("", normalize(src), normalize(dst), &diffs)
	sort.Strings(diffs)
	return diffs, nil
}

// diffValues walks both documents and records the path of every
// mismatch. Values are pre-normalized so a YAML int and a JSON float
// of equal magnitude do not register as a difference.
func diffValues(path string, a, b interface{}, diffs *[]string) {
	am, aok := a.(map[string]interface{})
	bm, bok := b.(map[string]interface{})
	if aok && bok {
		keys := make(map[string]struct{}, len(am)+len(bm))
		for k := range am {
			keys[k] = struct{}{}
		}
		for k := range bm {
			keys[k] = struct{}{}
		}
		for k := range keys {
			child := k
			if path != "" {
				child = path + "." + k
			}
			av, aHas := am[k]
			bv, bHas := bm[k]
			if !aHas || !bHas {
				*diffs = append(*diffs, child)
				continue
			}
			diffValues(child, av, bv, diffs)
		}
		return
	}

	as, aok := a.([]interface{})
	bs, bok := b.([]interface{})
	if aok && bok {
		if len(as) != len(bs) {
			*diffs = append(*diffs, path)
			return
		}
		for i := range as {
			diffValues(fmt.Sprintf("%s[%d]", path, i), as[i], bs[i], diffs)
		}
		return
	}

	if fmt.Sprintf("%v", a) != fmt.Sprintf("%v", b) {
		*diffs = append(*diffs, path)
	}
}

// normalize converts numbers to float64 and rebuilds containers so
// documents parsed from different formats compare structurally.
func normalize(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, item := range value {
			out[k] = normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(value))
		for i, item := range value {
			out[i] = normalize(item)
		}
		return out
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case uint64:
		return float64(value)
	case float32:
		return float64(value)
	default:
		return value
	}
}
