package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/m3rciful/specialtybot/core/logger"
)

// Format identifies the encoding of a content source.
type Format string

const (
	// FormatJSON decodes the source with encoding/json.
	FormatJSON Format = "json"
	// FormatYAML decodes the source with gopkg.in/yaml.v3.
	FormatYAML Format = "yaml"
)

// ErrInvalid marks a source that decoded but violates the schema.
var ErrInvalid = errors.New("content: invalid source")

// FormatFromPath picks the decoder by file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, decodes and validates the content file at path.
func Load(path string) (*Content, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	c, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}

	courses := 0
	for _, sem := range c.Curriculum {
		courses += len(sem.Courses)
	}
	logger.Info(context.Background(), "content", "content.loaded",
		slog.String("status", "ok"),
		slog.String("path", path),
		slog.Int("semesters", len(c.Curriculum)),
		slog.Int("count", courses),
		slog.Duration("duration", time.Since(start)),
	)
	return c, nil
}

// Parse decodes data in the given format and validates the resulting tree.
func Parse(data []byte, format Format) (*Content, error) {
	var c Content
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported content format %q", format)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field constraints and that every semester key exists.
func Validate(c *Content) error {
	if c == nil {
		return fmt.Errorf("%w: nil content", ErrInvalid)
	}
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var missing []string
	for n := 1; n <= SemesterCount; n++ {
		if _, ok := c.Curriculum[SemesterKey(n)]; !ok {
			missing = append(missing, SemesterKey(n))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: curriculum is missing %s", ErrInvalid, strings.Join(missing, ", "))
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Report source keys (json tag) instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}
