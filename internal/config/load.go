// Package config loads the manifest and credentials files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadManifest reads and validates a manifest. JSON is the default format;
// files ending in .yaml or .yml are decoded as YAML. A missing file is
// reported as an error wrapping fs.ErrNotExist.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if err := decodeFile(path, &m); err != nil {
		return nil, err
	}

	if errs := ValidateManifest(&m); len(errs) > 0 {
		return nil, &ValidationError{File: path, Errors: errs}
	}

	return &m, nil
}

// LoadCredentials reads a credentials file. A missing file is reported as an
// error wrapping fs.ErrNotExist; callers decide whether that is fatal.
func LoadCredentials(path string) (Credentials, error) {
	var c Credentials
	if err := decodeFile(path, &c); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

func decodeFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, target)
	default:
		err = json.Unmarshal(data, target)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	File   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed:\n  - %s", e.File, strings.Join(e.Errors, "\n  - "))
}

// ValidateManifest checks a Manifest for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func ValidateManifest(m *Manifest) []string {
	var errs []string

	if err := newValidator().Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []string{err.Error()}
		}
		for _, e := range verrs {
			prefix := strings.TrimSuffix(strings.TrimPrefix(e.Namespace(), "Manifest."), "."+e.Field())
			if e.Tag() == "required" {
				errs = append(errs, fmt.Sprintf("%s: '%s' is required", prefix, e.Field()))
			} else {
				errs = append(errs, fmt.Sprintf("%s: '%s' failed '%s' validation", prefix, e.Field(), e.Tag()))
			}
		}
	}

	urls := make(map[string]int)
	var destinations []string
	for i, repo := range m.Repositories {
		prefix := fmt.Sprintf("repositories[%d]", i)
		if repo.URL != "" {
			if first, dup := urls[repo.URL]; dup {
				errs = append(errs, fmt.Sprintf("%s: duplicate url '%s' (first used by repositories[%d])", prefix, repo.URL, first))
			} else {
				urls[repo.URL] = i
			}
		}

		dest := ""
		if repo.Destination != "" {
			dest = filepath.Clean(repo.Destination)
			for j, other := range destinations {
				switch {
				case other == "":
				case dest == other:
					errs = append(errs, fmt.Sprintf("%s: destination '%s' is already used by repositories[%d]", prefix, repo.Destination, j))
				case nested(dest, other) || nested(other, dest):
					errs = append(errs, fmt.Sprintf("%s: destination '%s' overlaps '%s' used by repositories[%d]", prefix, repo.Destination, m.Repositories[j].Destination, j))
				}
			}
		}
		destinations = append(destinations, dest)
	}

	return errs
}

// nested reports whether the cleaned path inner lies below outer.
func nested(inner, outer string) bool {
	return strings.HasPrefix(inner, outer+string(filepath.Separator))
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Use JSON field names in error messages.
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}
