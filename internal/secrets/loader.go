package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a sensitive or free-form input comes from: an
// account password, a job description, an email body.
type Source struct {
	// Name gives error messages context ("account password", "job description").
	Name string
	// Value is the inline value from a flag or the config file.
	Value string
	// File points to a file holding the value; it wins over Value when set.
	File string
}

// Load resolves the value from the source, file first, then inline. The
// result is trimmed; an empty result is an error.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
