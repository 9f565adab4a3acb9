package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadYAML decodes the file at path into out. Unknown keys are rejected so a
// typo in a fixture fails loudly instead of seeding partial data.
func LoadYAML(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading yaml file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing yaml file %s: %w", path, err)
	}
	return nil
}
