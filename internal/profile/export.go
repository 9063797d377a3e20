package profile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// exportDoc is the YAML document shape for profile export files.
type exportDoc struct {
	Profiles []Profile `yaml:"profiles"`
}

// ExportYAML serializes profiles for sharing. Credentials are written
// verbatim; the export file is as sensitive as the store itself.
func ExportYAML(profiles []Profile) ([]byte, error) {
	data, err := yaml.Marshal(&exportDoc{Profiles: profiles})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profiles: %w", err)
	}
	return data, nil
}

// ImportYAML parses an export file back into profiles. Imported profiles
// keep their ids, so re-importing an export updates rather than duplicates.
func ImportYAML(data []byte) ([]Profile, error) {
	var doc exportDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	return doc.Profiles, nil
}
