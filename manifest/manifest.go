// Package manifest loads batch merge jobs from YAML files, so a whole
// concatenation can be described declaratively and replayed.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wudi/pdfconcat/merge"
)

// Document is one source entry in a manifest.
type Document struct {
	Path string `yaml:"path"`
	// Pages is a pagerange expression or "all". Empty means all.
	Pages string `yaml:"pages,omitempty"`
	// Orientation forces the orientation of every page from this document.
	// Empty means auto.
	Orientation string `yaml:"orientation,omitempty"`
}

// Manifest describes one merge job: the output file and the ordered source
// documents.
type Manifest struct {
	Output string `yaml:"output"`
	// Orientation is the merge-wide orientation override. Empty means auto.
	Orientation string     `yaml:"orientation,omitempty"`
	Documents   []Document `yaml:"documents"`
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decoding %s: %w", path, err)
	}
	if m.Output == "" {
		return nil, fmt.Errorf("manifest: %s has no output", path)
	}
	if len(m.Documents) == 0 {
		return nil, fmt.Errorf("manifest: %s lists no documents", path)
	}
	for i, d := range m.Documents {
		if d.Path == "" {
			return nil, fmt.Errorf("manifest: %s: document %d has no path", path, i+1)
		}
	}
	return &m, nil
}

// GlobalOrientation returns the manifest's merge-wide orientation override.
func (m *Manifest) GlobalOrientation() (merge.Orientation, error) {
	return merge.ParseOrientation(m.Orientation)
}

// Apply registers every manifest document on mg in file order.
func (m *Manifest) Apply(mg *merge.Merger) error {
	for _, d := range m.Documents {
		var opts []merge.DocumentOption
		if d.Pages != "" {
			opts = append(opts, merge.WithPages(d.Pages))
		}
		if d.Orientation != "" {
			o, err := merge.ParseOrientation(d.Orientation)
			if err != nil {
				return fmt.Errorf("manifest: document %s: %w", d.Path, err)
			}
			opts = append(opts, merge.WithOrientation(o))
		}
		if _, err := mg.AddDocument(d.Path, opts...); err != nil {
			return err
		}
	}
	return nil
}
