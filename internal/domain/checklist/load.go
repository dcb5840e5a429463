package checklist

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Items []Item `yaml:"items"`
}

// LoadCatalog reads a YAML checklist file of the form `items: [...]`.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCatalog(f)
}

// DecodeCatalog decodes a YAML checklist from r.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var doc catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode checklist: %w", err)
	}
	for i := range doc.Items {
		if doc.Items[i].Source == "" {
			doc.Items[i].Source = SourceEvidencePool
		}
		switch doc.Items[i].Source {
		case SourceEvidencePool, SourceCodeRepository:
		default:
			return nil, fmt.Errorf("checklist item %d: unknown source %q", i+1, doc.Items[i].Source)
		}
	}
	return NewCatalog(doc.Items)
}

// EncodeCatalog writes items as a YAML checklist document.
func EncodeCatalog(w io.Writer, items []Item) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Items: items}); err != nil {
		return err
	}
	return enc.Close()
}
