package memory

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

//go:embed sample_corpus.yaml
var sampleCorpus []byte

// Corpus is the on-disk YAML format for documents and their taxonomy.
type Corpus struct {
	Categories []domain.Category `yaml:"categories"`
	Documents  []domain.Document `yaml:"documents"`
}

// ParseCorpus decodes a YAML corpus and validates it.
func ParseCorpus(data []byte) (*Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding corpus: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCorpus reads and decodes a YAML corpus file.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	c, err := ParseCorpus(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// SampleCorpus returns the built-in demo corpus.
func SampleCorpus() *Corpus {
	c, err := ParseCorpus(sampleCorpus)
	if err != nil {
		panic(fmt.Sprintf("memory: embedded sample corpus is invalid: %v", err))
	}
	return c
}

// Validate checks that every document has an id and ids are unique.
func (c *Corpus) Validate() error {
	seen := make(map[string]bool, len(c.Documents))
	for i, d := range c.Documents {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return fmt.Errorf("%w: document %d has no id", domain.ErrInvalidInput, i)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate document id %q", domain.ErrInvalidInput, id)
		}
		seen[id] = true
	}
	return nil
}
