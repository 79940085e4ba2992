package ops

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultCandidates is the built-in suggestion list, replaceable via a YAML
// file at startup.
var defaultCandidates = []string{
	"Write a blog post about",
	"Summarize this article",
	"Explain like I'm five",
	"Generate test cases for",
	"Translate this document",
	"Draft a product announcement",
	"Review this code snippet",
	"Brainstorm marketing slogans",
	"Outline a presentation on",
	"Rewrite in a formal tone",
}

type candidateFile struct {
	Suggestions []string `yaml:"suggestions"`
}

// LoadCandidates reads a suggestion candidate list from a YAML file.
func LoadCandidates(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestions file: %w", err)
	}

	var f candidateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions file: %w", err)
	}
	if len(f.Suggestions) == 0 {
		return nil, fmt.Errorf("suggestions file %s contains no entries", path)
	}

	return f.Suggestions, nil
}
