package course

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-course/internal/validation"
)

type manifestDocument struct {
	Modules []Module `json:"modules"`
}

// topicDocument is the decoded form of a topic file. Title is read but the
// lesson title is always composed from the manifest.
type topicDocument struct {
	Title  string `json:"title,omitempty" yaml:"title"`
	Theory string `json:"theory,omitempty" yaml:"theory"`
	Tasks  []Task `json:"tasks,omitempty" yaml:"tasks"`
}

func decodeManifest(data []byte) (manifestDocument, error) {
	var doc manifestDocument
	if err := validation.ValidateManifest(data); err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// decodeTopic picks the decoder from the file extension. Markdown topics
// carry title and tasks in YAML front matter and use the body as theory.
func decodeTopic(name string, data []byte) (topicDocument, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return decodeMarkdownTopic(data)
	default:
		return decodeJSONTopic(data)
	}
}

func decodeJSONTopic(data []byte) (topicDocument, error) {
	var doc topicDocument
	if err := validation.ValidateTopic(data); err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func decodeMarkdownTopic(data []byte) (topicDocument, error) {
	var doc topicDocument
	body, err := frontmatter.Parse(bytes.NewReader(data), &doc)
	if err != nil {
		return doc, fmt.Errorf("front matter: %w", err)
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		doc.Theory = trimmed
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return doc, err
	}
	if err := validation.ValidateTopic(encoded); err != nil {
		return doc, err
	}
	return doc, nil
}

// documentName converts a manifest path into an fs.FS name. Leading "./" is
// dropped and separators are normalised; rooted or escaping paths are
// rejected.
func documentName(p string) (string, error) {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	cleaned := path.Clean(filepath.ToSlash(trimmed))
	if !fs.ValidPath(cleaned) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return cleaned, nil
}
