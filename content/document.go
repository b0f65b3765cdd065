// Package content discovers numbered posts in a directory, orders them by
// their declared index and resolves each post together with its neighbors.
package content

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Metadata is the YAML block at the top of every post.
type Metadata struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle,omitempty"`
	// Index is nil when the block has no index key.
	Index *int `yaml:"index"`
	// Extra holds every other key, passed through to the views untouched.
	Extra map[string]any `yaml:",inline"`
}

// Validate reports whether the fields required for sequencing are present.
func (m Metadata) Validate() error {
	if m.Title == "" {
		return ErrMissingTitle
	}
	if m.Index == nil {
		return ErrMissingIndex
	}
	return nil
}

// Position returns the declared index, or zero when it is missing.
func (m Metadata) Position() int {
	if m.Index == nil {
		return 0
	}
	return *m.Index
}

const blockDelim = "---"

var (
	yamlFormat = frontmatter.NewFormat(blockDelim, blockDelim, yaml.Unmarshal)
	utf8BOM    = []byte("\xef\xbb\xbf")
)

// ParseDocument splits raw post text into its metadata block and body.
// The body is returned exactly as it follows the closing delimiter. A leading
// UTF-8 byte order mark is ignored.
func ParseDocument(source []byte) (Metadata, []byte, error) {
	source = bytes.TrimPrefix(source, utf8BOM)

	var meta Metadata
	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta, yamlFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			if opensBlock(source) {
				return Metadata{}, nil, ErrUnclosedFrontMatter
			}
			return Metadata{}, nil, ErrNoFrontMatter
		}
		return Metadata{}, nil, fmt.Errorf("parse metadata block: %w", err)
	}
	return meta, body, nil
}

// opensBlock reports whether the first non-blank line is an opening delimiter.
func opensBlock(source []byte) bool {
	for _, line := range bytes.Split(source, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		return string(line) == blockDelim
	}
	return false
}

// FormatDocument writes meta back as a YAML block followed by body.
func FormatDocument(meta Metadata, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("encode metadata block: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, buf.Len()+len(body)+8)
	out = append(out, blockDelim+"\n"...)
	out = append(out, buf.Bytes()...)
	out = append(out, blockDelim+"\n"...)
	out = append(out, body...)
	return out, nil
}
