// Package source loads FAQ content for corpus sync. The markdown source
// walks a directory of .md files and splits each into heading-delimited
// chunks, one chunk per heading plus the content below it.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/stackdesk/faqd/internal/domain"
)

// MarkdownSource reads FAQ chunks from markdown files under a directory.
type MarkdownSource struct {
	dir string
}

// NewMarkdownSource creates a source rooted at dir.
func NewMarkdownSource(dir string) *MarkdownSource {
	return &MarkdownSource{dir: dir}
}

// Load walks the directory and returns chunks for every .md file, in
// deterministic path order so resyncs produce stable chunk ordering.
func (s *MarkdownSource) Load(ctx context.Context) ([]domain.KnowledgeChunk, error) {
	var paths []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source dir: %w", err)
	}
	sort.Strings(paths)

	now := time.Now().UTC()
	var chunks []domain.KnowledgeChunk
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			rel = path
		}
		chunks = append(chunks, ChunkMarkdown(string(content), rel, now)...)
	}
	return chunks, nil
}

// ChunkMarkdown splits markdown content on ATX headings. Each chunk holds
// one heading plus all text until the next heading; heading-only sections
// with no body are skipped. SourceRef is "<file>#L<line>" pointing at the
// heading line.
func ChunkMarkdown(content, fileRef string, createdAt time.Time) []domain.KnowledgeChunk {
	var chunks []domain.KnowledgeChunk

	var heading string
	var headingLine int
	var body []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if heading == "" || text == "" {
			return
		}
		chunks = append(chunks, domain.KnowledgeChunk{
			ID:        fmt.Sprintf("%s#L%d", fileRef, headingLine),
			Heading:   heading,
			Text:      text,
			SourceRef: fmt.Sprintf("%s#L%d", fileRef, headingLine),
			CreatedAt: createdAt,
		})
	}

	for i, line := range strings.Split(content, "\n") {
		if level, text, ok := parseHeading(line); ok && level >= 1 {
			flush()
			heading = text
			headingLine = i + 1
			body = body[:0]
			continue
		}
		body = append(body, line)
	}
	flush()

	return chunks
}

// parseHeading matches ATX headings: 1-6 '#' characters, whitespace, text.
func parseHeading(line string) (level int, text string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) {
		return 0, "", false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}
	text = strings.TrimSpace(line[level+1:])
	if text == "" {
		return 0, "", false
	}
	return level, text, true
}
