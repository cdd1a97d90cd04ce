// Package parser extracts plain text from uploaded documents. Formats
// are dispatched on file extension: PDF via the poppler pdftotext tool,
// docx via its document XML, HTML via readability, and txt/md verbatim.
// All output is sanitized UTF-8.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/docsight/docsight/internal/util"

	"golang.org/x/sync/singleflight"
)

// MinTextLength is the minimum trimmed length a parsed document must
// have to be analyzable.
const MinTextLength = 50

// SupportedExtensions lists the accepted upload extensions.
var SupportedExtensions = []string{".pdf", ".docx", ".txt", ".md", ".html"}

// IsSupported reports whether the filename has an accepted extension.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// DocumentParser parses uploaded documents into plain text. Results are
// cached per key so concurrent consumers of the same upload parse once.
type DocumentParser struct {
	cache   map[string]string
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewDocumentParser creates a DocumentParser with an empty cache.
func NewDocumentParser() *DocumentParser {
	return &DocumentParser{
		cache: make(map[string]string),
	}
}

// Parse extracts text from content, dispatching on the extension of
// filename. The key identifies the upload for caching, typically the
// job ID.
func (p *DocumentParser) Parse(ctx context.Context, key, filename string, content []byte) (string, error) {
	p.cacheMu.RLock()
	if cached, ok := p.cache[key]; ok {
		p.cacheMu.RUnlock()
		return cached, nil
	}
	p.cacheMu.RUnlock()

	result, err, _ := p.group.Do(key, func() (any, error) {
		p.cacheMu.RLock()
		if cached, ok := p.cache[key]; ok {
			p.cacheMu.RUnlock()
			return cached, nil
		}
		p.cacheMu.RUnlock()

		text, err := parse(ctx, filename, content)
		if err != nil {
			return "", err
		}

		p.cacheMu.Lock()
		p.cache[key] = text
		p.cacheMu.Unlock()

		return text, nil
	})

	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// Forget drops the cached text for a key. Called when a job's artifacts
// are cleaned up.
func (p *DocumentParser) Forget(key string) {
	p.cacheMu.Lock()
	delete(p.cache, key)
	p.cacheMu.Unlock()
}

func parse(ctx context.Context, filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return parsePDF(ctx, content)
	case ".docx":
		return parseDocx(content)
	case ".html":
		return parseHTML(filename, content)
	case ".txt", ".md":
		return util.SanitizeText(string(content)), nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s", ext)
	}
}
