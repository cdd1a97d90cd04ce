package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
)

func parseHTML(filename string, content []byte) (string, error) {
	// readability wants a base URL for resolving links; uploads have
	// none, so a synthetic file URL stands in.
	base, err := url.Parse("file:///" + url.PathEscape(filename))
	if err != nil {
		return "", fmt.Errorf("failed to build base url: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(content), base)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var builder strings.Builder
	if err := article.RenderText(&builder); err != nil {
		return "", fmt.Errorf("failed to render article text: %w", err)
	}

	return cleanParsedText(builder.String()), nil
}
