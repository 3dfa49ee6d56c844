package utils

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var assetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateSheetURL checks that a configured spreadsheet URL is absolute http(s).
func ValidateSheetURL(rawURL string) error {
	if rawURL == "" {
		return ErrSheetNotConfigured
	}

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return ErrInvalidSheetURL
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return ErrInvalidSheetURL
	}

	if parsedURL.Host == "" {
		return ErrInvalidSheetURL
	}

	return nil
}

// ValidateAssetName accepts a single path element that cannot escape the
// assets directory.
// Rules:
// - Non-empty, at most 128 characters
// - Characters: a-z, A-Z, 0-9, '.', '-', '_'
// - Must not start with '.' (no hidden files, no "..")
func ValidateAssetName(name string) error {
	if name == "" || len(name) > 128 {
		return ErrInvalidFilename
	}

	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return ErrInvalidFilename
	}

	if strings.Contains(name, "..") {
		return ErrInvalidFilename
	}

	if !assetNamePattern.MatchString(name) {
		return ErrInvalidFilename
	}

	return nil
}
