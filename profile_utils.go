package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// getProfileAsFile resolves a report URI to a local file.
//   - Input without "://" is a local path, relative or absolute.
//   - file:// URIs use their path directly.
//   - http:// and https:// URIs are downloaded into a temporary file.
//
// The returned cleanup removes the temporary file, if one was created, and is
// never nil when err is nil.
func getProfileAsFile(ctx context.Context, uriStr string) (filePath string, cleanup func(), err error) {
	cleanup = func() {}

	if !strings.Contains(uriStr, "://") {
		absPath, err := filepath.Abs(uriStr)
		if err != nil {
			return "", nil, fmt.Errorf("failed to get absolute path for '%s': %w", uriStr, err)
		}
		if _, err := os.Stat(absPath); err != nil {
			return "", nil, fmt.Errorf("local file '%s' (resolved to '%s') is not accessible: %w", uriStr, absPath, err)
		}
		log.WithField("path", absPath).Debug("Using local report path")
		return absPath, cleanup, nil
	}

	parsedURI, err := url.Parse(uriStr)
	if err != nil {
		return "", nil, fmt.Errorf("invalid profile URI '%s': %w", uriStr, err)
	}

	switch parsedURI.Scheme {
	case "file":
		filePath = parsedURI.Path
		if filePath == "" {
			return "", nil, fmt.Errorf("invalid file path derived from URI '%s'", uriStr)
		}
		if _, err := os.Stat(filePath); err != nil {
			return "", nil, fmt.Errorf("local file '%s' from URI '%s' is not accessible: %w", filePath, uriStr, err)
		}
		log.WithField("path", filePath).Debug("Using local report file")
		return filePath, cleanup, nil

	case "http", "https":
		log.WithField("url", uriStr).Info("Downloading report")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uriStr, nil)
		if err != nil {
			return "", nil, fmt.Errorf("failed to build request for '%s': %w", uriStr, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return "", nil, fmt.Errorf("failed to download profile from '%s': %w", uriStr, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", nil, fmt.Errorf("failed to download profile from '%s': received status code %d", uriStr, resp.StatusCode)
		}

		tempFile, err := os.CreateTemp("", "pprof-top-*.txt")
		if err != nil {
			return "", nil, fmt.Errorf("failed to create temporary file for download: %w", err)
		}
		filePath = tempFile.Name()

		cleanup = func() {
			log.WithField("path", filePath).Debug("Cleaning up temporary file")
			if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
				log.Warnf("failed to remove temporary file '%s': %v", filePath, err)
			}
		}

		_, err = io.Copy(tempFile, resp.Body)
		closeErr := tempFile.Close()

		if err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to write downloaded content to temporary file '%s': %w", filePath, err)
		}
		if closeErr != nil {
			log.Warnf("failed to close temporary file handle for '%s': %v", filePath, closeErr)
		}

		log.WithField("path", filePath).Debug("Downloaded report")
		return filePath, cleanup, nil

	default:
		return "", nil, fmt.Errorf("unsupported URI scheme '%s', only 'file://', 'http://', 'https://', or a plain local path are supported", parsedURI.Scheme)
	}
}
