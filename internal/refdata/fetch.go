package refdata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Validator checks downloaded bytes before they replace the destination file.
type Validator func(data []byte) error

// Fetch downloads url into destPath through a temp file in the same directory.
// The destination is only replaced when validate (if non-nil) accepts the payload.
func Fetch(ctx context.Context, url, destPath string, validate Validator) error {
	if url == "" {
		return fmt.Errorf("url is required")
	}
	if destPath == "" {
		return fmt.Errorf("destination path is required")
	}
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	resp, err := httpRequest(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status for %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	if validate != nil {
		if err := validate(data); err != nil {
			return fmt.Errorf("downloaded data from %s is invalid: %w", url, err)
		}
	}

	tmpFile, err := os.CreateTemp(dir, "refdata-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to move data into place: %w", err)
	}
	slog.Debug("Fetched reference data", "url", url, "path", destPath, "bytes", len(data))
	return nil
}

// LevelsValidator returns a Validator that parses level data in the format implied by destPath.
func LevelsValidator(destPath string) Validator {
	ext := filepath.Ext(destPath)
	return func(data []byte) error {
		_, err := ParseLevels(ext, data)
		return err
	}
}

// KanjiListValidator returns a Validator that requires a non-empty kanji list.
func KanjiListValidator() Validator {
	return func(data []byte) error {
		_, err := ParseKanjiList(bytes.NewReader(data))
		return err
	}
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
