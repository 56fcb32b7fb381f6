// Package upload collects a file plus optional metadata and posts it for
// ingestion. Validation happens before any network call; failures surface
// the server's message verbatim and nothing is retried automatically.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docfind/internal/domain"
)

var (
	ErrFileRequired    = errors.New("select a file to upload")
	ErrMetadataInvalid = errors.New("metadata must be valid JSON")
)

// Form is the editable upload form state.
type Form struct {
	// Path is the local file to upload.
	Path string
	// Metadata is an optional free-form JSON object sent alongside the file.
	Metadata string
}

// Validate checks the form before submission.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.Path) == "" {
		return ErrFileRequired
	}
	meta := strings.TrimSpace(f.Metadata)
	if meta != "" && !json.Valid([]byte(meta)) {
		return ErrMetadataInvalid
	}
	return nil
}

// Reset clears the form after a successful upload.
func (f *Form) Reset() {
	f.Path = ""
	f.Metadata = ""
}

// Submit validates the form, reads the file and posts it. The returned
// result carries the backend's structured confirmation.
func Submit(ctx context.Context, api domain.UploadAPI, form Form) (domain.UploadResult, error) {
	if err := form.Validate(); err != nil {
		return domain.UploadResult{}, err
	}
	file, err := os.Open(form.Path)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("open %s: %w", form.Path, err)
	}
	defer file.Close()

	return api.Upload(ctx, filepath.Base(form.Path), file, strings.TrimSpace(form.Metadata))
}
