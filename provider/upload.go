package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/bbois1999/gun-event/domain"
)

// UploadResult is what the managed upload service returns for a stored file.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Uploader pushes file bytes to the managed upload service. The service has
// no Go SDK, so this is a small REST client against its ingest endpoint.
type Uploader struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewUploader(endpoint, token string) *Uploader {
	return &Uploader{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores the file and returns its public URL and storage key.
func (u *Uploader) Upload(ctx context.Context, filename string, contentType string, data io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+u.token)
	req.Header.Set("X-Upload-Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Provider: "upload", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.ProviderError{
			Provider: "upload",
			Err:      fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, msg),
		}
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &domain.ProviderError{Provider: "upload", Err: err}
	}
	return &result, nil
}
