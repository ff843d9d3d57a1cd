package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HostedStorage talks to the storage REST API of the hosted database.
type HostedStorage struct {
	apiKey  string
	bucket  string
	client  *http.Client
	baseURL string
}

var _ PhotoStorage = (*HostedStorage)(nil)

func NewHostedStorage(baseURL, apiKey, bucket string) *HostedStorage {
	return &HostedStorage{
		apiKey:  apiKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: 30 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func (s *HostedStorage) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	fullURL := s.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build storage request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("storage returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

func (s *HostedStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	path := fmt.Sprintf("/storage/v1/object/%s/%s", s.bucket, escapeKey(key))
	if _, err := s.doRequest(ctx, http.MethodPost, path, body, contentType); err != nil {
		return err
	}
	log.Printf("HostedStorage.Upload: stored %s in bucket %s", key, s.bucket)
	return nil
}

func (s *HostedStorage) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	payload, err := json.Marshal(map[string][]string{"prefixes": keys})
	if err != nil {
		return fmt.Errorf("failed to encode storage remove request: %w", err)
	}

	path := fmt.Sprintf("/storage/v1/object/%s", s.bucket)
	_, err = s.doRequest(ctx, http.MethodDelete, path, bytes.NewReader(payload), "application/json")
	return err
}

func (s *HostedStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, escapeKey(key))
}
