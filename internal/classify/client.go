package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Prediction is the classifier's answer for one uploaded image.
type Prediction struct {
	Label           string   // Label is the predicted condition.
	Confidence      float64  // Confidence in [0, 1].
	Recommendations []string // Recommendations accompanying the prediction.
}

// rawPrediction tolerates the upstream's loose recommendations field, which
// may be a single string or an array of strings.
type rawPrediction struct {
	Prediction      string          `json:"prediction"`
	Confidence      float64         `json:"confidence"`
	Recommendations json.RawMessage `json:"recommendations"`
}

// Client talks to the upstream NexDerm classification collaborator. The model
// itself is opaque; only the request/response contract is known here.
type Client struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL of the classification API
	log     *slog.Logger // Logger for logging operations
}

// NewClient creates a classifier client for the given base URL.
func NewClient(baseURL string, log *slog.Logger) *Client {
	const timeout = 60
	return &Client{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// NewClientWithHTTPClient creates a Client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithHTTPClient(client HTTPClient, baseURL string, log *slog.Logger) *Client {
	return &Client{client: client, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// Predict uploads the image at imagePath and returns the classification.
func (c *Client) Predict(ctx context.Context, imagePath string) (*Prediction, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err = io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy image into request: %w", err)
	}
	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predictions/", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.log.DebugContext(ctx, "Uploading image for classification", "image", imagePath)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute prediction request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Classifier API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	var raw rawPrediction
	if err = json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	return &Prediction{
		Label:           raw.Prediction,
		Confidence:      raw.Confidence,
		Recommendations: decodeRecommendations(raw.Recommendations),
	}, nil
}

func decodeRecommendations(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}

	var one string
	if err := json.Unmarshal(raw, &one); err == nil && one != "" {
		return []string{one}
	}

	return nil
}
