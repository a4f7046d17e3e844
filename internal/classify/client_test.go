package classify_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nexderm/scout/internal/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lesion.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not-really-a-jpeg"), 0o600))
	return path
}

func TestPredict(t *testing.T) {
	logger := slog.Default()

	t.Run("uploads the image and decodes the prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/predictions/", r.URL.Path)

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "lesion.jpg", header.Filename)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"prediction": "benign_nevus",
				"confidence": 0.87,
				"recommendations": ["Consult a dermatologist", "Monitor for changes"]
			}`))
		}))
		defer server.Close()

		client := classify.NewClient(server.URL, logger)
		prediction, err := client.Predict(context.Background(), writeTestImage(t))

		require.NoError(t, err)
		assert.Equal(t, "benign_nevus", prediction.Label)
		assert.InEpsilon(t, 0.87, prediction.Confidence, 0.001)
		assert.Equal(t, []string{"Consult a dermatologist", "Monitor for changes"}, prediction.Recommendations)
	})

	t.Run("tolerates a single-string recommendations field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"prediction":"melanoma","confidence":0.42,` +
				`"recommendations":"Please consult a dermatologist."}`))
		}))
		defer server.Close()

		client := classify.NewClient(server.URL, logger)
		prediction, err := client.Predict(context.Background(), writeTestImage(t))

		require.NoError(t, err)
		assert.Equal(t, []string{"Please consult a dermatologist."}, prediction.Recommendations)
	})

	t.Run("non-200 responses are errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := classify.NewClient(server.URL, logger)
		_, err := client.Predict(context.Background(), writeTestImage(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "classifier returned status 503")
	})

	t.Run("missing image is reported before any request", func(t *testing.T) {
		client := classify.NewClient("http://127.0.0.1:0", logger)

		_, err := client.Predict(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open image")
	})
}
