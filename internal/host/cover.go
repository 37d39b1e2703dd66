package host

import (
	"context"
	"io"
	"log/slog"
	"net/http"
)

// DownloadCover fetches the cached cover image for the given identifiers and
// forwards the bytes to sink. Failures are logged and nothing is emitted;
// the caller is never handed an error.
func (s *Source) DownloadCover(ctx context.Context, identifiers map[string]string, sink CoverSink) {
	coverURL := s.CachedCoverURL(identifiers)
	if coverURL == "" {
		slog.Info("No cached cover found for this book")
		return
	}

	slog.Info("Found cached cover URL", "url", coverURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		slog.Error("Failed to build cover request", "url", coverURL, "error", err)
		return
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to download cover", "url", coverURL, "error", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("Failed to download cover", "url", coverURL, "status", resp.StatusCode)
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Failed to read cover data", "url", coverURL, "error", err)
		return
	}
	if len(data) == 0 {
		slog.Error("Cover response was empty", "url", coverURL)
		return
	}

	sink.Put(data)
	slog.Info("Cover downloaded successfully", "bytes", len(data))
}
