package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type httpDirectory struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPDirectory calls GET {baseURL}/api/v1/users/{id} on the users service.
func NewHTTPDirectory(baseURL string, timeout time.Duration, logger *zap.Logger) UserDirectory {
	return &httpDirectory{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (d *httpDirectory) GetUser(ctx context.Context, id uuid.UUID) (*UserRecord, error) {
	url := fmt.Sprintf("%s/api/v1/users/%s", d.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call users service: %w", err)
	}
	defer resp.Body.Close()

	d.logger.Debug("directory_get_user",
		zap.String("user_id", id.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read directory response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("users service returned status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, ErrUserNotFound
	}

	var user UserRecord
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	return &user, nil
}

var _ UserDirectory = (*httpDirectory)(nil)
