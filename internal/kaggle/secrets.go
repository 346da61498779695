// Package kaggle talks to the user-secrets service available inside Kaggle
// notebook kernels.
package kaggle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/soyeahso/adkit/internal/logging"
	"github.com/soyeahso/adkit/internal/version"
)

// Environment variables injected into Kaggle kernels.
const (
	EnvURLBase      = "KAGGLE_URL_BASE"
	EnvSecretsToken = "KAGGLE_USER_SECRETS_TOKEN"
	EnvIAPToken     = "KAGGLE_IAP_TOKEN"
)

const (
	defaultURLBase  = "https://www.kaggle.com"
	getSecretMethod = "GetUserSecretByLabelRequest"
)

var (
	// ErrUnavailable means the process is not running inside a Kaggle kernel
	// with secrets attached.
	ErrUnavailable = errors.New("kaggle: secrets service unavailable")
	// ErrSecretNotFound means the label exists but is empty, or does not exist.
	ErrSecretNotFound = errors.New("kaggle: secret not found")
)

// Available reports whether a secrets token is present in the environment.
func Available() bool {
	return os.Getenv(EnvSecretsToken) != ""
}

// Options configures a Client. Empty fields are read from the environment.
type Options struct {
	URLBase    string
	Token      string
	IAPToken   string
	HTTPClient *http.Client
}

// Client reads user secrets.
type Client struct {
	urlBase  string
	token    string
	iapToken string
	http     *http.Client
	log      *logging.Logger
}

// NewClient builds a Client. It returns ErrUnavailable when no token is found.
func NewClient(opts Options, log *logging.Logger) (*Client, error) {
	if opts.URLBase == "" {
		opts.URLBase = os.Getenv(EnvURLBase)
	}
	if opts.URLBase == "" {
		opts.URLBase = defaultURLBase
	}
	if opts.Token == "" {
		opts.Token = os.Getenv(EnvSecretsToken)
	}
	if opts.IAPToken == "" {
		opts.IAPToken = os.Getenv(EnvIAPToken)
	}
	if opts.Token == "" {
		return nil, ErrUnavailable
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		urlBase:  strings.TrimRight(opts.URLBase, "/"),
		token:    opts.Token,
		iapToken: opts.IAPToken,
		http:     opts.HTTPClient,
		log:      log.Sub("kaggle"),
	}, nil
}

type getSecretRequest struct {
	Label string `json:"Label"`
}

type secretsResponse struct {
	WasSuccessful bool     `json:"wasSuccessful"`
	Errors        []string `json:"errors"`
	Result        struct {
		Secret string `json:"secret"`
	} `json:"result"`
}

// GetSecret returns the secret stored under label.
func (c *Client) GetSecret(ctx context.Context, label string) (string, error) {
	payload, err := json.Marshal(getSecretRequest{Label: label})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.urlBase + "/requests/" + getSecretMethod
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Kaggle-Authorization", "Bearer "+c.token)
	if c.iapToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.iapToken)
	}

	c.log.Debug().Str("label", label).Msg("requesting secret")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("secrets API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result secretsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if !result.WasSuccessful {
		return "", fmt.Errorf("secrets API rejected request: %s", strings.Join(result.Errors, "; "))
	}
	if result.Result.Secret == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, label)
	}
	return result.Result.Secret, nil
}
