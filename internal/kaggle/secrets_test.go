package kaggle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soyeahso/adkit/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentLog() *logging.Logger { return logging.New(nil, "silent") }

func secretsServer(t *testing.T, handler func(w http.ResponseWriter, label string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/requests/GetUserSecretByLabelRequest", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("X-Kaggle-Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req getSecretRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req.Label)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAvailable(t *testing.T) {
	t.Setenv(EnvSecretsToken, "")
	assert.False(t, Available())
	t.Setenv(EnvSecretsToken, "jwt")
	assert.True(t, Available())
}

func TestNewClientUnavailable(t *testing.T) {
	t.Setenv(EnvSecretsToken, "")
	_, err := NewClient(Options{}, silentLog())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewClientFromEnvironment(t *testing.T) {
	t.Setenv(EnvSecretsToken, "jwt")
	t.Setenv(EnvIAPToken, "iap")
	t.Setenv(EnvURLBase, "https://kaggle.example/")

	c, err := NewClient(Options{}, silentLog())
	require.NoError(t, err)
	assert.Equal(t, "https://kaggle.example", c.urlBase)
	assert.Equal(t, "jwt", c.token)
	assert.Equal(t, "iap", c.iapToken)
}

func TestGetSecret(t *testing.T) {
	srv := secretsServer(t, func(w http.ResponseWriter, label string) {
		assert.Equal(t, "GOOGLE_API_KEY", label)
		w.Write([]byte(`{"wasSuccessful":true,"result":{"secret":"s3cret"}}`))
	})

	c, err := NewClient(Options{URLBase: srv.URL, Token: "jwt-token"}, silentLog())
	require.NoError(t, err)

	secret, err := c.GetSecret(context.Background(), "GOOGLE_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
}

func TestGetSecretSendsIAPHeader(t *testing.T) {
	var got, kaggleAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		kaggleAuth = r.Header.Get("X-Kaggle-Authorization")
		w.Write([]byte(`{"wasSuccessful":true,"result":{"secret":"x"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Options{URLBase: srv.URL, Token: "jwt-token", IAPToken: "iap-data"}, silentLog())
	require.NoError(t, err)
	_, err = c.GetSecret(context.Background(), "K")
	require.NoError(t, err)
	assert.Equal(t, "Bearer iap-data", got)
	assert.Equal(t, "Bearer jwt-token", kaggleAuth)
}

func TestGetSecretEmpty(t *testing.T) {
	srv := secretsServer(t, func(w http.ResponseWriter, _ string) {
		w.Write([]byte(`{"wasSuccessful":true,"result":{}}`))
	})
	c, err := NewClient(Options{URLBase: srv.URL, Token: "jwt-token"}, silentLog())
	require.NoError(t, err)

	_, err = c.GetSecret(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestGetSecretUnsuccessful(t *testing.T) {
	srv := secretsServer(t, func(w http.ResponseWriter, _ string) {
		w.Write([]byte(`{"wasSuccessful":false,"errors":["Unauthorized access","token expired"]}`))
	})
	c, err := NewClient(Options{URLBase: srv.URL, Token: "jwt-token"}, silentLog())
	require.NoError(t, err)

	_, err = c.GetSecret(context.Background(), "K")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized access; token expired")
	assert.NotErrorIs(t, err, ErrSecretNotFound)
}

func TestGetSecretHTTPError(t *testing.T) {
	srv := secretsServer(t, func(w http.ResponseWriter, _ string) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	c, err := NewClient(Options{URLBase: srv.URL, Token: "jwt-token"}, silentLog())
	require.NoError(t, err)

	_, err = c.GetSecret(context.Background(), "K")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(403): forbidden")
}

func TestGetSecretBadJSON(t *testing.T) {
	srv := secretsServer(t, func(w http.ResponseWriter, _ string) {
		w.Write([]byte(`<html>`))
	})
	c, err := NewClient(Options{URLBase: srv.URL, Token: "jwt-token"}, silentLog())
	require.NoError(t, err)

	_, err = c.GetSecret(context.Background(), "K")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}
