// Package credentials resolves the Gemini API key into GOOGLE_API_KEY from a
// dotenv file or the Kaggle secrets vault.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/soyeahso/adkit/internal/kaggle"
	"github.com/soyeahso/adkit/internal/logging"
)

// Environment variables read by the genai client.
const (
	EnvAPIKey    = "GOOGLE_API_KEY"
	EnvUseVertex = "GOOGLE_GENAI_USE_VERTEXAI"
)

// Source identifies where a credential came from.
type Source string

const (
	SourceNone   Source = ""
	SourceDotenv Source = "dotenv"
	SourceKaggle Source = "kaggle"
)

// SecretFetcher reads a secret by label. *kaggle.Client implements it.
type SecretFetcher interface {
	GetSecret(ctx context.Context, label string) (string, error)
}

// Options selects the resolution strategy.
type Options struct {
	UseDotenv  bool
	DotenvPath string
	UseVertex  bool
	SecretName string
}

// Attempt records the outcome of one source.
type Attempt struct {
	Source  Source
	OK      bool
	Message string
}

// Result is the outcome of Setup.
type Result struct {
	OK       bool
	Source   Source
	Vertex   bool
	Attempts []Attempt
}

// Resolver populates the credential environment variables. A nil fetcher
// means the Kaggle vault is unavailable and that source always fails.
type Resolver struct {
	secrets SecretFetcher
	log     *logging.Logger
}

// NewResolver creates a Resolver.
func NewResolver(secrets SecretFetcher, log *logging.Logger) *Resolver {
	return &Resolver{secrets: secrets, log: log.Sub("credentials")}
}

// Setup tries the dotenv file first when enabled, then the Kaggle vault.
func (r *Resolver) Setup(ctx context.Context, opts Options) Result {
	var res Result
	if opts.UseDotenv {
		a := r.FromDotenv(opts.DotenvPath)
		res.Attempts = append(res.Attempts, a)
		if a.OK {
			if opts.UseVertex {
				os.Setenv(EnvUseVertex, vertexValue(true))
			}
			res.OK, res.Source, res.Vertex = true, SourceDotenv, VertexEnabled()
			return res
		}
	}

	a := r.FromKaggle(ctx, opts.SecretName, opts.UseVertex)
	res.Attempts = append(res.Attempts, a)
	if a.OK {
		res.OK, res.Source, res.Vertex = true, SourceKaggle, opts.UseVertex
	}
	return res
}

// FromDotenv loads the dotenv file and succeeds when GOOGLE_API_KEY is set
// afterwards, whether it came from the file or was already in the environment.
func (r *Resolver) FromDotenv(path string) Attempt {
	loaded, err := LoadDotenv(path)
	if err != nil {
		// The key may still be exported or come from the lines that parsed.
		r.log.Warn().Err(err).Str("path", path).Msg("dotenv not fully loaded")
	} else {
		r.log.Debug().Str("path", loaded).Msg("dotenv loaded")
	}

	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return Attempt{Source: SourceDotenv, Message: EnvAPIKey + " not found in .env or environment."}
	}
	os.Setenv(EnvAPIKey, key)
	if _, ok := os.LookupEnv(EnvUseVertex); !ok {
		os.Setenv(EnvUseVertex, "FALSE")
	}
	return Attempt{Source: SourceDotenv, OK: true, Message: "Loaded .env and set required environment variables."}
}

// FromKaggle reads secretName from the Kaggle vault into GOOGLE_API_KEY.
func (r *Resolver) FromKaggle(ctx context.Context, secretName string, useVertex bool) Attempt {
	if r.secrets == nil {
		return Attempt{Source: SourceKaggle, Message: "Kaggle environment not detected: the secrets service is unavailable."}
	}
	if secretName == "" {
		secretName = EnvAPIKey
	}

	key, err := r.secrets.GetSecret(ctx, secretName)
	if errors.Is(err, kaggle.ErrSecretNotFound) {
		key, err = "", nil
	}
	if err != nil {
		r.log.Warn().Err(err).Str("secret", secretName).Msg("secret lookup failed")
		return Attempt{Source: SourceKaggle, Message: fmt.Sprintf("Authentication error: make sure %q is added to your Kaggle secrets.", secretName)}
	}
	if key == "" {
		return Attempt{Source: SourceKaggle, Message: fmt.Sprintf("Secret %q not found or empty in Kaggle secrets.", secretName)}
	}

	os.Setenv(EnvAPIKey, key)
	os.Setenv(EnvUseVertex, vertexValue(useVertex))
	state := "disabled"
	if useVertex {
		state = "enabled"
	}
	return Attempt{Source: SourceKaggle, OK: true, Message: fmt.Sprintf("Gemini API key setup complete (Vertex AI: %s).", state)}
}

func vertexValue(on bool) string {
	if on {
		return "TRUE"
	}
	return "FALSE"
}

// envBool reports whether name is "1" or "true" in any case, the values the
// genai client accepts.
func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true":
		return true
	}
	return false
}

// VertexEnabled reports whether GOOGLE_GENAI_USE_VERTEXAI is truthy.
func VertexEnabled() bool {
	return envBool(EnvUseVertex)
}
