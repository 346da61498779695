// Package capability probes the optional parts of the runtime environment
// once so dependent features can be gated on plain booleans.
package capability

import (
	"context"
	"os"
	"time"

	"golang.org/x/oauth2/google"

	"github.com/soyeahso/adkit/internal/credentials"
	"github.com/soyeahso/adkit/internal/kaggle"
	"github.com/soyeahso/adkit/internal/notebook"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// adcTimeout bounds the metadata-server lookup FindDefaultCredentials may do.
const adcTimeout = 3 * time.Second

// Capabilities is a snapshot of what the environment offers.
type Capabilities struct {
	KaggleSecrets bool // Kaggle user-secrets token present
	Notebook      bool // a live Jupyter server was found
	APIKey        bool // GOOGLE_API_KEY is set
	VertexEnabled bool // GOOGLE_GENAI_USE_VERTEXAI is truthy
	VertexADC     bool // Application Default Credentials resolve; only probed when Vertex is set
}

// Prober runs the individual checks. Zero-value fields fall back to the
// real environment checks.
type Prober struct {
	KaggleAvailable   func() bool
	NotebookAvailable func() bool
	FindADC           func(ctx context.Context) error
}

// Probe checks the real environment.
func Probe(ctx context.Context) Capabilities {
	return Prober{}.Probe(ctx)
}

// Probe runs every check once.
func (p Prober) Probe(ctx context.Context) Capabilities {
	if p.KaggleAvailable == nil {
		p.KaggleAvailable = kaggle.Available
	}
	if p.NotebookAvailable == nil {
		p.NotebookAvailable = notebook.Available
	}
	if p.FindADC == nil {
		p.FindADC = findADC
	}

	c := Capabilities{
		KaggleSecrets: p.KaggleAvailable(),
		Notebook:      p.NotebookAvailable(),
		APIKey:        os.Getenv(credentials.EnvAPIKey) != "",
		VertexEnabled: credentials.VertexEnabled(),
	}
	if c.VertexEnabled {
		ctx, cancel := context.WithTimeout(ctx, adcTimeout)
		defer cancel()
		c.VertexADC = p.FindADC(ctx) == nil
	}
	return c
}

func findADC(ctx context.Context) error {
	_, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	return err
}

// Line is one row of a status report.
type Line struct {
	Name    string
	Enabled bool
	Detail  string
}

// Report renders the snapshot for `adkit status`.
func (c Capabilities) Report() []Line {
	lines := []Line{
		{"kaggle-secrets", c.KaggleSecrets, "set " + kaggle.EnvSecretsToken + " (attach secrets to the notebook)"},
		{"notebook", c.Notebook, "no Jupyter server in " + notebook.RuntimeDir()},
		{"api-key", c.APIKey, "run `adkit setup` or export " + credentials.EnvAPIKey},
		{"vertex", c.VertexEnabled, credentials.EnvUseVertex + " is not TRUE"},
	}
	if c.VertexEnabled {
		lines = append(lines, Line{"vertex-adc", c.VertexADC, "run `gcloud auth application-default login`"})
	}
	for i := range lines {
		if lines[i].Enabled {
			lines[i].Detail = ""
		}
	}
	return lines
}
