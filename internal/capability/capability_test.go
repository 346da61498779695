package capability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(v bool) func() bool { return func() bool { return v } }

func TestProbeBareEnvironment(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "")

	adcCalled := false
	c := Prober{
		KaggleAvailable:   fixed(false),
		NotebookAvailable: fixed(false),
		FindADC: func(context.Context) error {
			adcCalled = true
			return nil
		},
	}.Probe(context.Background())

	assert.Equal(t, Capabilities{}, c)
	assert.False(t, adcCalled, "ADC is only probed in Vertex mode")
}

func TestProbeKaggleNotebook(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "k")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "FALSE")

	c := Prober{
		KaggleAvailable:   fixed(true),
		NotebookAvailable: fixed(true),
	}.Probe(context.Background())

	assert.True(t, c.KaggleSecrets)
	assert.True(t, c.Notebook)
	assert.True(t, c.APIKey)
	assert.False(t, c.VertexEnabled)
}

func TestProbeVertexADC(t *testing.T) {
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "TRUE")

	p := Prober{KaggleAvailable: fixed(false), NotebookAvailable: fixed(false)}

	p.FindADC = func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	}
	assert.True(t, p.Probe(context.Background()).VertexADC)

	p.FindADC = func(context.Context) error { return errors.New("no credentials") }
	c := p.Probe(context.Background())
	assert.True(t, c.VertexEnabled)
	assert.False(t, c.VertexADC)
}

func TestReport(t *testing.T) {
	lines := Capabilities{KaggleSecrets: true}.Report()
	require.Len(t, lines, 4)
	assert.Equal(t, "kaggle-secrets", lines[0].Name)
	assert.True(t, lines[0].Enabled)
	assert.Empty(t, lines[0].Detail)
	assert.False(t, lines[2].Enabled)
	assert.Contains(t, lines[2].Detail, "adkit setup")

	lines = Capabilities{VertexEnabled: true}.Report()
	require.Len(t, lines, 5)
	assert.Equal(t, "vertex-adc", lines[4].Name)
}
