package agent

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/soyeahso/adkit/internal/config"
	"github.com/soyeahso/adkit/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentLog() *logging.Logger {
	return logging.New(nil, "silent")
}

// fakeLLM answers every request with a fixed reply and records the last
// user text it saw.
type fakeLLM struct {
	reply string
	err   error

	mu       sync.Mutex
	calls    int
	lastText string
}

func (f *fakeLLM) Name() string { return "fake-llm" }

func (f *fakeLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		f.mu.Lock()
		f.calls++
		if n := len(req.Contents); n > 0 && req.Contents[n-1] != nil {
			for _, p := range req.Contents[n-1].Parts {
				if p.Text != "" {
					f.lastText = p.Text
					break
				}
			}
		}
		f.mu.Unlock()

		if f.err != nil {
			yield(nil, f.err)
			return
		}
		yield(&model.LLMResponse{
			Content: genai.NewContentFromText(f.reply, genai.RoleModel),
		}, nil)
	}
}

func testConfig(llm model.LLM) Config {
	return Config{LLM: llm, Tools: []string{}}
}

func TestNewAppliesDefaults(t *testing.T) {
	c, err := New(context.Background(), testConfig(&fakeLLM{}), silentLog())
	require.NoError(t, err)

	cfg := c.Config()
	assert.Equal(t, config.DefaultAppName, cfg.AppName)
	assert.Equal(t, config.DefaultUserID, cfg.UserID)
	assert.Equal(t, DefaultSessionID, cfg.SessionID)
	assert.Equal(t, config.DefaultAgentName, cfg.Name)
	assert.Equal(t, config.DefaultModel, cfg.Model)
	assert.Equal(t, "fake-llm", c.ModelName())
	assert.Equal(t, config.DefaultAgentName, c.Agent().Name())
	assert.Empty(t, cfg.Tools)
}

func TestNilToolsSelectsDefault(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, []string{GoogleSearch}, cfg.Tools)
}

func TestNewUnknownTool(t *testing.T) {
	cfg := testConfig(&fakeLLM{})
	cfg.Tools = []string{"code_exec"}
	_, err := New(context.Background(), cfg, silentLog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create agent:")
	assert.Contains(t, err.Error(), `"code_exec"`)
	assert.Contains(t, err.Error(), "available: google_search")
}

func TestBuildTools(t *testing.T) {
	tools, err := BuildTools([]string{GoogleSearch, GoogleSearch})
	require.NoError(t, err)
	assert.Len(t, tools, 1)

	tools, err = BuildTools(nil)
	require.NoError(t, err)
	assert.Empty(t, tools)

	assert.Equal(t, []string{GoogleSearch}, ToolNames())
}

func TestRunDebug(t *testing.T) {
	llm := &fakeLLM{reply: "Sunny, 28C."}
	c, err := New(context.Background(), testConfig(llm), silentLog())
	require.NoError(t, err)

	res, err := c.RunDebug(context.Background(), "What's the weather in Bengaluru?")
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionID, res.SessionID)
	assert.NotEmpty(t, res.Events)
	assert.Equal(t, "Sunny, 28C.", res.Text)
	assert.Equal(t, "What's the weather in Bengaluru?", llm.lastText)

	// Second run reuses the debug session.
	res, err = c.RunDebug(context.Background(), "And tomorrow?")
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionID, res.SessionID)
	assert.Equal(t, 2, llm.calls)
}

func TestRunDebugModelError(t *testing.T) {
	c, err := New(context.Background(), testConfig(&fakeLLM{err: errors.New("quota exceeded")}), silentLog())
	require.NoError(t, err)

	_, err = c.RunDebug(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestRunDebugCancelled(t *testing.T) {
	c, err := New(context.Background(), testConfig(&fakeLLM{reply: "x"}), silentLog())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.RunDebug(ctx, "hi")
	require.Error(t, err)
}

func textEvent(text string) *session.Event {
	ev := session.NewEvent("inv")
	ev.Content = genai.NewContentFromText(text, genai.RoleModel)
	return ev
}

func TestExtractText(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))

	empty := session.NewEvent("inv")
	events := []*session.Event{textEvent("first"), textEvent("last"), empty, nil}
	assert.Equal(t, "last", ExtractText(events))

	onlyEmpty := []*session.Event{empty, textEvent("")}
	assert.Equal(t, "", ExtractText(onlyEmpty))
}

func TestLazyMemoizes(t *testing.T) {
	l := NewLazy(testConfig(&fakeLLM{}), silentLog())
	assert.Equal(t, config.DefaultModel, l.Config().Model)
	assert.False(t, l.Built())

	a, err := l.Get(context.Background())
	require.NoError(t, err)
	b, err := l.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.True(t, l.Built())
}

func TestLazyDoesNotCacheFailure(t *testing.T) {
	builds := 0
	l := NewLazy(testConfig(&fakeLLM{}), silentLog())
	l.build = func(ctx context.Context, cfg Config, log *logging.Logger) (*Client, error) {
		builds++
		if builds == 1 {
			return nil, errors.New("create model: no api key")
		}
		return New(ctx, cfg, log)
	}

	_, err := l.Get(context.Background())
	require.Error(t, err)
	assert.False(t, l.Built())

	c, err := l.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 2, builds)
}

func TestLazyConcurrentGet(t *testing.T) {
	builds := 0
	l := NewLazy(testConfig(&fakeLLM{}), silentLog())
	l.build = func(ctx context.Context, cfg Config, log *logging.Logger) (*Client, error) {
		builds++
		return New(ctx, cfg, log)
	}

	var wg sync.WaitGroup
	got := make([]*Client, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := l.Get(context.Background())
			assert.NoError(t, err)
			got[i] = c
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, builds)
	for _, c := range got {
		assert.Same(t, got[0], c)
	}
}

func TestConfigFromSettings(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "key-1")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "TRUE")

	cfg := ConfigFromSettings(config.AgentConfig{Name: "a", Model: "m"})
	assert.Equal(t, "a", cfg.Name)
	assert.Equal(t, "m", cfg.Model)
	assert.Equal(t, "key-1", cfg.APIKey)
	assert.True(t, cfg.Vertex)
	assert.Nil(t, cfg.Tools)
}
