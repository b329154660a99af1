package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

type testEnv struct {
	dir    string
	config string
}

// newTestEnv writes a config pointing at baseURL with history in a temp dir.
func newTestEnv(t *testing.T, baseURL string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	if baseURL == "" {
		baseURL = "http://127.0.0.1:0"
	}

	cfg := `version: "1"
provider:
  name: http
  base_url: ` + baseURL + `
render:
  format: plain
history:
  enabled: true
  path: ` + filepath.Join(dir, "history.db") + `
log:
  verbosity: 0
`
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return &testEnv{dir: dir, config: path}
}

func (e *testEnv) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the CLI and returns stdout and stderr.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDiff_Plain(t *testing.T) {
	env := newTestEnv(t, "")
	a := env.file(t, "a.txt", "The quick fox")
	b := env.file(t, "b.txt", "The quick brown fox")

	out, errOut, err := env.run(t, "", "diff", a, b)
	require.NoError(t, err)
	assert.Equal(t, "The quick brown fox\n", out)
	assert.Contains(t, errOut, "19 characters")
}

func TestDiff_Markdown(t *testing.T) {
	env := newTestEnv(t, "")
	a := env.file(t, "a.txt", "The quick brown fox jumps")
	b := env.file(t, "b.txt", "The quick fox leaps")

	out, _, err := env.run(t, "", "diff", "--format", "markdown", a, b)
	require.NoError(t, err)
	assert.Equal(t, "The quick fox **leaps**\n", out)

	out, _, err = env.run(t, "", "diff", "-f", "markdown", "--show-removed", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "~~brown~~")
}

func TestDiff_Stdin(t *testing.T) {
	env := newTestEnv(t, "")
	a := env.file(t, "a.txt", "alpha beta")

	out, _, err := env.run(t, "alpha gamma", "diff", "--format", "json", "--show-removed", a, "-")
	require.NoError(t, err)

	segs := gjson.Parse(out).Array()
	require.Len(t, segs, 4)
	assert.Equal(t, "removed", segs[2].Get("kind").String())
	assert.Equal(t, "beta", segs[2].Get("text").String())
	assert.Equal(t, "added", segs[3].Get("kind").String())
	assert.Equal(t, "gamma", segs[3].Get("text").String())

	_, _, err = env.run(t, "", "diff", "-", "-")
	assert.Error(t, err)
}

func TestDiff_EmptyPolicy(t *testing.T) {
	env := newTestEnv(t, "")
	a := env.file(t, "a.txt", "")
	b := env.file(t, "b.txt", "hello")

	out, _, err := env.run(t, "", "diff", a, b)
	require.NoError(t, err)
	assert.Equal(t, "\n", out)

	out, _, err = env.run(t, "", "diff", "--empty", "align", "-f", "markdown", a, b)
	require.NoError(t, err)
	assert.Equal(t, "**hello**\n", out)

	_, _, err = env.run(t, "", "diff", "--empty", "never", a, b)
	assert.Error(t, err)
}

func TestDiff_Lookahead(t *testing.T) {
	env := newTestEnv(t, "")
	a := env.file(t, "a.txt", "x")
	b := env.file(t, "b.txt", "p x")

	out, _, err := env.run(t, "", "diff", "-f", "json", "--show-removed", "--lookahead", "0", a, b)
	require.NoError(t, err)
	assert.Equal(t, "removed", gjson.Get(out, "0.kind").String())

	out, _, err = env.run(t, "", "diff", "-f", "json", a, b)
	require.NoError(t, err)
	assert.Equal(t, "added", gjson.Get(out, "0.kind").String())
	assert.Equal(t, "same", gjson.Get(out, "2.kind").String())
	assert.Equal(t, int64(3), gjson.Get(out, "#").Int())

	_, _, err = env.run(t, "", "diff", "--lookahead", "-1", a, b)
	assert.Error(t, err)
}

func TestDiff_MissingFile(t *testing.T) {
	env := newTestEnv(t, "")
	_, _, err := env.run(t, "", "diff", filepath.Join(env.dir, "nope"), filepath.Join(env.dir, "nope2"))
	assert.ErrorContains(t, err, "reading")
}

// humanizer is a fake backend that uppercases one word.
func humanizer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		text := gjson.GetBytes(body, "originalText").String()
		if text == "fail" {
			http.Error(w, "backend down", http.StatusServiceUnavailable)
			return
		}

		out, _ := sjson.Set(`{"success":true}`, "data.humanizedText", strings.Replace(text, "fox", "red fox", 1))
		out, _ = sjson.Set(out, "data.mode", gjson.GetBytes(body, "mode").String())
		out, _ = sjson.Set(out, "data.targetAudience", gjson.GetBytes(body, "targetAudience").String())
		io.WriteString(w, out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHumanize_SavesHistory(t *testing.T) {
	env := newTestEnv(t, humanizer(t).URL)
	in := env.file(t, "in.txt", "The quick fox")

	out, errOut, err := env.run(t, "", "humanize", "-f", "markdown", "--mode", "tone", in)
	require.NoError(t, err)
	assert.Equal(t, "The quick **red** fox\n", out)
	assert.Contains(t, errOut, "17 characters")

	out, _, err = env.run(t, "", "history", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "tone")
	assert.Contains(t, lines[1], "The quick red fox")

	id := strings.Fields(lines[1])[0]
	out, _, err = env.run(t, "", "history", "show", "-f", "markdown", id)
	require.NoError(t, err)
	assert.Equal(t, "The quick **red** fox\n", out)

	_, errOut, err = env.run(t, "", "history", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Deleted "+id)

	_, _, err = env.run(t, "", "history", "show", id)
	assert.ErrorContains(t, err, "not found")
}

func TestHumanize_Stdin(t *testing.T) {
	env := newTestEnv(t, humanizer(t).URL)

	out, _, err := env.run(t, "a fox", "humanize", "--no-history")
	require.NoError(t, err)
	assert.Equal(t, "a red fox\n", out)

	out, _, err = env.run(t, "", "history", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHumanize_Errors(t *testing.T) {
	env := newTestEnv(t, humanizer(t).URL)

	_, _, err := env.run(t, "   ", "humanize")
	assert.ErrorContains(t, err, "no text")

	_, _, err = env.run(t, "a fox", "humanize", "--mode", "paraphrse")
	assert.ErrorContains(t, err, "paraphrase")

	_, _, err = env.run(t, "a fox", "humanize", "--formality", "150")
	assert.Error(t, err)

	out, _, err := env.run(t, "fail", "humanize")
	assert.ErrorContains(t, err, "503")
	assert.Empty(t, out)

	_, _, err = env.run(t, "a fox", "humanize", "--provider", "carrier-pigeon")
	assert.Error(t, err)
}

func TestHistory_Clear(t *testing.T) {
	env := newTestEnv(t, humanizer(t).URL)
	for _, text := range []string{"one fox", "two fox"} {
		_, _, err := env.run(t, text, "humanize")
		require.NoError(t, err)
	}

	_, _, err := env.run(t, "", "history", "clear")
	assert.Error(t, err)

	_, errOut, err := env.run(t, "", "history", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Deleted 2")
}

func TestConfig_InitAndShow(t *testing.T) {
	env := newTestEnv(t, "")
	path := filepath.Join(env.dir, "sub", "new.yml")

	_, _, err := env.run(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, _, err = env.run(t, "", "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	out, _, err := env.run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "format: plain")
	assert.Contains(t, out, "lookahead: 3")
}

func TestConfig_BadFile(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, os.WriteFile(env.config, []byte("diff:\n  lookahed: 3\n"), 0o644))

	_, _, err := env.run(t, "", "modes")
	assert.NoError(t, err, "modes does not read configuration")

	_, _, err = env.run(t, "", "config", "show")
	assert.Error(t, err)
}

func TestModes(t *testing.T) {
	env := newTestEnv(t, "")
	out, _, err := env.run(t, "", "modes")
	require.NoError(t, err)
	for _, want := range []string{"paraphrase", "vocabulary", "academic", "concise"} {
		assert.Contains(t, out, want)
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short text", preview("short\n  text", 20))
	assert.Equal(t, "abcd…", preview("abcdefgh", 5))
}

func TestHistory_FreshDataDirectory(t *testing.T) {
	env := newTestEnv(t, humanizer(t).URL)
	cfg, err := os.ReadFile(env.config)
	require.NoError(t, err)
	fresh := filepath.Join(env.dir, "data", "wordiff", "history.db")
	cfg = bytes.Replace(cfg, []byte(filepath.Join(env.dir, "history.db")), []byte(fresh), 1)
	require.NoError(t, os.WriteFile(env.config, cfg, 0o644))

	_, _, err = env.run(t, "", "history", "list")
	require.NoError(t, err)

	_, _, err = env.run(t, "a fox", "humanize")
	require.NoError(t, err)

	out, _, err := env.run(t, "", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "a red fox")
	assert.FileExists(t, fresh)
}
