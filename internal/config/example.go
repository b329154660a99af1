package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Example is the commented configuration written by "config init". Every
// value matches Default except the history path, which is platform specific.
const Example = `# wordiff configuration
version: "1"

provider:
  # http talks to the humanizer backend; anthropic and openai call a model directly.
  name: http
  base_url: http://localhost:5000
  # api_key: ""        # or WORDIFF_API_KEY
  # model: ""          # model name for anthropic/openai
  timeout: 60s
  # max_tokens: 4096

diff:
  # Tokens searched ahead before a mismatch counts as a substitution.
  lookahead: 3
  # What to do when either text is empty: skip (show nothing) or align.
  empty_input: skip
  # Removed words are hidden by default.
  show_removed: false
  cache_size: 16

render:
  # auto picks ansi on a terminal and plain otherwise.
  format: auto
  highlight_color: "#eab308"

history:
  enabled: true
  # path: ~/.config/wordiff/history.db
  limit: 20

log:
  # 0 quiet, 1 warnings, 2 info, 3 debug
  verbosity: 1
  # file: /tmp/wordiff.log

defaults:
  mode: paraphrase          # paraphrase, style, tone, vocabulary
  formality: 50             # 0-100
  audience: general         # general, academic, professional, casual, technical
  verbosity: balanced       # concise, balanced, detailed
  deep_humanization: true
`

// WriteExample writes Example to path, creating parent directories. It
// refuses to overwrite an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, []byte(Example), 0o644)
}
