package credentials

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DotenvFile is the file name searched for when no explicit path is given.
const DotenvFile = ".env"

// ParseDotenv reads KEY=value pairs. Blank lines and # comments are skipped,
// surrounding quotes are removed and an optional "export " prefix is allowed.
func ParseDotenv(r io.Reader) (map[string]string, error) {
	return godotenv.Parse(r)
}

// SkippedLinesError reports dotenv lines that could not be parsed. The
// remaining lines were still loaded.
type SkippedLinesError struct {
	Path  string
	Lines []int
}

func (e *SkippedLinesError) Error() string {
	return fmt.Sprintf("%s: skipped unparsable lines %v", e.Path, e.Lines)
}

// LoadDotenv loads path into the process environment without overwriting
// variables that are already set. A missing file is not an error. It returns
// the path actually read, or "" when nothing was found. Unparsable lines are
// skipped and reported as *SkippedLinesError after the valid ones are set.
func LoadDotenv(path string) (string, error) {
	if path == "" {
		found, ok := FindDotenv()
		if !ok {
			return "", nil
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	env, skipped := parseLenient(string(data))
	for k, v := range env {
		if _, ok := os.LookupEnv(k); !ok {
			os.Setenv(k, v)
		}
	}
	if len(skipped) > 0 {
		return path, &SkippedLinesError{Path: path, Lines: skipped}
	}
	return path, nil
}

// parseLenient parses the whole file and, when that fails, falls back to
// one line at a time so a single bad line does not discard the rest.
func parseLenient(content string) (map[string]string, []int) {
	if env, err := godotenv.Unmarshal(content); err == nil {
		return env, nil
	}
	env := make(map[string]string)
	var skipped []int
	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kv, err := godotenv.Unmarshal(line)
		if _, noKey := kv[""]; err != nil || len(kv) == 0 || noKey {
			skipped = append(skipped, i+1)
			continue
		}
		for k, v := range kv {
			env[k] = v
		}
	}
	return env, skipped
}

// FindDotenv looks for .env in the working directory and then in each parent.
func FindDotenv() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, DotenvFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
