// Package notebook discovers the local Jupyter server and derives the Kaggle
// proxy URL that reaches a port bound inside the kernel.
package notebook

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"syscall"
)

var (
	// ErrNotNotebook means no Jupyter runtime directory exists.
	ErrNotNotebook = errors.New("notebook: not running inside a Jupyter notebook / server environment")
	// ErrNoServers means the runtime directory has no live server entries.
	ErrNoServers = errors.New("notebook: no running Jupyter servers found")
)

// Server is one entry written by a running Jupyter server.
type Server struct {
	BaseURL  string `json:"base_url"`
	Hostname string `json:"hostname"`
	Port     int    `json:"port"`
	Token    string `json:"token"`
	URL      string `json:"url"`
	PID      int    `json:"pid"`
	RootDir  string `json:"root_dir"`
	Secure   bool   `json:"secure"`
	Version  string `json:"version"`

	File string `json:"-"`
}

// RuntimeDir returns the directory Jupyter writes server files to.
func RuntimeDir() string {
	if d := os.Getenv("JUPYTER_RUNTIME_DIR"); d != "" {
		return d
	}
	return filepath.Join(dataDir(), "runtime")
}

func dataDir() string {
	if d := os.Getenv("JUPYTER_DATA_DIR"); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Jupyter")
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, "jupyter")
		}
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "jupyter")
	}
	return filepath.Join(home, ".local", "share", "jupyter")
}

// ListServers returns the live servers in RuntimeDir.
func ListServers() ([]Server, error) {
	return ListServersIn(RuntimeDir())
}

// ListServersIn reads jpserver-*.json and nbserver-*.json from dir, ordered
// by file name. Entries for dead processes and unreadable files are skipped.
func ListServersIn(dir string) ([]Server, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotNotebook
		}
		return nil, err
	}

	var files []string
	for _, pattern := range []string{"jpserver-*.json", "nbserver-*.json"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	slices.Sort(files)

	var servers []Server
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		var s Server
		if err := json.Unmarshal(data, &s); err != nil {
			continue
		}
		if s.PID > 0 && !processAlive(s.PID) {
			continue
		}
		s.File = f
		servers = append(servers, s)
	}
	return servers, nil
}

// FirstServer returns the first live server, or ErrNoServers.
func FirstServer() (Server, error) {
	servers, err := ListServers()
	if err != nil {
		return Server{}, err
	}
	if len(servers) == 0 {
		return Server{}, ErrNoServers
	}
	return servers[0], nil
}

// Available reports whether a Jupyter runtime with a live server exists.
func Available() bool {
	servers, err := ListServers()
	return err == nil && len(servers) > 0
}

var processAlive = func(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = p.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, os.ErrPermission)
}
