package notebook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultHost and DefaultPort match the Kaggle kernel proxy and the
// `adk web` default port.
const (
	DefaultHost = "https://kkb-production.jupyter-proxy.kaggle.net"
	DefaultPort = 8000
)

// ParseError reports a base URL that does not carry kernel and token segments.
type ParseError struct {
	BaseURL string
}

func (e *ParseError) Error() string {
	return "could not parse kernel/token from base URL: " + e.BaseURL
}

// ParseKernelToken extracts the kernel id and token from a Jupyter base URL
// such as "/k/<user>/<kernel>/<token>/". They are the third and fourth
// non-empty path segments.
func ParseKernelToken(baseURL string) (kernel, token string, err error) {
	var parts []string
	for _, p := range strings.Split(baseURL, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 4 {
		return "", "", &ParseError{BaseURL: baseURL}
	}
	return parts[2], parts[3], nil
}

// Proxy is a resolved proxy location.
type Proxy struct {
	Kernel string
	Token  string
	Prefix string // /k/<kernel>/<token>/proxy/proxy/<port>
	URL    string // Host + Prefix
}

// BuildProxy derives the proxy location for port from baseURL.
func BuildProxy(baseURL, host string, port int) (Proxy, error) {
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	kernel, token, err := ParseKernelToken(baseURL)
	if err != nil {
		return Proxy{}, err
	}
	prefix := fmt.Sprintf("/k/%s/%s/proxy/proxy/%s", kernel, token, strconv.Itoa(port))
	return Proxy{
		Kernel: kernel,
		Token:  token,
		Prefix: prefix,
		URL:    strings.TrimRight(host, "/") + prefix,
	}, nil
}

// ProxyURL finds the running Jupyter server and builds its proxy location.
func ProxyURL(host string, port int) (Proxy, error) {
	srv, err := FirstServer()
	if err != nil {
		return Proxy{}, err
	}
	if srv.BaseURL == "" {
		return Proxy{}, errors.New("notebook: no base_url found for running Jupyter server")
	}
	return BuildProxy(srv.BaseURL, host, port)
}
