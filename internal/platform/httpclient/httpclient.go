package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes limita lo que leemos de una respuesta (imágenes base64 incluidas).
	maxBodyBytes = 8 << 20 // 8MB
)

// Client envuelve *http.Client con base URL y modo credentials (cookie jar).
// A diferencia de un wrapper genérico, Do devuelve la respuesta para CUALQUIER
// status HTTP: el caller decide qué significa un 404 o un 409 en su operación.
// Solo hay error cuando no llegó respuesta alguna (ver TransportError).
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// TransportError representa "no hubo respuesta": timeout, DNS, conexión caída.
// Nunca se confunde con un status HTTP no-2xx.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: no response: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Response es una respuesta HTTP ya leída (body acotado a maxBodyBytes).
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reporta si el status es 2xx.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON decodifica el body en out.
func (r *Response) DecodeJSON(out any) error {
	if r == nil || len(r.Body) == 0 {
		return errors.New("httpclient: empty body")
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

// IsArray reporta si el body es un array JSON (chequeo estructural, sin decodificar).
func (r *Response) IsArray() bool {
	if r == nil {
		return false
	}
	b := bytes.TrimLeft(r.Body, " \t\r\n")
	return len(b) > 0 && b[0] == '['
}

// New crea un Client con base URL, timeout y cookie jar.
// El jar cumple el modo withCredentials del cliente original: las cookies que
// setea el backend viajan de vuelta en los siguientes requests.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("httpclient: base url required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("httpclient: invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: cookie jar: %w", err)
	}

	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// NewWithTransport permite inyectar un RoundTripper (interceptor de auth, tests).
func NewWithTransport(baseURL string, timeout time.Duration, tr http.RoundTripper) (*Client, error) {
	c, err := New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if tr != nil {
		c.HTTP.Transport = tr
	}
	return c, nil
}

// Do hace un request JSON.
// - in: body a enviar (opcional). Si nil => sin body.
// - query: query params (opcional).
// Devuelve *Response para cualquier status; *TransportError si no hubo respuesta.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in any) (*Response, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(path)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, maxBodyBytes)
	if err != nil {
		// La conexión murió a mitad del body: tampoco hay respuesta usable.
		return nil, &TransportError{Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       raw,
	}, nil
}

func (c *Client) resolveURL(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("httpclient: empty path")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	lr := io.LimitReader(r, max)
	return io.ReadAll(lr)
}
