package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/tango/internal/vocab"
)

// API is the set of server operations the client side consumes. It is
// implemented by *Client and can be faked in tests.
type API interface {
	ListFolders(ctx context.Context) ([]vocab.Folder, error)
	CreateFolder(ctx context.Context, name string) (vocab.Folder, error)
	DeleteFolder(ctx context.Context, name string) error
	ListWords(ctx context.Context, folder string) ([]vocab.Word, error)
	AddWord(ctx context.Context, folder string, in vocab.NewWord) (vocab.Word, error)
	DeleteWord(ctx context.Context, folder, wordID string) error
	SetFavorite(ctx context.Context, folder, wordID string, favorite bool) ([]vocab.Word, error)
	Translate(ctx context.Context, text, from, to string) (vocab.Translation, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the tangod HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
}

const (
	defaultAPIURL    = "127.0.0.1:8787"
	defaultUserAgent = "tango/0.1"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 4 << 10
)

// Error is a non-2xx API response. It unwraps to the vocab sentinel matching
// its status code.
type Error struct {
	Status  int
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.kind }

// NewClient builds a Client for the server at apiURL authenticating with
// token.
func NewClient(apiURL, token string) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		token:     strings.TrimSpace(token),
	}, nil
}

// ListFolders returns the user's folders.
func (c *Client) ListFolders(ctx context.Context) ([]vocab.Folder, error) {
	var folders []vocab.Folder
	if err := c.do(ctx, http.MethodGet, "/folders", nil, &folders); err != nil {
		return nil, err
	}
	return nonNil(folders), nil
}

// CreateFolder creates a folder. Invalid names fail without a request.
func (c *Client) CreateFolder(ctx context.Context, name string) (vocab.Folder, error) {
	name, err := vocab.NormalizeFolderName(name)
	if err != nil {
		return vocab.Folder{}, err
	}
	var folder vocab.Folder
	body := map[string]string{"folderName": name}
	if err := c.do(ctx, http.MethodPost, "/folders", body, &folder); err != nil {
		return vocab.Folder{}, err
	}
	return folder, nil
}

// DeleteFolder deletes a folder and its words.
func (c *Client) DeleteFolder(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, folderPath(name), nil, nil)
}

// ListWords returns the folder's words in creation order.
func (c *Client) ListWords(ctx context.Context, folder string) ([]vocab.Word, error) {
	var words []vocab.Word
	if err := c.do(ctx, http.MethodGet, folderPath(folder, "words"), nil, &words); err != nil {
		return nil, err
	}
	return nonNil(words), nil
}

// AddWord adds a word. Incomplete pairs fail without a request.
func (c *Client) AddWord(ctx context.Context, folder string, in vocab.NewWord) (vocab.Word, error) {
	in, err := in.Normalize()
	if err != nil {
		return vocab.Word{}, err
	}
	var word vocab.Word
	if err := c.do(ctx, http.MethodPost, folderPath(folder, "words"), in, &word); err != nil {
		return vocab.Word{}, err
	}
	return word, nil
}

// DeleteWord deletes one word.
func (c *Client) DeleteWord(ctx context.Context, folder, wordID string) error {
	return c.do(ctx, http.MethodDelete, folderPath(folder, "words", wordID), nil, nil)
}

// SetFavorite sets a word's favorite flag and returns the folder's full word
// set as stored by the server.
func (c *Client) SetFavorite(ctx context.Context, folder, wordID string, favorite bool) ([]vocab.Word, error) {
	var payload struct {
		Words []vocab.Word `json:"words"`
	}
	body := map[string]bool{"isFavorite": favorite}
	if err := c.do(ctx, http.MethodPatch, folderPath(folder, "words", wordID, "favorite"), body, &payload); err != nil {
		return nil, err
	}
	return nonNil(payload.Words), nil
}

// Translate asks the server to translate text between "ko" and "ja".
func (c *Client) Translate(ctx context.Context, text, from, to string) (vocab.Translation, error) {
	if strings.TrimSpace(text) == "" {
		return vocab.Translation{}, vocab.Invalid("nothing to translate")
	}
	var out vocab.Translation
	body := map[string]string{"text": strings.TrimSpace(text), "from": from, "to": to}
	if err := c.do(ctx, http.MethodPost, "/translate", body, &out); err != nil {
		return vocab.Translation{}, err
	}
	return out, nil
}

func folderPath(name string, rest ...string) string {
	segments := append([]string{"folders", name}, rest...)
	return "/" + strings.Join(segments, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if c.token == "" {
		return fmt.Errorf("no api token configured: %w", vocab.ErrUnauthorized)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w: %w", err, vocab.ErrUpstream)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w: %w", err, vocab.ErrUpstream)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, kind: kindFor(resp.StatusCode)}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

// kindFor maps HTTP status codes back onto the error taxonomy.
func kindFor(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return vocab.ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return vocab.ErrInvalidInput
	case http.StatusNotFound:
		return vocab.ErrNotFound
	case http.StatusConflict:
		return vocab.ErrDuplicateName
	default:
		return vocab.ErrUpstream
	}
}

// IsStatus reports whether err is an API error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
