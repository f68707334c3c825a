package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dynalist/internal/errors"
)

// Endpoint is the base URL of the Dynalist v1 API.
const Endpoint = "https://dynalist.io/api/v1/"

// File is one entry of the flat file/list response. Children are IDs of
// nested files and only folders carry them.
type File struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Children []string `json:"children,omitempty"`
}

// FileList is the file/list response: every document and folder in the
// account plus the ID of the root folder.
type FileList struct {
	RootFileID string `json:"root_file_id"`
	Files      []File `json:"files"`
}

// Node is one outline node of a doc/read response.
type Node struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Note      string   `json:"note,omitempty"`
	Checked   bool     `json:"checked,omitempty"`
	Checkbox  bool     `json:"checkbox,omitempty"`
	Color     int      `json:"color,omitempty"`
	Numbered  bool     `json:"numbered,omitempty"`
	Collapsed bool     `json:"collapsed,omitempty"`
	Children  []string `json:"children,omitempty"`
}

// Document is a doc/read response: a title plus a flat node table rooted at
// the node with ID "root".
type Document struct {
	Title string `json:"title"`
	Nodes []Node `json:"nodes"`
}

// Client is a narrow interface over the Dynalist API covering only what the
// tool needs. Keep it small so the fake stays trivial.
type Client interface {
	// ListFiles fetches every document and folder in the account.
	ListFiles(ctx context.Context) (*FileList, error)

	// ReadDocument fetches the full content of one document.
	ReadDocument(ctx context.Context, documentID string) (*Document, error)

	// CheckForUpdates reports the current version number of each document.
	CheckForUpdates(ctx context.Context, documentIDs []string) (map[string]int64, error)
}

// HTTPClient talks to the real Dynalist API.
type HTTPClient struct {
	endpoint string
	token    string
	hc       *http.Client
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithEndpoint overrides the API base URL, mainly for tests.
func WithEndpoint(url string) Option {
	return func(c *HTTPClient) { c.endpoint = url }
}

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// New creates an HTTPClient authenticated with the given token.
func New(token string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		endpoint: Endpoint,
		token:    token,
		hc:       &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// status is the envelope every API response carries. A _code other than
// "ok" means the call failed even when HTTP reported 200.
type status struct {
	Code string `json:"_code"`
	Msg  string `json:"_msg"`
}

func (c *HTTPClient) post(ctx context.Context, method string, body map[string]any, out any) error {
	body["token"] = c.token

	data, err := json.Marshal(body)
	if err != nil {
		return errors.NewInternal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+method, bytes.NewReader(data))
	if err != nil {
		return errors.NewInternal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.NewFetchFailed(method, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewFetchFailed(method, err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		return errors.NewFetchFailed(method, fmt.Sprintf("unexpected status %s", resp.Status))
	}

	var st status
	if err := json.Unmarshal(raw, &st); err != nil {
		return errors.NewFetchFailed(method, err.Error())
	}
	if !strings.EqualFold(st.Code, "ok") {
		msg := st.Msg
		if msg == "" {
			msg = st.Code
		}
		return errors.NewFetchFailed(method, msg)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.NewFetchFailed(method, err.Error())
	}
	return nil
}

// ListFiles implements Client.
func (c *HTTPClient) ListFiles(ctx context.Context) (*FileList, error) {
	var out FileList
	if err := c.post(ctx, "file/list", map[string]any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReadDocument implements Client.
func (c *HTTPClient) ReadDocument(ctx context.Context, documentID string) (*Document, error) {
	var out Document
	body := map[string]any{"file_id": documentID}
	if err := c.post(ctx, "doc/read", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckForUpdates implements Client.
func (c *HTTPClient) CheckForUpdates(ctx context.Context, documentIDs []string) (map[string]int64, error) {
	var out struct {
		Versions map[string]int64 `json:"versions"`
	}
	body := map[string]any{"file_ids": documentIDs}
	if err := c.post(ctx, "doc/check_for_updates", body, &out); err != nil {
		return nil, err
	}
	return out.Versions, nil
}
