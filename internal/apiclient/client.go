// Package apiclient talks to the sync server over HTTP. Client satisfies
// cloudsync.Remote.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/brk3/lifemanager/internal/cloudsync"
	"github.com/brk3/lifemanager/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    http.DefaultClient,
	}
}

// StatusError is a non-success reply from the server.
type StatusError struct {
	Op     string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

func (c *Client) syncURL(collection, id string) string {
	u := c.BaseURL + "/sync/" + url.PathEscape(id)
	if collection != "" {
		u += "?collection=" + url.QueryEscape(collection)
	}
	return u
}

func (c *Client) Save(ctx context.Context, collection, id string, doc cloudsync.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.syncURL(collection, id), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return &StatusError{Op: "save " + id, Code: res.StatusCode, Status: res.Status}
	}
	return nil
}

// Load returns nil without error when the server has no document for id.
func (c *Client) Load(ctx context.Context, collection, id string) (*cloudsync.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.syncURL(collection, id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, &StatusError{Op: "load " + id, Code: res.StatusCode, Status: res.Status}
	}
	var doc cloudsync.Document
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Version(ctx context.Context) (*versioninfo.VersionInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/version", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "version", Code: res.StatusCode, Status: res.Status}
	}
	var out versioninfo.VersionInfo
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ cloudsync.Remote = (*Client)(nil)
