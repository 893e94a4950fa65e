package client

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/ledger"
	"github.com/charlie0129/unitconv/pkg/session"
	"github.com/charlie0129/unitconv/pkg/types"
)

// getJSON GETs path and decodes the JSON response into T.
func getJSON[T any](c *Client, path, what string) (T, error) {
	var v T
	ret, err := c.Get(path)
	if err != nil {
		return v, pkgerrors.Wrapf(err, "failed to get %s", what)
	}
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return v, pkgerrors.Wrapf(err, "failed to unmarshal %s", what)
	}
	return v, nil
}

// postJSON POSTs payload as JSON and decodes the JSON response into T.
func postJSON[T any](c *Client, path string, payload any, what string) (T, error) {
	var v T
	data := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return v, err
		}
		data = string(b)
	}
	ret, err := c.Post(path, data)
	if err != nil {
		return v, pkgerrors.Wrapf(err, "failed to %s", what)
	}
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return v, pkgerrors.Wrapf(err, "failed to unmarshal response of %s", what)
	}
	return v, nil
}

func sessionPath(id string) string {
	return "/sessions/" + url.PathEscape(id)
}

func (c *Client) GetVersion() (string, error) {
	return getJSON[string](c, "/version", "version")
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	conf, err := getJSON[config.RawFileConfig](c, "/config", "config")
	if err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Client) GetCategories() ([]types.CategoryInfo, error) {
	return getJSON[[]types.CategoryInfo](c, "/categories", "categories")
}

func (c *Client) GetConversions(category string) ([]catalog.Conversion, error) {
	return getJSON[[]catalog.Conversion](c, "/categories/"+url.PathEscape(category)+"/conversions", "conversions")
}

func (c *Client) GetReference(category string) (*types.ReferenceResponse, error) {
	ref, err := getJSON[types.ReferenceResponse](c, "/categories/"+url.PathEscape(category)+"/reference", "quick reference")
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *Client) GetFunFact() (string, error) {
	return getJSON[string](c, "/fun-fact", "fun fact")
}

func (c *Client) Convert(req types.ConvertRequest) (*types.ConvertResponse, error) {
	resp, err := postJSON[types.ConvertResponse](c, "/convert", req, "convert")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateSession() (*session.Info, error) {
	info, err := postJSON[session.Info](c, "/sessions", nil, "create session")
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) ListSessions() ([]session.Info, error) {
	return getJSON[[]session.Info](c, "/sessions", "sessions")
}

func (c *Client) GetSession(id string) (*ledger.Snapshot, error) {
	snap, err := getJSON[ledger.Snapshot](c, sessionPath(id), "session")
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) DeleteSession(id string) error {
	if _, err := c.Delete(sessionPath(id)); err != nil {
		return pkgerrors.Wrapf(err, "failed to delete session %s", id)
	}
	return nil
}

// GetHistory returns the full history of a session in insertion order.
func (c *Client) GetHistory(id string) ([]string, error) {
	resp, err := getJSON[types.HistoryResponse](c, sessionPath(id)+"/history", "history")
	return resp.Entries, err
}

// GetRecentHistory returns the last n entries of a session's history, newest
// first. n == 0 uses the count configured on the daemon.
func (c *Client) GetRecentHistory(id string, n int) ([]string, error) {
	resp, err := getJSON[types.HistoryResponse](c, sessionPath(id)+"/history?recent="+strconv.Itoa(n), "recent history")
	return resp.Entries, err
}

func (c *Client) AppendHistory(id, entry string) error {
	_, err := postJSON[string](c, sessionPath(id)+"/history", types.EntryRequest{Entry: entry}, "append history")
	return err
}

func (c *Client) ExportHistory(id string) (string, error) {
	ret, err := c.Get(sessionPath(id) + "/history/export")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to export history")
	}
	return ret, nil
}

// ImportHistory replaces the history of a session with the lines of text.
func (c *Client) ImportHistory(id, text string) (int, error) {
	ret, err := c.send(http.MethodPut, sessionPath(id)+"/history/import", "text/plain; charset=utf-8", text)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to import history")
	}
	var resp types.ImportResponse
	if err := json.Unmarshal([]byte(ret), &resp); err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to unmarshal import response")
	}
	return resp.Count, nil
}

func (c *Client) GetFavorites(id string) ([]string, error) {
	resp, err := getJSON[types.HistoryResponse](c, sessionPath(id)+"/favorites", "favorites")
	return resp.Entries, err
}

func (c *Client) AddFavorite(id, entry string) (ledger.Notice, error) {
	return postJSON[ledger.Notice](c, sessionPath(id)+"/favorites", types.EntryRequest{Entry: entry}, "add favorite")
}

func (c *Client) GetTheme(id string) (ledger.Theme, error) {
	resp, err := getJSON[types.ThemeResponse](c, sessionPath(id)+"/theme", "theme")
	return resp.Theme, err
}

func (c *Client) ToggleTheme(id string) (ledger.Theme, error) {
	resp, err := postJSON[types.ThemeResponse](c, sessionPath(id)+"/theme/toggle", nil, "toggle theme")
	return resp.Theme, err
}

func (c *Client) SubmitFeedback(id, text string) (ledger.Notice, error) {
	return postJSON[ledger.Notice](c, sessionPath(id)+"/feedback", types.FeedbackRequest{Text: text}, "submit feedback")
}
