package growatt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anicoll/growatt-integration/pkg/hasher"
	"go.uber.org/zap"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

// Login authenticates against the portal. If the current session is still
// valid it returns true without a network call. The credentials are stored so
// the session guard can renew silently later.
//
// The portal signals the outcome in the response body: result == 1 is
// success, any other numeric result is a rejection carrying an optional msg,
// and a missing or non-numeric result is a malformed handshake.
func (c *Client) Login(ctx context.Context, username, password string) (bool, error) {
	if c.loggedIn && c.IsSessionValid() {
		return true, nil
	}

	c.username = username
	c.password = password

	form := url.Values{}
	form.Set("account", username)
	// The portal authenticates by passwordCrc; it requires the literal
	// password field to be present but empty.
	form.Set("password", "")
	form.Set("validateCode", "")
	form.Set("isReadPact", "1")
	form.Set("passwordCrc", hasher.MD5Hash(password))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return false, &RequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &RequestError{StatusCode: resp.StatusCode}
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, &MalformedJSONError{Err: err}
	}

	var result float64
	raw, ok := body["result"]
	if !ok || json.Unmarshal(raw, &result) != nil {
		c.clearSession()
		return false, &InvalidResponseError{Message: "missing or non-numeric result field"}
	}

	if result != 1 {
		msg := "Unknown error"
		if rawMsg, ok := body["msg"]; ok {
			_ = json.Unmarshal(rawMsg, &msg)
		}
		c.logger.Warn("login rejected by portal", zap.String("msg", msg))
		c.clearSession()
		return false, &AuthError{Message: msg}
	}

	c.loggedIn = true
	c.sessionExpiry = time.Now().Add(c.sessionDuration)
	if rawToken, ok := body["token"]; ok {
		var token string
		if json.Unmarshal(rawToken, &token) == nil {
			c.token = token
		}
	}
	c.logger.Debug("login successful", zap.String("username", username), zap.Time("session_expiry", c.sessionExpiry))
	return true, nil
}

// Logout is best effort. The portal confirms a logout with an HTTP 302; any
// other status means it did not take effect and is reported as false, not as
// an error, leaving the session state logged in. The stored token is left in
// place either way.
func (c *Client) Logout(ctx context.Context) (bool, error) {
	if !c.loggedIn {
		c.logger.Debug("no active session to log out from")
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/logout", nil)
	if err != nil {
		return false, &RequestError{Err: err}
	}
	// The logout route behaves differently for non-browser requests, so the
	// header fingerprint has to look like a browser navigation.
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Referer", c.baseURL+"/index")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		c.logger.Warn("logout returned unexpected status code", zap.Int("status", resp.StatusCode))
		return false, nil
	}

	c.loggedIn = false
	c.sessionExpiry = time.Time{}
	c.logger.Debug("logged out")
	return true, nil
}

func (c *Client) clearSession() {
	c.loggedIn = false
	c.sessionExpiry = time.Time{}
}
