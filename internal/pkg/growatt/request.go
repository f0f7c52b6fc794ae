package growatt

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// unwrapKind selects how a syntactically valid JSON response is checked for
// the portal's "empty" sentinel, which it uses interchangeably with a real
// error. Each endpoint picks its own variant; there is no global rule.
type unwrapKind int

const (
	// top-level value must be a non-empty array
	unwrapArray unwrapKind = iota
	// value must carry the named field chain (usually just "obj"), and the
	// innermost value must not be null, {} or []
	unwrapObject
	// top-level value itself must not be null or an empty object
	unwrapBare
)

type unwrap struct {
	kind unwrapKind
	path []string
}

func arrayResult() unwrap {
	return unwrap{kind: unwrapArray}
}

func objectResult(path ...string) unwrap {
	if len(path) == 0 {
		path = []string{"obj"}
	}
	return unwrap{kind: unwrapObject, path: path}
}

func bareResult() unwrap {
	return unwrap{kind: unwrapBare}
}

// apply validates body against the strategy and returns the unwrapped value.
func (u unwrap) apply(body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, &MalformedJSONError{Err: errInvalidJSON(body)}
	}

	switch u.kind {
	case unwrapArray:
		var arr []json.RawMessage
		if err := json.Unmarshal(body, &arr); err != nil || len(arr) == 0 {
			return nil, &InvalidResponseError{Message: "empty response"}
		}
		return json.RawMessage(body), nil

	case unwrapObject:
		current := json.RawMessage(body)
		for _, field := range u.path {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(current, &obj); err != nil {
				return nil, &InvalidResponseError{Message: "missing " + field + " field"}
			}
			next, ok := obj[field]
			if !ok {
				return nil, &InvalidResponseError{Message: "missing " + field + " field"}
			}
			current = next
		}
		if isEmptyValue(current) {
			return nil, &InvalidResponseError{Message: "empty response"}
		}
		return current, nil

	default: // unwrapBare
		raw := json.RawMessage(body)
		if isEmptyValue(raw) {
			return nil, &InvalidResponseError{Message: "empty response"}
		}
		return raw, nil
	}
}

// isEmptyValue reports whether raw is the portal's empty sentinel: null, an
// empty object or an empty array.
func isEmptyValue(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	switch trimmed {
	case "", "null", "{}", "[]":
		return true
	}
	// tolerate whitespace inside the braces
	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) == nil && len(obj) == 0 {
			return true
		}
	}
	if strings.HasPrefix(trimmed, "[") {
		var arr []json.RawMessage
		if json.Unmarshal(raw, &arr) == nil && len(arr) == 0 {
			return true
		}
	}
	return false
}

type jsonError string

func (e jsonError) Error() string { return string(e) }

func errInvalidJSON(body []byte) error {
	const max = 64
	if len(body) > max {
		body = body[:max]
	}
	return jsonError("invalid json near " + string(bytes.ToValidUTF8(body, nil)))
}

// call is the single entry point every authenticated endpoint funnels
// through: ensure a session, issue the request, validate the status, parse
// the JSON and apply the per-endpoint unwrap strategy.
func (c *Client) call(ctx context.Context, method, path string, form url.Values, u unwrap) (json.RawMessage, error) {
	return c.callHeaders(ctx, method, path, form, nil, u)
}

func (c *Client) callHeaders(ctx context.Context, method, path string, form url.Values, header http.Header, u unwrap) (json.RawMessage, error) {
	if err := c.ensureSession(ctx); err != nil {
		return nil, err
	}
	return c.doRequest(ctx, method, path, form, header, u)
}

func (c *Client) doRequest(ctx context.Context, method, path string, form url.Values, header http.Header, u unwrap) (json.RawMessage, error) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{StatusCode: resp.StatusCode}
	}

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &MalformedJSONError{Err: err}
	}

	return u.apply(payload)
}

// decode maps an unwrapped value into a typed shape. Required fields missing
// or mismatched types surface as MalformedJSONError.
func decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &MalformedJSONError{Err: err}
	}
	return out, nil
}
