package growatt

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// IsSessionValid reports whether the session expiry is set and still in the
// future. Purely a clock comparison, no I/O.
func (c *Client) IsSessionValid() bool {
	return !c.sessionExpiry.IsZero() && time.Now().Before(c.sessionExpiry)
}

// ensureSession is the mandatory first step of every authenticated operation.
// If the session is missing or expired it re-runs Login with the stored
// credentials; with no credentials stored it fails with ErrNotAuthenticated
// before any network call. Renewal failures propagate unchanged.
func (c *Client) ensureSession(ctx context.Context) error {
	if c.loggedIn && c.IsSessionValid() {
		return nil
	}
	if c.username == "" {
		return ErrNotAuthenticated
	}
	c.logger.Debug("session missing or expired, renewing", zap.String("username", c.username))
	_, err := c.Login(ctx, c.username, c.password)
	return err
}
