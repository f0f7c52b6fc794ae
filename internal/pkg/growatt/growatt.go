// Package growatt implements a client for the Growatt web portal. The portal
// exposes no formal API: authentication is cookie based, responses arrive in
// ad-hoc JSON shapes and success is signalled inconsistently, so every
// endpoint method funnels through a single validated request pipeline that
// re-establishes the session when needed and normalises failures into one
// error taxonomy.
package growatt

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/anicoll/growatt-integration/internal/pkg/config"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the primary portal host.
	DefaultBaseURL = "https://server.growatt.com"
	// AlternateBaseURL is the secondary portal host some accounts live on.
	AlternateBaseURL = "https://openapi.growatt.com"

	// DefaultSessionDuration is how long a login is assumed to stay valid.
	DefaultSessionDuration = 30 * time.Minute

	requestTimeout = 30 * time.Second
)

// Client talks to one Growatt account. The zero value is not usable; create
// one with New or NewFromConfig.
//
// A Client owns its session state and cookie store exclusively. Credentials
// passed to Login are kept in memory so an expired session can be renewed
// silently mid-operation; callers that do not want that trade-off should
// construct a fresh Client per login. Calls are expected to be sequential:
// the Client does no internal locking.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	username string
	password string

	loggedIn        bool
	token           string
	sessionExpiry   time.Time
	sessionDuration time.Duration
}

// Option configures a Client at construction.
type Option func(*Client)

// WithBaseURL overrides the portal host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithAlternateURL points the client at the secondary portal host.
func WithAlternateURL() Option {
	return func(c *Client) {
		c.baseURL = AlternateBaseURL
	}
}

// WithSessionDuration overrides how long a successful login is trusted before
// the client re-authenticates.
func WithSessionDuration(d time.Duration) Option {
	return func(c *Client) {
		c.sessionDuration = d
	}
}

// WithCredentials stores credentials without logging in; the session guard
// will use them on the first authenticated call.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithHTTPClient replaces the underlying HTTP client. The replacement should
// carry a cookie jar; the portal session rides on cookies.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL:         DefaultBaseURL,
		sessionDuration: DefaultSessionDuration,
		logger:          zap.L(),
		http: &http.Client{
			Jar:     jar,
			Timeout: requestTimeout,
			// Logout signals success with a 302; following it would hide the
			// only success signal the portal gives us.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a Client from environment-derived configuration.
func NewFromConfig(cfg *config.GrowattConfig) *Client {
	return New(
		WithBaseURL(cfg.BaseURL),
		WithSessionDuration(cfg.SessionDuration()),
		WithCredentials(cfg.Username, cfg.Password),
	)
}

// IsLoggedIn reports the login flag as last set by Login or Logout. Expiry is
// checked lazily by operations, not reflected here.
func (c *Client) IsLoggedIn() bool {
	return c.loggedIn
}

// Token returns the token from the last successful login, if the portal sent
// one. Its absence is not an error.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the portal host this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}
