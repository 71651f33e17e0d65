package registry

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/npmregistry/pkg/buildinfo"
	"github.com/matzehuels/npmregistry/pkg/errors"
	"github.com/matzehuels/npmregistry/pkg/httputil"
)

// Config configures a [Client]. The zero value talks to [DefaultMirror]
// without credentials.
type Config struct {
	// Registry is an explicit registry base URL. It takes precedence over
	// Mirror.
	Registry string

	// Mirror names an entry of the mirror table.
	Mirror string

	// User and Password enable HTTP Basic authentication. Both are required.
	User     string
	Password string

	// Timeout bounds each request. Zero means [httputil.DefaultTimeout].
	Timeout time.Duration

	// RateLimit caps outbound requests per second; Burst sizes the bucket.
	// Zero disables limiting.
	RateLimit float64
	Burst     int

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Schema overrides the extended document field layout.
	Schema *Schema

	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client

	// Logger receives debug logs. Nil discards them.
	Logger *log.Logger
}

// fetcher is the transport the resolver needs.
type fetcher interface {
	GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error
}

// Client is an npm registry client. It is immutable after [New] and safe for
// concurrent use.
type Client struct {
	api     string
	creds   Credentials
	session string
	schema  Schema
	logger  *log.Logger
	http    fetcher

	// Packages resolves package documents.
	Packages *PackagesService
}

// New creates a Client. The registry is chosen from cfg.Registry, then
// cfg.Mirror, then [DefaultMirror].
func New(cfg Config) (*Client, error) {
	api, err := selectRegistry(cfg)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	schema := DefaultSchema()
	if cfg.Schema != nil {
		schema = *cfg.Schema
	}
	creds, _ := NewCredentials(cfg.User, cfg.Password)
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = buildinfo.UserAgent()
	}

	c := &Client{
		api:     api,
		creds:   creds,
		session: uuid.NewString(),
		schema:  schema,
		logger:  logger,
	}

	headers := map[string]string{
		"User-Agent":  userAgent,
		"Npm-Session": c.session,
	}
	if creds.Valid() {
		headers["Authorization"] = creds.Header()
	}
	c.http = httputil.NewClient(httputil.Options{
		HTTPClient: cfg.HTTPClient,
		Headers:    headers,
		Timeout:    cfg.Timeout,
		RateLimit:  cfg.RateLimit,
		Burst:      cfg.Burst,
		Logger:     logger,
	})
	c.Packages = &PackagesService{client: c}

	logger.Debug("registry client", "api", api, "auth", creds.Valid(), "session", c.session)
	return c, nil
}

func selectRegistry(cfg Config) (string, error) {
	if cfg.Registry != "" {
		if err := errors.ValidateURL(cfg.Registry); err != nil {
			return "", err
		}
		return cfg.Registry, nil
	}
	if cfg.Mirror != "" {
		u, ok := MirrorURL(cfg.Mirror)
		if !ok {
			return "", errors.New(errors.ErrCodeInvalidConfig, "unknown mirror %q (known: %s)", cfg.Mirror, strings.Join(MirrorNames(), ", "))
		}
		return u, nil
	}
	return DefaultRegistryURL(), nil
}

// API returns the registry base URL, exactly as configured.
func (c *Client) API() string { return c.api }

// Mirrors returns the base URLs of every known mirror.
func (c *Client) Mirrors() []string {
	names := MirrorNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = mirrors[n]
	}
	return out
}

// Authorization returns the Authorization header sent with each request.
// It reports false unless both a user and a password were configured.
func (c *Client) Authorization() (string, bool) {
	return c.creds.Header(), c.creds.Valid()
}

// Session returns the Npm-Session identifier of this client.
func (c *Client) Session() string { return c.session }

func (c *Client) packageURL(spec Specifier) string {
	return strings.TrimRight(c.api, "/") + "/" + spec.escapedName()
}
