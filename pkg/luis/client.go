// Package luis is a client for LUIS-style natural language understanding endpoints.
//
// A Client sends an utterance as the "q" query parameter to a published app URL and
// returns the recognized intents and entities:
//
//	c, err := luis.New("https://westus.api.cognitive.microsoft.com/luis/v2.0/apps/<id>?subscription-key=<key>&q=")
//	if err != nil {
//		return err
//	}
//	res, err := c.Analyze(ctx, "set an alarm for tuesday")
//	if err != nil {
//		return err
//	}
//	if best := res.BestIntent(); best != nil {
//		fmt.Println(best.Name)
//	}
package luis

import (
	"context"
	stdhttp "net/http"
	"strings"
	"time"

	"luis-client/internal/common/errors"
	"luis-client/internal/common/http"
	"luis-client/internal/common/logger"
)

// Response is what a Transport returns: status, fully read body and final URL.
type Response = http.Response

// Transport performs the GET request. baseURL may already carry query parameters;
// params are merged into them.
type Transport interface {
	Get(ctx context.Context, baseURL string, params map[string]string) (*Response, error)
}

// Logger receives debug diagnostics about requests and responses.
type Logger = logger.Logger

// Client talks to one LUIS app endpoint. It is safe for concurrent use.
type Client struct {
	url       string
	transport Transport
	logger    Logger
}

type options struct {
	transport  Transport
	timeout    time.Duration
	httpClient *stdhttp.Client
	logger     Logger
}

// Option configures a Client.
type Option func(*options)

// WithTransport replaces the default net/http transport.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithTimeout sets the request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHTTPClient makes the default transport use hc.
func WithHTTPClient(hc *stdhttp.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Client for the app URL. The URL is required. Every "&q=" in it is
// removed, since the publish page hands out URLs ending in an empty q parameter.
func New(url string, opts ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.NewConfigurationError("no url specified")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	transport := o.transport
	if transport == nil {
		if o.httpClient != nil {
			transport = http.NewClientWithHTTP(o.httpClient)
		} else {
			transport = http.NewClient(o.timeout)
		}
	}

	log := o.logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Client{
		url:       strings.ReplaceAll(url, "&q=", ""),
		transport: transport,
		logger:    log,
	}, nil
}

// URL returns the sanitized endpoint URL.
func (c *Client) URL() string {
	return c.url
}

// Analyze sends text to the app and parses the response. Any transport failure or
// non-2xx status is returned as a request error; nothing is retried.
func (c *Client) Analyze(ctx context.Context, text string) (*Result, error) {
	c.logger.Debug("Sending text to LUIS app", map[string]interface{}{
		"text": text,
		"url":  c.url,
	})

	resp, err := c.transport.Get(ctx, c.url, map[string]string{"q": text})
	if err != nil {
		return nil, errors.NewTransportError(c.url, err)
	}

	c.logger.Debug("LUIS returned response", map[string]interface{}{
		"requestUrl": resp.URL,
		"status":     resp.StatusCode,
		"body":       string(resp.Body),
	})

	if !resp.IsSuccess() {
		return nil, errors.NewStatusError(c.url, resp.StatusCode, string(resp.Body))
	}

	var body map[string]interface{}
	if err := resp.JSON(&body); err != nil {
		return nil, errors.NewMalformedResponseError("response body is not a JSON object: "+err.Error(), err)
	}
	if body == nil {
		return nil, errors.NewMalformedResponseError("response body is JSON null", nil)
	}

	result, err := ResultFromJSONWithLogger(body, c.logger)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Returning result", map[string]interface{}{"result": result.String()})
	return result, nil
}
