package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rockethook/pkg/domain"
	"github.com/m-mizutani/rockethook/pkg/domain/model"
)

const notAPIResponseMessage = "Not an API response, check your token."

// Webhook posts messages to a Rocket.Chat incoming webhook
// (Administration > Integrations). Scheme, host and token are fixed at
// construction.
type Webhook struct {
	scheme     string
	host       string
	token      string
	httpClient *http.Client
	timeout    time.Duration
}

type WebhookOption func(*Webhook)

// WithHTTPClient replaces the HTTP client used for posting. A nil client
// keeps the default one.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(w *Webhook) {
		if client != nil {
			w.httpClient = client
		}
	}
}

// WithTimeout limits the time of a single post. By default there is no limit.
// It applies to the client given by WithHTTPClient as well, in any order; the
// caller's client is copied, not modified.
func WithTimeout(timeout time.Duration) WebhookOption {
	return func(w *Webhook) {
		w.timeout = timeout
	}
}

// NewWebhook creates a Webhook for serverURL, e.g.
// "https://rocketchat.example.com". The URL is not validated; a bad one
// shows up as a transport error on Post.
func NewWebhook(serverURL, token string, opts ...WebhookOption) *Webhook {
	scheme, host := parseServerURL(serverURL)
	w := &Webhook{
		scheme:     scheme,
		host:       host,
		token:      token,
		httpClient: &http.Client{
			// A redirect is reported as an error status, not followed
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.timeout > 0 {
		client := *w.httpClient
		client.Timeout = w.timeout
		w.httpClient = &client
	}

	return w
}

func (w *Webhook) Scheme() string { return w.scheme }
func (w *Webhook) Host() string   { return w.host }

// QuickPost sends a plain text message
func (w *Webhook) QuickPost(ctx context.Context, text string) error {
	return w.Post(ctx, model.NewMessage(text))
}

// Post sends msg to the server. It makes exactly one attempt. A server-side
// rejection is returned as *domain.WebhookError.
func (w *Webhook) Post(ctx context.Context, msg *model.Message) error {
	logger := ctxlog.From(ctx)

	if msg == nil {
		return goerr.Wrap(domain.ErrInvalidMessage, "message is nil")
	}

	jsonData, err := json.Marshal(msg.Payload())
	if err != nil {
		return goerr.Wrap(err, "failed to marshal webhook payload")
	}
	body := url.Values{"payload": {string(jsonData)}}.Encode()

	logger.Debug("Sending to Rocket.Chat",
		slog.String("webhook_url", maskWebhookURL(w.endpoint())),
		slog.String("payload", string(jsonData)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint(), strings.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("host", w.host))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// One connection per post
	req.Close = true

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request", goerr.V("host", w.host))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read response",
			goerr.V("host", w.host),
			goerr.V("status", resp.StatusCode),
		)
	}

	logger.Debug("Received response from Rocket.Chat",
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(respBody)),
	)

	if err := checkResponse(resp.StatusCode, respBody); err != nil {
		return goerr.Wrap(err, "webhook request failed",
			goerr.V("host", w.host),
			goerr.V("status", resp.StatusCode),
		)
	}

	return nil
}

// endpoint embeds the token as is, without escaping
func (w *Webhook) endpoint() string {
	return w.scheme + "://" + w.host + "/hooks/" + w.token
}

// checkResponse interprets a webhook response. The body must be JSON whatever
// the status is; a non-200 status is an error described by the body.
func checkResponse(status int, body []byte) error {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return domain.NewWebhookError(status, notAPIResponseMessage, domain.ErrNotAPIResponse)
	}

	if status == http.StatusOK {
		return nil
	}

	// Rocket.Chat puts the reason in "message" for API errors and in "error"
	// for integration errors such as an unknown token.
	if obj, ok := data.(map[string]any); ok {
		for _, key := range []string{"message", "error"} {
			if v, ok := obj[key]; ok && v != nil {
				return domain.NewWebhookError(status, fmt.Sprint(v), nil)
			}
		}
	}

	return domain.NewWebhookError(status, domain.ErrMalformedResponse.Error(), domain.ErrMalformedResponse)
}

// parseServerURL returns scheme and host[:port] of serverURL. Without an
// authority part, the first path segment is taken as host.
func parseServerURL(serverURL string) (string, string) {
	scheme := "http"
	var host string

	parsed, err := url.Parse(serverURL)
	if err == nil {
		if parsed.Scheme == "https" {
			scheme = "https"
		}
		host = parsed.Host
	}

	if host == "" {
		// url.Parse fails on "host:port" without scheme
		rest := serverURL
		if err == nil && parsed.Opaque == "" {
			rest = parsed.Path
		}
		host = strings.Split(rest, "/")[0]
	}

	return scheme, host
}

// maskWebhookURL masks the token part of a webhook URL for logging
func maskWebhookURL(webhookURL string) string {
	idx := strings.Index(webhookURL, "/hooks/")
	if idx < 0 {
		return "***"
	}

	prefix := webhookURL[:idx+len("/hooks/")]
	parts := strings.Split(webhookURL[len(prefix):], "/")
	for i := range parts {
		if len(parts[i]) > 4 {
			parts[i] = parts[i][:2] + "***"
		} else {
			parts[i] = "***"
		}
	}
	return prefix + strings.Join(parts, "/")
}
