// Package apiclient talks to the charity's REST API. Every failure is
// returned as an *apierr.Error so callers can switch on its Kind.
package apiclient

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/apierr"
	"github.com/octabyte/emaar-web/models"
	"github.com/octabyte/emaar-web/otel"
	"github.com/octabyte/emaar-web/otel/metrics"
	reqctx "github.com/octabyte/emaar-web/utils/context"
	"github.com/octabyte/emaar-web/utils/logger"
)

const (
	clientName      = "emaar-api"
	requestIDHeader = "X-Request-ID"
)

type Config struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// ServiceName names the tracer spans are created with.
	ServiceName string `mapstructure:"-"`
}

type Client struct {
	http        *resty.Client
	baseURL     string
	serviceName string
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "emaar-web"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	http := otel.NewTracedRestyClient(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{
		http:        http,
		baseURL:     baseURL,
		serviceName: serviceName,
	}
}

// call describes one upstream request.
type call struct {
	op     string
	method string
	path   string
	token  string
	build  func(r *resty.Request)
}

// do runs the call and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	start := time.Now()
	ctx, finish := otel.StartHTTPSpan(ctx, c.serviceName, clientName, cl.op, cl.method, c.baseURL, cl.path)

	req := c.http.R().SetContext(ctx)
	if id := reqctx.GetRequestIDFromContext(ctx); id != "" {
		req.SetHeader(requestIDHeader, id)
	}
	if token := bearer(cl.token); token != "" {
		req.SetAuthToken(token)
	}
	if cl.build != nil {
		cl.build(req)
	}

	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		finish(0, err)
		metrics.RecordUpstreamCall(ctx, cl.op, time.Since(start), false)
		logger.LogWarn("upstream call failed",
			zap.String("op", cl.op), zap.String("path", cl.path), zap.Error(err))
		return nil, apierr.Classify(0, nil, err)
	}

	status := resp.StatusCode()
	body := resp.Body()
	if status < 200 || status > 299 {
		apiErr := apierr.Classify(status, body, nil)
		finish(status, apiErr)
		metrics.RecordUpstreamCall(ctx, cl.op, time.Since(start), false)
		logger.LogWarn("upstream call rejected",
			zap.String("op", cl.op), zap.String("path", cl.path),
			zap.Int("status", status), zap.String("kind", string(apiErr.Kind)))
		return nil, apiErr
	}

	// Some endpoints answer 200 with status=false.
	if st := gjson.GetBytes(body, "status"); st.Type == gjson.False {
		apiErr := apierr.Classify(status, body, nil)
		apiErr.Kind = apierr.KindUnknown
		finish(status, apiErr)
		metrics.RecordUpstreamCall(ctx, cl.op, time.Since(start), false)
		return nil, apiErr
	}

	finish(status, nil)
	metrics.RecordUpstreamCall(ctx, cl.op, time.Since(start), true)
	return body, nil
}

func bearer(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func malformed(op string, err error) *apierr.Error {
	return &apierr.Error{Kind: apierr.KindUnknown, Message: "malformed " + op + " response", Err: err}
}

// decodeData unmarshals the "data" member, or the whole body when the
// endpoint does not wrap its payload.
func decodeData[T any](op string, body []byte) (T, error) {
	var out T
	raw := body
	if data := gjson.GetBytes(body, "data"); data.Exists() {
		raw = []byte(data.Raw)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, malformed(op, err)
	}
	return out, nil
}

func decodeList[T any](op string, body []byte) (models.Envelope[[]T], error) {
	var env models.Envelope[[]T]
	if err := json.Unmarshal(body, &env); err != nil {
		return env, malformed(op, err)
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	return env, nil
}

// queryParams flattens a ListQuery. Zero values are left out.
func queryParams(q models.ListQuery) map[string]string {
	params := make(map[string]string, len(q.Filters)+3)
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.PerPage > 0 {
		params["per_page"] = strconv.Itoa(q.PerPage)
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	for k, v := range q.Filters {
		if v != "" {
			params[k] = v
		}
	}
	return params
}

func idPath(prefix string, id uint64, suffix string) string {
	return prefix + "/" + strconv.FormatUint(id, 10) + suffix
}
