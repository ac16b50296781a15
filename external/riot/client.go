package riot

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL       = "https://{region}.api.pvp.net"
	defaultStaticBaseURL = "https://global.api.pvp.net"
	defaultTimeout       = 10 * time.Second
	maxResponseBodySize  = 8 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`api_key=[^&\s"']+`)

type ClientConfig struct {
	// BaseURL may contain a {region} placeholder that is replaced by the
	// lowercased region of each call.
	BaseURL       string
	StaticBaseURL string
	APIKey        string
	Timeout       time.Duration
	HTTPClient    *fasthttp.Client
	Logger        *logging.Logger
	Now           func() time.Time
}

// Client performs exactly one HTTP round trip per Invoke. Retry, backoff and
// rate limiting belong to the caller.
type Client struct {
	http          *fasthttp.Client
	baseURL       string
	staticBaseURL string
	apiKey        string
	timeout       time.Duration
	validate      *validator.Validate
	logger        *logging.Logger
	now           func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "lol-stats",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	staticBaseURL := strings.TrimRight(strings.TrimSpace(cfg.StaticBaseURL), "/")
	if staticBaseURL == "" {
		staticBaseURL = defaultStaticBaseURL
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		http:          httpClient,
		baseURL:       baseURL,
		staticBaseURL: staticBaseURL,
		apiKey:        strings.TrimSpace(cfg.APIKey),
		timeout:       timeout,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		logger:        logger.Named("riot"),
		now:           now,
	}
}

// Invoke executes op and returns its typed Result. Every error is an
// *APIError carrying a Class.
func (c *Client) Invoke(ctx context.Context, op Operation) (Result, error) {
	if op == nil {
		return nil, newCauseError(nil, ClassClientError, crerr.New("operation is required"), "invoke")
	}
	if err := c.validate.Struct(op); err != nil {
		return nil, newCauseError(op, ClassClientError, err, "invalid %s parameters", op.Kind())
	}

	switch o := op.(type) {
	case GetSummonerByName:
		var out SummonerMap
		path := "/api/lol/{region}/v1.4/summoner/by-name/" + url.PathEscape(o.Name)
		if err := c.doJSON(ctx, op, c.baseURL, path, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	case GetSummonersByID:
		var out SummonerMap
		path := "/api/lol/{region}/v1.4/summoner/" + joinIDs(o.IDs)
		if err := c.doJSON(ctx, op, c.baseURL, path, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	case GetLeagues:
		var out LeagueMap
		path := "/api/lol/{region}/v2.5/league/by-summoner/" + joinIDs(o.SummonerIDs)
		if err := c.doJSON(ctx, op, c.baseURL, path, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	case GetChallenger:
		var out League
		query := url.Values{}
		query.Set("type", o.Queue)
		if err := c.doJSON(ctx, op, c.baseURL, "/api/lol/{region}/v2.5/league/challenger", query, &out); err != nil {
			return nil, err
		}
		return out, nil
	case GetMatch:
		var out MatchDetail
		query := url.Values{}
		query.Set("includeTimeline", strconv.FormatBool(o.IncludeTimeline))
		path := "/api/lol/{region}/v2.2/match/" + strconv.FormatInt(o.MatchID, 10)
		if err := c.doJSON(ctx, op, c.baseURL, path, query, &out); err != nil {
			return nil, err
		}
		return out, nil
	case GetMatchList:
		var out MatchList
		query := url.Values{}
		queue := o.RankedQueues
		if queue == "" {
			queue = QueueRankedSolo5x5
		}
		query.Set("rankedQueues", queue)
		if o.EndIndex > 0 {
			query.Set("beginIndex", strconv.Itoa(o.BeginIndex))
			query.Set("endIndex", strconv.Itoa(o.EndIndex))
		}
		path := "/api/lol/{region}/v2.2/matchlist/by-summoner/" + strconv.FormatInt(o.SummonerID, 10)
		if err := c.doJSON(ctx, op, c.baseURL, path, query, &out); err != nil {
			return nil, err
		}
		return out, nil
	case GetChampionList:
		var out ChampionList
		query := url.Values{}
		query.Set("dataById", "true")
		if err := c.doJSON(ctx, op, c.staticBaseURL, "/api/lol/static-data/{region}/v1.2/champion", query, &out); err != nil {
			return nil, err
		}
		return out, nil
	case GetSummonerSpellList:
		var out SpellList
		query := url.Values{}
		query.Set("dataById", "true")
		query.Set("spellData", "all")
		if err := c.doJSON(ctx, op, c.staticBaseURL, "/api/lol/static-data/{region}/v1.2/summoner-spell", query, &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, newCauseError(op, ClassUnknown, crerr.Newf("unsupported operation %T", op), "invoke")
	}
}

func (c *Client) doJSON(ctx context.Context, op Operation, base, path string, query url.Values, target any) error {
	fullURL := c.buildURL(base, op.TargetRegion(), path, query)

	raw, err := c.executeRequest(ctx, op, fullURL)
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return newCauseError(op, ClassUnknown, err, "decode %s payload", op.Kind())
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, op Operation, fullURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, newCauseError(op, ClassUnknown, err, "request not sent")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := c.now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.DebugContext(ctx, "riot request transport failure",
			"operation", op.Kind(),
			"url", redactAPIURL(fullURL),
			"error", sanitizeSensitiveText(err.Error(), c.apiKey),
		)
		return nil, newCauseError(op, ClassUnknown, crerr.New(sanitizeSensitiveText(err.Error(), c.apiKey)), "send request")
	}

	code := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if code >= 200 && code < 300 {
		return body, nil
	}

	apiErr := newStatusError(op, code, string(resp.Header.Peek("Retry-After")), []byte(sanitizeSensitiveText(string(body), c.apiKey)), c.now())
	return nil, apiErr
}

func (c *Client) buildURL(base string, region Region, path string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	lower := region.Lower()
	_, _ = buf.WriteString(strings.ReplaceAll(base, "{region}", lower))
	_, _ = buf.WriteString(strings.ReplaceAll(path, "{region}", lower))

	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	if encoded := query.Encode(); encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}

	return buf.String()
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "api_key=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apiKeyParamRegex.ReplaceAllString(rawURL, "api_key=REDACTED")
	}
	query := parsed.Query()
	if query.Has("api_key") {
		query.Set("api_key", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}
