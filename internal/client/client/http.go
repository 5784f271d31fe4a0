package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/google/uuid"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 10 << 20

// HTTPClient talks to the JSON API. The session cookie lives in its jar
// and is sent with every request.
type HTTPClient struct {
	baseURL *url.URL
	hc      *http.Client
	jar     *sessionJar
	coord   *Coordinator
	log     logging.Logger

	// onUnauthorized runs after any 401 response.
	onUnauthorized func()
}

// NewHTTPClient builds a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}
	if log == nil {
		log = logging.Discard()
	}

	jar := newSessionJar()
	return &HTTPClient{
		baseURL: u,
		hc:      &http.Client{Jar: jar, Timeout: timeout},
		jar:     jar,
		coord:   NewCoordinator(),
		log:     log.With("component", "api"),
	}, nil
}

// OnUnauthorized sets a hook run after every 401 response.
func (c *HTTPClient) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *HTTPClient) Coordinator() *Coordinator { return c.coord }

func (c *HTTPClient) BaseURL() string { return c.baseURL.String() }

func (c *HTTPClient) SessionCookies() []*http.Cookie {
	return c.jar.Cookies(c.baseURL)
}

func (c *HTTPClient) RestoreSession(cookies []*http.Cookie) {
	c.jar.SetCookies(c.baseURL, cookies)
}

func (c *HTTPClient) ClearSession() {
	c.jar.Reset()
	c.coord.ForgetUser()
}

// RequestKey identifies a request for coordination purposes. Only GETs
// to the same URL share a key; every other request is keyed by its own
// request id and is never superseded.
func RequestKey(method, rawURL, requestID string) string {
	if method == http.MethodGet {
		return method + " " + rawURL
	}
	return method + " " + rawURL + " " + requestID
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one API request and decodes the envelope's data into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) (*models.PageMeta, error) {
	target := c.endpoint(path, query)

	reqID := uuid.NewString()
	ctx, done := c.coord.Begin(ctx, RequestKey(method, target, reqID))
	defer done()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", common.ContentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}
	req.Header.Set(common.RequestIDHeaderName, reqID)

	log := c.log.With("method", method, "path", path, "request_id", reqID)
	start := time.Now()

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, log, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, c.transportError(ctx, log, err)
	}
	if ctx.Err() != nil {
		// the response arrived after the request was superseded or cancelled
		return nil, c.transportError(ctx, log, ctx.Err())
	}

	log.Debug(ctx, "api response", "status", resp.StatusCode, "duration", time.Since(start))

	var env models.Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 || (decodeErr == nil && !env.Success) {
		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized()
		}
		apiErr := &common.APIError{
			Kind:    common.KindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: env.Error,
		}
		log.Warn(ctx, "api error", "status", resp.StatusCode, "error", env.Error)
		return nil, apiErr
	}
	if decodeErr != nil {
		log.Warn(ctx, "malformed api response", "status", resp.StatusCode, "error", decodeErr)
		return nil, fmt.Errorf("%w: malformed response: %v", common.ErrNetwork, decodeErr)
	}

	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			log.Warn(ctx, "unexpected api payload", "error", err)
			return nil, fmt.Errorf("%w: unexpected payload: %v", common.ErrNetwork, err)
		}
	}
	return env.Meta, nil
}

func (c *HTTPClient) transportError(ctx context.Context, log logging.Logger, err error) error {
	if errors.Is(context.Cause(ctx), ErrSuperseded) {
		log.Debug(ctx, "request superseded")
		return ErrSuperseded
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	log.Warn(ctx, "api request failed", "error", err)
	return fmt.Errorf("%w: %v", common.ErrNetwork, err)
}

func (c *HTTPClient) unauthorized() {
	c.ClearSession()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func (c *HTTPClient) Register(ctx context.Context, in models.RegisterInput) (models.User, error) {
	var p models.AuthPayload
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &p); err != nil {
		return models.User{}, err
	}
	c.coord.SetUser(p.User)
	return p.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, in models.LoginInput) (models.User, error) {
	var p models.AuthPayload
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &p); err != nil {
		return models.User{}, err
	}
	c.coord.SetUser(p.User)
	return p.User, nil
}

// Logout always forgets the local session, even when the request fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.coord.Reset()
	c.jar.Reset()
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (models.User, error) {
	return c.coord.CurrentUser(ctx, func(ctx context.Context) (models.User, error) {
		var p models.AuthPayload
		if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &p); err != nil {
			return models.User{}, err
		}
		return p.User, nil
	})
}

func (c *HTTPClient) SearchJobs(ctx context.Context, f models.JobFilters) (models.Page[models.Job], error) {
	var jobs []models.Job
	meta, err := c.do(ctx, http.MethodGet, "/jobs", f.Values(), nil, &jobs)
	if err != nil {
		return models.Page[models.Job]{}, err
	}
	return page(jobs, meta), nil
}

func (c *HTTPClient) GetJob(ctx context.Context, id string) (models.Job, error) {
	var j models.Job
	_, err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, nil, &j)
	return j, err
}

func (c *HTTPClient) CreateJob(ctx context.Context, in models.JobInput) (models.Job, error) {
	var j models.Job
	_, err := c.do(ctx, http.MethodPost, "/jobs", nil, in, &j)
	return j, err
}

func (c *HTTPClient) UpdateJob(ctx context.Context, id string, p models.JobPatch) (models.Job, error) {
	var j models.Job
	_, err := c.do(ctx, http.MethodPut, "/jobs/"+url.PathEscape(id), nil, p, &j)
	return j, err
}

func (c *HTTPClient) DeleteJob(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil, nil)
	return err
}

func (c *HTTPClient) EmployerJobs(ctx context.Context, pageNo int) (models.Page[models.Job], error) {
	var jobs []models.Job
	meta, err := c.do(ctx, http.MethodGet, "/jobs/employer/jobs", pageQuery(pageNo), nil, &jobs)
	if err != nil {
		return models.Page[models.Job]{}, err
	}
	return page(jobs, meta), nil
}

func (c *HTTPClient) JobApplications(ctx context.Context, jobID string, pageNo int) (models.Page[models.Application], error) {
	var apps []models.Application
	meta, err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(jobID)+"/applications", pageQuery(pageNo), nil, &apps)
	if err != nil {
		return models.Page[models.Application]{}, err
	}
	return page(apps, meta), nil
}

func (c *HTTPClient) SubmitApplication(ctx context.Context, in models.ApplicationInput) (models.Application, error) {
	var a models.Application
	_, err := c.do(ctx, http.MethodPost, "/applications", nil, in, &a)
	return a, err
}

func (c *HTTPClient) MyApplications(ctx context.Context, limit int) ([]models.Application, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var apps []models.Application
	_, err := c.do(ctx, http.MethodGet, "/applications", q, nil, &apps)
	return apps, err
}

func (c *HTTPClient) UpdateApplicationStatus(ctx context.Context, id string, u models.StatusUpdate) (models.Application, error) {
	var a models.Application
	_, err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(id)+"/status", nil, u, &a)
	return a, err
}

func (c *HTTPClient) WithdrawApplication(ctx context.Context, id string) (models.Application, error) {
	var a models.Application
	_, err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(id)+"/withdraw", nil, nil, &a)
	return a, err
}

func (c *HTTPClient) UploadSignature(ctx context.Context, in models.UploadRequest) (models.UploadDescriptor, error) {
	var d models.UploadDescriptor
	_, err := c.do(ctx, http.MethodPost, "/uploads/signature", nil, in, &d)
	return d, err
}

func pageQuery(n int) url.Values {
	if n < 1 {
		n = 1
	}
	return url.Values{"page": {strconv.Itoa(n)}}
}

func page[T any](items []T, meta *models.PageMeta) models.Page[T] {
	return models.Page[T]{Items: items, Meta: meta}
}
