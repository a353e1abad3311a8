package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

// TokenSource yields the currently persisted bearer token, or "" when the
// user is logged out. The credential store implements it; the client reads
// it on every single request so a logout is effective immediately.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RestClient is the concrete Client over the kpark REST backend.
//
// Two response-side policies live here and nowhere else:
//
//   - A 401 on any authenticated call fires the session-expired handler,
//     which clears credentials and sends the UI back to the login screen.
//     Login, register, and the silent-restore probe are exempt; their 401s
//     are credential failures owned by the caller.
//   - Transport-level failures (no HTTP response at all) surface as
//     ErrUnavailable and never touch session state. Idempotent GETs get a
//     couple of quick retries first.
type RestClient struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	log     logging.Logger

	onSessionExpired func(ctx context.Context)
}

var errRequestFailed = errors.New("request failed")

// NewRestClient builds a client for the given base URL (including the /api
// prefix). The timeout applies per attempt.
func NewRestClient(baseURL string, tokens TokenSource, timeout time.Duration, log logging.Logger) *RestClient {
	return &RestClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// SetSessionExpiredHandler registers the hook fired when a bearer token is
// rejected mid-session. The session store wires its Expire method here; it
// clears both persisted entries and notifies the router.
func (c *RestClient) SetSessionExpiredHandler(fn func(ctx context.Context)) {
	c.onSessionExpired = fn
}

func (c *RestClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// envelope is the backend's response wrapper: success carries the payload
// under data (and a token on auth endpoints), failure carries message.
type envelope struct {
	Status          string          `json:"status"`
	Token           string          `json:"token"`
	Message         string          `json:"message"`
	SuggestWaitlist bool            `json:"suggestWaitlist"`
	Data            json.RawMessage `json:"data"`
}

type callOpts struct {
	// localAuthError marks calls whose 401 belongs to the caller
	// (bad credentials, expired restore token) rather than to the
	// global session-expiry policy.
	localAuthError bool
}

func (c *RestClient) newRequest(ctx context.Context, method, path string, query url.Values, payload []byte) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do performs one API call and returns the decoded envelope.
func (c *RestClient) do(ctx context.Context, method, path string, query url.Values, in any, opt callOpts) (*envelope, error) {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
	}

	attempt := func(ctx context.Context) (*http.Response, error) {
		req, err := c.newRequest(ctx, method, path, query, payload)
		if err != nil {
			return nil, err
		}
		return c.httpc.Do(req)
	}

	var resp *http.Response
	var err error
	if method == http.MethodGet {
		// brief fibonacci backoff on transport errors; safe for GETs only
		b := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))
		err = retry.Do(ctx, b, func(ctx context.Context) error {
			resp, err = attempt(ctx)
			if err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
	} else {
		resp, err = attempt(ctx)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var env envelope
	if len(raw) > 0 {
		// tolerate empty or non-JSON bodies on errors; envelope stays zero
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &env, nil
	}
	return nil, c.mapError(ctx, resp.StatusCode, &env, opt)
}

func (c *RestClient) mapError(ctx context.Context, status int, env *envelope, opt callOpts) error {
	e := &Error{
		Status:          status,
		Message:         env.Message,
		SuggestWaitlist: env.SuggestWaitlist,
		kind:            errRequestFailed,
	}

	switch {
	case status == http.StatusUnauthorized && opt.localAuthError:
		e.kind = ErrBadCredentials
	case status == http.StatusUnauthorized:
		e.kind = ErrUnauthorized
		c.log.Warn(ctx, "token rejected, invalidating session", "status", status)
		if c.onSessionExpired != nil {
			c.onSessionExpired(ctx)
		}
	case status == http.StatusForbidden:
		e.kind = ErrForbidden
	case status == http.StatusNotFound:
		e.kind = ErrNotFound
	case status == http.StatusConflict || env.SuggestWaitlist:
		e.kind = ErrSlotTaken
	}
	return e
}

func decodeData(env *envelope, out any) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeUser unpacks the data.user shape used by the auth endpoints.
func decodeUser(env *envelope) (*models.Identity, error) {
	var wrapper struct {
		User *models.Identity `json:"user"`
	}
	if err := decodeData(env, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.User == nil {
		return nil, fmt.Errorf("decoding response: missing user payload")
	}
	return wrapper.User, nil
}

// ── liveness ──

func (c *RestClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil, callOpts{})
	return err
}

// ── auth ──

func (c *RestClient) Login(ctx context.Context, email, password string) (string, *models.Identity, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, callOpts{localAuthError: true})
	if err != nil {
		return "", nil, err
	}
	id, err := decodeUser(env)
	if err != nil {
		return "", nil, err
	}
	return env.Token, id, nil
}

func (c *RestClient) Register(ctx context.Context, profile models.RegisterProfile) (string, *models.Identity, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", nil, profile, callOpts{localAuthError: true})
	if err != nil {
		return "", nil, err
	}
	id, err := decodeUser(env)
	if err != nil {
		return "", nil, err
	}
	return env.Token, id, nil
}

// CurrentUser is the silent-restore probe. Its 401 means the persisted
// token went stale; the session store recovers locally, so the global
// expiry policy stays out of it.
func (c *RestClient) CurrentUser(ctx context.Context) (*models.Identity, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, callOpts{localAuthError: true})
	if err != nil {
		return nil, err
	}
	return decodeUser(env)
}

func (c *RestClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error) {
	env, err := c.do(ctx, http.MethodPatch, "/auth/update-profile", nil, upd, callOpts{})
	if err != nil {
		return nil, err
	}
	return decodeUser(env)
}

func (c *RestClient) UpdatePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	_, err := c.do(ctx, http.MethodPatch, "/auth/update-password", nil, body, callOpts{})
	return err
}

// ── slots ──

func slotFilterQuery(f models.SlotFilter) url.Values {
	q := url.Values{}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	if f.StartTime != "" {
		q.Set("startTime", f.StartTime)
	}
	if f.EndTime != "" {
		q.Set("endTime", f.EndTime)
	}
	if f.SlotType != "" {
		q.Set("slotType", string(f.SlotType))
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	return q
}

func (c *RestClient) Slots(ctx context.Context, f models.SlotFilter) ([]models.Slot, error) {
	env, err := c.do(ctx, http.MethodGet, "/slots", slotFilterQuery(f), nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var slots []models.Slot
	if err := decodeData(env, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *RestClient) Slot(ctx context.Context, id string) (*models.Slot, error) {
	env, err := c.do(ctx, http.MethodGet, "/slots/"+id, nil, nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var slot models.Slot
	if err := decodeData(env, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *RestClient) CreateSlot(ctx context.Context, spec models.SlotSpec) (*models.Slot, error) {
	env, err := c.do(ctx, http.MethodPost, "/slots", nil, spec, callOpts{})
	if err != nil {
		return nil, err
	}
	var slot models.Slot
	if err := decodeData(env, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *RestClient) UpdateSlot(ctx context.Context, id string, spec models.SlotSpec) (*models.Slot, error) {
	env, err := c.do(ctx, http.MethodPatch, "/slots/"+id, nil, spec, callOpts{})
	if err != nil {
		return nil, err
	}
	var slot models.Slot
	if err := decodeData(env, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *RestClient) DeleteSlot(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/slots/"+id, nil, nil, callOpts{})
	return err
}

// ── bookings ──

func bookingFilterQuery(f models.BookingFilter) url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	return q
}

func (c *RestClient) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	env, err := c.do(ctx, http.MethodPost, "/bookings", nil, req, callOpts{})
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := decodeData(env, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *RestClient) MyBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	env, err := c.do(ctx, http.MethodGet, "/bookings/my", bookingFilterQuery(f), nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var bs []models.Booking
	if err := decodeData(env, &bs); err != nil {
		return nil, err
	}
	return bs, nil
}

func (c *RestClient) AllBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	env, err := c.do(ctx, http.MethodGet, "/bookings/all", bookingFilterQuery(f), nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var bs []models.Booking
	if err := decodeData(env, &bs); err != nil {
		return nil, err
	}
	return bs, nil
}

func (c *RestClient) Booking(ctx context.Context, id string) (*models.Booking, error) {
	env, err := c.do(ctx, http.MethodGet, "/bookings/"+id, nil, nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := decodeData(env, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *RestClient) MarkArrival(ctx context.Context, id string) (*models.Booking, error) {
	env, err := c.do(ctx, http.MethodPatch, "/bookings/"+id+"/mark-arrival", nil, nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := decodeData(env, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *RestClient) ExtendBooking(ctx context.Context, id string, extraMinutes int) (*models.Booking, error) {
	body := map[string]int{"extraMinutes": extraMinutes}
	env, err := c.do(ctx, http.MethodPatch, "/bookings/"+id+"/extend", nil, body, callOpts{})
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := decodeData(env, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *RestClient) CancelBooking(ctx context.Context, id, reason string) (*models.Booking, error) {
	body := map[string]string{"reason": reason}
	env, err := c.do(ctx, http.MethodPatch, "/bookings/"+id+"/cancel", nil, body, callOpts{})
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := decodeData(env, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ── waitlist ──

func (c *RestClient) JoinWaitlist(ctx context.Context, req models.WaitlistRequest) (*models.WaitlistEntry, error) {
	env, err := c.do(ctx, http.MethodPost, "/waitlist", nil, req, callOpts{})
	if err != nil {
		return nil, err
	}
	var w models.WaitlistEntry
	if err := decodeData(env, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *RestClient) MyWaitlist(ctx context.Context) ([]models.WaitlistEntry, error) {
	env, err := c.do(ctx, http.MethodGet, "/waitlist/my", nil, nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var ws []models.WaitlistEntry
	if err := decodeData(env, &ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (c *RestClient) AllWaitlist(ctx context.Context) ([]models.WaitlistEntry, error) {
	env, err := c.do(ctx, http.MethodGet, "/waitlist/all", nil, nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var ws []models.WaitlistEntry
	if err := decodeData(env, &ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (c *RestClient) LeaveWaitlist(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/waitlist/"+id, nil, nil, callOpts{})
	return err
}

func (c *RestClient) ConfirmWaitlist(ctx context.Context, id string) (*models.Booking, error) {
	env, err := c.do(ctx, http.MethodPost, "/waitlist/"+id+"/confirm", nil, nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := decodeData(env, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ── admin ──

func (c *RestClient) AdminDashboard(ctx context.Context) (*models.DashboardStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var st models.DashboardStats
	if err := decodeData(env, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *RestClient) Users(ctx context.Context, role models.Role) ([]models.Identity, error) {
	q := url.Values{}
	if role != "" {
		q.Set("role", string(role))
	}
	env, err := c.do(ctx, http.MethodGet, "/admin/users", q, nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var users []models.Identity
	if err := decodeData(env, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RestClient) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.Identity, error) {
	env, err := c.do(ctx, http.MethodPatch, "/admin/users/"+id, nil, patch, callOpts{})
	if err != nil {
		return nil, err
	}
	var u models.Identity
	if err := decodeData(env, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RestClient) OverrideBooking(ctx context.Context, id string, ov models.BookingOverride) (*models.Booking, error) {
	env, err := c.do(ctx, http.MethodPatch, "/admin/bookings/"+id+"/override", nil, ov, callOpts{})
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := decodeData(env, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *RestClient) Occupancy(ctx context.Context, from, to string) ([]models.OccupancyPoint, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	env, err := c.do(ctx, http.MethodGet, "/admin/analytics/occupancy", q, nil, callOpts{})
	if err != nil {
		return nil, err
	}
	var pts []models.OccupancyPoint
	if err := decodeData(env, &pts); err != nil {
		return nil, err
	}
	return pts, nil
}

var _ Client = (*RestClient)(nil)
