package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"golang.org/x/crypto/bcrypt"

	server "triply/internal/adapters/http_server"
	redisad "triply/internal/adapters/redis"
	"triply/internal/adapters/voucher"
	"triply/internal/app"
	"triply/internal/domain"
)

const adminToken = "letmein"

type env struct {
	ts  *httptest.Server
	svc *app.CatalogService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisad.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	store := redisad.NewStore(client, "test:")
	cache := redisad.NewCache(client, "test:cache:")

	cat := app.NewCatalogService(nil, store, cache, time.Minute)
	if err := cat.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	srv := server.New(nil, false)
	srv.MountHandlers(&server.Handlers{
		Catalog:       cat,
		Reviews:       app.NewReviewService(cat, store),
		Bookings:      app.NewBookingService(cat, store),
		Accounts:      app.NewAccountService(store, bcrypt.MinCost),
		Prefs:         app.NewPrefsService(store),
		Sessions:      server.NewSessions("test-secret", time.Hour),
		LoginLimiter:  server.NewIPLimiter(1, 3),
		AdminToken:    adminToken,
		VoucherSecret: []byte("voucher"),
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &env{ts: ts, svc: cat}
}

func (e *env) do(t *testing.T, method, path string, body any, hdr map[string]string) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func wantStatus(t *testing.T, resp *http.Response, code int) {
	t.Helper()
	if resp.StatusCode != code {
		t.Fatalf("%s %s: want %d, got %d", resp.Request.Method, resp.Request.URL.Path, code, resp.StatusCode)
	}
}

type listing struct {
	Count  int `json:"count"`
	Hotels []struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
		Stars string  `json:"stars"`
	} `json:"hotels"`
	Context struct {
		Checkin string `json:"checkin"`
		Guests  int    `json:"guests"`
	} `json:"context"`
}

func TestSearch(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodGet, "/v1/hotels?price=0,100&sort=priceAsc&checkin=2024-01-01&guests=3&rating=bogus", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	got := decode[listing](t, resp)
	if got.Count != 3 || got.Hotels[0].Price != 70 || got.Hotels[1].Price != 80 || got.Hotels[2].Price != 95 {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if got.Context.Checkin != "2024-01-01" || got.Context.Guests != 3 {
		t.Fatalf("context not echoed: %+v", got.Context)
	}
	if got.Hotels[0].Stars == "" {
		t.Fatalf("expected stars on cards")
	}

	resp = e.do(t, http.MethodGet, "/v1/hotels?dest=atlantis", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	if got := decode[listing](t, resp); got.Count != 0 || got.Hotels == nil {
		t.Fatalf("want empty non-null list, got %+v", got)
	}
}

func TestGetHotel_ETag(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodGet, "/v1/hotels/H001", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	etag := resp.Header.Get("ETag")
	if !strings.HasPrefix(etag, `W/"`) {
		t.Fatalf("missing weak ETag: %q", etag)
	}

	resp = e.do(t, http.MethodGet, "/v1/hotels/H001", nil, map[string]string{"If-None-Match": etag})
	wantStatus(t, resp, http.StatusNotModified)

	resp = e.do(t, http.MethodGet, "/v1/hotels/H404", nil, nil)
	wantStatus(t, resp, http.StatusNotFound)
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("want problem+json, got %q", ct)
	}
}

func TestQuote(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodGet, "/v1/hotels/H005/quote?price=100&checkin=2024-01-01&checkout=2024-01-03", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	q := decode[app.Quote](t, resp)
	if q.Nights != 2 || q.TotalText != "200.00" {
		t.Fatalf("unexpected quote: %+v", q)
	}

	resp = e.do(t, http.MethodGet, "/v1/hotels/H005/quote?checkin=bad&checkout=2024-01-03", nil, nil)
	wantStatus(t, resp, http.StatusUnprocessableEntity)
}

func TestBrowseEndpoints(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodGet, "/v1/featured", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	feat := decode[struct {
		Items []struct{ ID string } `json:"items"`
	}](t, resp)
	if len(feat.Items) != 3 || feat.Items[0].ID != "H004" {
		t.Fatalf("unexpected featured: %+v", feat)
	}

	for _, p := range []string{"/v1/destinations", "/v1/facilities", "/healthz"} {
		wantStatus(t, e.do(t, http.MethodGet, p, nil, nil), http.StatusOK)
	}
}

func registerAndLogin(t *testing.T, e *env) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/v1/auth/register", app.RegisterForm{
		FullName: "Rina Putri", Username: "rina", Password: "s3cret", Email: "rina@example.com",
	}, nil)
	wantStatus(t, resp, http.StatusCreated)

	resp = e.do(t, http.MethodPost, "/v1/auth/login", map[string]string{"username": "rina", "password": "s3cret"}, nil)
	wantStatus(t, resp, http.StatusOK)
	out := decode[struct {
		Token string `json:"token"`
	}](t, resp)
	if out.Token == "" {
		t.Fatalf("no token issued")
	}
	return out.Token
}

func TestAccountsAndReviews(t *testing.T) {
	e := newEnv(t)
	tok := registerAndLogin(t, e)
	auth := map[string]string{"Authorization": "Bearer " + tok}

	resp := e.do(t, http.MethodPost, "/v1/auth/register", app.RegisterForm{
		FullName: "x", Username: "rina", Password: "p", Email: "x@y",
	}, nil)
	wantStatus(t, resp, http.StatusConflict)

	resp = e.do(t, http.MethodPost, "/v1/auth/login", map[string]string{"username": "rina", "password": "nope"}, nil)
	wantStatus(t, resp, http.StatusUnauthorized)

	resp = e.do(t, http.MethodGet, "/v1/me", nil, auth)
	wantStatus(t, resp, http.StatusOK)
	if me := decode[map[string]any](t, resp); me["username"] != "rina" || me["password"] != "" {
		t.Fatalf("unexpected me: %v", me)
	}

	wantStatus(t, e.do(t, http.MethodGet, "/v1/me", nil, nil), http.StatusUnauthorized)
	wantStatus(t, e.do(t, http.MethodGet, "/v1/me", nil, map[string]string{"Authorization": "Bearer junk"}), http.StatusUnauthorized)

	// reviews need a session
	body := map[string]any{"rating": 5, "comment": "Sunsets!"}
	wantStatus(t, e.do(t, http.MethodPost, "/v1/hotels/H001/reviews", body, nil), http.StatusUnauthorized)

	before := e.do(t, http.MethodGet, "/v1/hotels/H001/reviews", nil, nil)
	wantStatus(t, before, http.StatusOK)
	n := decode[struct{ Count int }](t, before).Count

	resp = e.do(t, http.MethodPost, "/v1/hotels/H001/reviews", body, auth)
	wantStatus(t, resp, http.StatusCreated)
	if rv := decode[map[string]any](t, resp); rv["user"] != "Rina Putri" {
		t.Fatalf("author should be the full name, got %v", rv["user"])
	}

	after := e.do(t, http.MethodGet, "/v1/hotels/H001/reviews", nil, nil)
	if got := decode[struct{ Count int }](t, after).Count; got != n+1 {
		t.Fatalf("want %d reviews, got %d", n+1, got)
	}

	wantStatus(t, e.do(t, http.MethodPost, "/v1/hotels/H001/reviews", map[string]any{"rating": 9, "comment": "x"}, auth), http.StatusUnprocessableEntity)
}

func TestLoginRateLimited(t *testing.T) {
	e := newEnv(t)
	creds := map[string]string{"username": "ghost", "password": "x"}
	var last *http.Response
	for i := 0; i < 5; i++ {
		last = e.do(t, http.MethodPost, "/v1/auth/login", creds, nil)
	}
	wantStatus(t, last, http.StatusTooManyRequests)
}

func bookingForm() app.BookingForm {
	return app.BookingForm{
		HotelID: "H001", RoomType: "Suite", Checkin: "2024-01-01", Checkout: "2024-01-03", Guests: 2,
		Name: "Rina", Email: "rina@example.com", CardNumber: "4111", CardExpiry: "12/29", CardCVV: "123",
	}
}

func TestBookingFlow(t *testing.T) {
	e := newEnv(t)
	tok := registerAndLogin(t, e)

	resp := e.do(t, http.MethodPost, "/v1/bookings", bookingForm(), nil)
	wantStatus(t, resp, http.StatusCreated)
	b := decode[map[string]any](t, resp)
	id, _ := b["id"].(string)
	if !strings.HasPrefix(id, "B") || b["total"] != 400.0 {
		t.Fatalf("unexpected booking: %v", b)
	}

	bad := bookingForm()
	bad.CardNumber = ""
	wantStatus(t, e.do(t, http.MethodPost, "/v1/bookings", bad, nil), http.StatusUnprocessableEntity)

	req, _ := http.NewRequest(http.MethodPost, e.ts.URL+"/v1/bookings", strings.NewReader("{"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	wantStatus(t, resp, http.StatusBadRequest)

	resp = e.do(t, http.MethodGet, "/v1/me/bookings", nil, map[string]string{"Authorization": "Bearer " + tok})
	wantStatus(t, resp, http.StatusOK)
	mine := decode[struct{ Items []map[string]any }](t, resp)
	if len(mine.Items) != 1 || mine.Items[0]["id"] != id {
		t.Fatalf("dashboard bookings: %+v", mine)
	}

	resp = e.do(t, http.MethodGet, "/v1/bookings/"+id+"/voucher?email=RINA@example.com", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("want pdf, got %q", ct)
	}
	wantStatus(t, e.do(t, http.MethodGet, "/v1/bookings/"+id+"/voucher?email=other@example.com", nil, nil), http.StatusNotFound)
}

func TestAdmin(t *testing.T) {
	e := newEnv(t)
	admin := map[string]string{"X-Admin-Token": adminToken}

	wantStatus(t, e.do(t, http.MethodGet, "/v1/admin/hotels", nil, nil), http.StatusUnauthorized)

	resp := e.do(t, http.MethodPost, "/v1/admin/hotels", map[string]any{
		"name": "Sunset Inn", "destination": "Bali", "price": 110, "rating": 4.2,
		"facilities": "Pool, Bar", "rooms": "Double:110;bad;Twin:90",
	}, admin)
	wantStatus(t, resp, http.StatusCreated)
	h := decode[map[string]any](t, resp)
	if h["id"] != "H006" {
		t.Fatalf("want H006, got %v", h["id"])
	}

	resp = e.do(t, http.MethodGet, "/v1/admin/hotels", nil, admin)
	wantStatus(t, resp, http.StatusOK)
	tbl := decode[struct {
		Items []struct {
			ID        string `json:"id"`
			RoomsText string `json:"roomsText"`
		} `json:"items"`
		NextID string `json:"nextId"`
	}](t, resp)
	if len(tbl.Items) != 6 || tbl.Items[5].RoomsText != "Double:110;Twin:90" || tbl.NextID != "H007" {
		t.Fatalf("unexpected admin table: %+v", tbl)
	}

	wantStatus(t, e.do(t, http.MethodPost, "/v1/admin/hotels", map[string]any{"name": ""}, admin), http.StatusUnprocessableEntity)

	wantStatus(t, e.do(t, http.MethodDelete, "/v1/admin/hotels/H006", nil, admin), http.StatusNoContent)
	wantStatus(t, e.do(t, http.MethodDelete, "/v1/admin/hotels/H006", nil, admin), http.StatusNoContent)
	wantStatus(t, e.do(t, http.MethodGet, "/v1/hotels/H006", nil, nil), http.StatusNotFound)
	if n := e.svc.Snapshot().Len(); n != 5 {
		t.Fatalf("want 5 hotels after removal, got %d", n)
	}

	resp = e.do(t, http.MethodPost, "/v1/bookings", bookingForm(), nil)
	wantStatus(t, resp, http.StatusCreated)
	id := decode[map[string]any](t, resp)["id"].(string)
	wantStatus(t, e.do(t, http.MethodGet, "/v1/admin/bookings", nil, admin), http.StatusOK)
	wantStatus(t, e.do(t, http.MethodDelete, "/v1/admin/bookings/"+id, nil, admin), http.StatusNoContent)
	wantStatus(t, e.do(t, http.MethodDelete, "/v1/admin/bookings/"+id, nil, admin), http.StatusNotFound)

	registerAndLogin(t, e)
	wantStatus(t, e.do(t, http.MethodGet, "/v1/admin/users", nil, admin), http.StatusOK)
	wantStatus(t, e.do(t, http.MethodDelete, "/v1/admin/users/rina", nil, admin), http.StatusNoContent)
	wantStatus(t, e.do(t, http.MethodDelete, "/v1/admin/users/rina", nil, admin), http.StatusNotFound)
}

func TestLanguagePreference(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodGet, "/v1/prefs/lang", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	if l := decode[map[string]string](t, resp)["lang"]; l != "en" {
		t.Fatalf("default: want en, got %s", l)
	}
	wantStatus(t, e.do(t, http.MethodPut, "/v1/prefs/lang", map[string]string{"lang": "id"}, nil), http.StatusOK)
	wantStatus(t, e.do(t, http.MethodPut, "/v1/prefs/lang", map[string]string{"lang": "xx"}, nil), http.StatusUnprocessableEntity)

	resp = e.do(t, http.MethodGet, "/v1/prefs/lang", nil, nil)
	if l := resp.Header.Get("Content-Language"); l != "id" {
		t.Fatalf("want id, got %s", l)
	}
}

func TestAdminVerifyVoucher(t *testing.T) {
	e := newEnv(t)
	admin := map[string]string{"X-Admin-Token": adminToken}

	resp := e.do(t, http.MethodPost, "/v1/bookings", bookingForm(), nil)
	wantStatus(t, resp, http.StatusCreated)
	b := decode[domain.Booking](t, resp)
	code := voucher.Payload(b, []byte("voucher"))

	wantStatus(t, e.do(t, http.MethodPost, "/v1/admin/vouchers/verify", map[string]string{"code": code}, nil), http.StatusUnauthorized)

	resp = e.do(t, http.MethodPost, "/v1/admin/vouchers/verify", map[string]string{"code": code}, admin)
	wantStatus(t, resp, http.StatusOK)
	if got := decode[domain.Booking](t, resp); got.ID != b.ID || got.Email != "rina@example.com" {
		t.Fatalf("unexpected booking: %+v", got)
	}

	forged := voucher.Payload(b, []byte("guess"))
	wantStatus(t, e.do(t, http.MethodPost, "/v1/admin/vouchers/verify", map[string]string{"code": forged}, admin), http.StatusUnprocessableEntity)

	wantStatus(t, e.do(t, http.MethodDelete, "/v1/admin/bookings/"+b.ID, nil, admin), http.StatusNoContent)
	wantStatus(t, e.do(t, http.MethodPost, "/v1/admin/vouchers/verify", map[string]string{"code": code}, admin), http.StatusNotFound)
}
