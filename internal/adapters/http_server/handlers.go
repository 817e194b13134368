package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"triply/internal/adapters/observability"
	"triply/internal/adapters/voucher"
	"triply/internal/app"
	"triply/internal/catalog"
	"triply/internal/domain"
	"triply/internal/listing"
)

type Handlers struct {
	Catalog  *app.CatalogService
	Reviews  *app.ReviewService
	Bookings *app.BookingService
	Accounts *app.AccountService
	Prefs    *app.PrefsService

	Sessions      *Sessions
	LoginLimiter  *IPLimiter
	AdminToken    string
	VoucherSecret []byte
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/hotels", h.searchHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Get("/hotels/{id}/reviews", h.listReviews)
		r.With(RequireUser(h.Sessions)).Post("/hotels/{id}/reviews", h.addReview)
		r.Get("/hotels/{id}/quote", h.quote)
		r.Get("/destinations", h.destinations)
		r.Get("/featured", h.featured)
		r.Get("/facilities", h.facilities)

		r.Post("/bookings", h.createBooking)
		r.Get("/bookings/{id}/voucher", h.bookingVoucher)

		r.Post("/auth/register", h.register)
		login := http.HandlerFunc(h.login)
		if h.LoginLimiter != nil {
			r.Method(http.MethodPost, "/auth/login", h.LoginLimiter.Limit(login))
		} else {
			r.Method(http.MethodPost, "/auth/login", login)
		}

		r.Group(func(r chi.Router) {
			r.Use(RequireUser(h.Sessions))
			r.Get("/me", h.me)
			r.Get("/me/bookings", h.myBookings)
		})

		r.Get("/prefs/lang", h.getLang)
		r.Put("/prefs/lang", h.setLang)

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin(h.AdminToken))
			r.Get("/hotels", h.adminHotels)
			r.Post("/hotels", h.adminAddHotel)
			r.Delete("/hotels/{id}", h.adminRemoveHotel)
			r.Get("/bookings", h.adminBookings)
			r.Delete("/bookings/{id}", h.adminDeleteBooking)
			r.Get("/users", h.adminUsers)
			r.Delete("/users/{username}", h.adminDeleteUser)
			r.Post("/vouchers/verify", h.adminVerifyVoucher)
		})
	})
}

// ---- listing & detail ----

// hotelCard is a listing entry: the hotel plus its star string.
type hotelCard struct {
	domain.Hotel
	Stars string `json:"stars"`
}

func cards(hs []domain.Hotel) []hotelCard {
	out := make([]hotelCard, len(hs))
	for i, h := range hs {
		out[i] = hotelCard{Hotel: h, Stars: catalog.Stars(h.Rating)}
	}
	return out
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	res := h.Catalog.Search(r.Context(), listing.RawQueryFromValues(r.URL.Query()))
	observability.ObserveListing(res.Count)
	writeJSON(w, http.StatusOK, map[string]any{
		"context": res.Context,
		"sort":    res.Sort,
		"count":   res.Count,
		"hotels":  cards(res.Hotels),
	})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Catalog.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, hotelCard{Hotel: hotel, Stars: catalog.Stars(hotel.Rating)})
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Catalog.Reviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, map[string]any{"items": rs, "count": len(rs)})
}

type reviewBody struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handlers) addReview(w http.ResponseWriter, r *http.Request) {
	var in reviewBody
	if !decodeBody(w, r, &in) {
		return
	}
	u, _ := UserFrom(r.Context())
	rv, err := h.Reviews.Add(r.Context(), chi.URLParam(r, "id"), u, in.Rating, in.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	price, _ := strconv.ParseFloat(q.Get("price"), 64)
	out, err := h.Bookings.Quote(r.Context(), chi.URLParam(r, "id"),
		q.Get("room"), price, q.Get("checkin"), q.Get("checkout"), listing.ParseGuests(q.Get("guests")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) destinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.Catalog.Destinations(r.Context())})
}

const defaultFeatured = 3

func (h *Handlers) featured(w http.ResponseWriter, r *http.Request) {
	n := defaultFeatured
	if s := r.URL.Query().Get("n"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 50 {
			n = v
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": cards(h.Catalog.Featured(r.Context(), n))})
}

func (h *Handlers) facilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.Catalog.Facilities(r.Context())})
}

// ---- bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var in app.BookingForm
	if !decodeBody(w, r, &in) {
		return
	}
	b, err := h.Bookings.Submit(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	observability.ObserveBooking()
	log.Info().Str("booking", b.ID).Str("hotel", b.HotelID).Msg("booking created")
	w.Header().Set("Location", "/v1/bookings/"+b.ID+"/voucher")
	writeJSON(w, http.StatusCreated, b)
}

// bookingVoucher serves the PDF to whoever knows both the booking id and the
// email it was made with.
func (h *Handlers) bookingVoucher(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err == nil && !strings.EqualFold(b.Email, strings.TrimSpace(r.URL.Query().Get("email"))) {
		err = domain.ErrNotFound
	}
	if err != nil {
		writeError(w, err)
		return
	}
	pdf, err := voucher.Render(b, h.VoucherSecret)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=voucher-"+b.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Error().Err(err).Msg("failed to write voucher")
	}
}

// ---- accounts ----

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in app.RegisterForm
	if !decodeBody(w, r, &in) {
		return
	}
	u, err := h.Accounts.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in loginBody
	if !decodeBody(w, r, &in) {
		return
	}
	u, err := h.Accounts.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	tok, exp, err := h.Sessions.Issue(u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": tok, "expiresAt": exp, "user": u})
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	su, _ := UserFrom(r.Context())
	u, err := h.Accounts.Get(r.Context(), su.Username)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "account no longer exists")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) myBookings(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFrom(r.Context())
	bs, err := h.Bookings.ListByEmail(r.Context(), u.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": bs})
}

// ---- preferences ----

type langBody struct {
	Lang string `json:"lang"`
}

func (h *Handlers) getLang(w http.ResponseWriter, r *http.Request) {
	l, err := h.Prefs.Language(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Language", l)
	writeJSON(w, http.StatusOK, langBody{Lang: l})
}

func (h *Handlers) setLang(w http.ResponseWriter, r *http.Request) {
	var in langBody
	if !decodeBody(w, r, &in) {
		return
	}
	l, err := h.Prefs.SetLanguage(r.Context(), in.Lang)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Language", l)
	writeJSON(w, http.StatusOK, langBody{Lang: l})
}

// ---- admin ----

// adminHotel adds the editable room string to the admin table.
type adminHotel struct {
	domain.Hotel
	RoomsText string `json:"roomsText"`
}

func (h *Handlers) adminHotels(w http.ResponseWriter, r *http.Request) {
	hs := h.Catalog.ListHotels(r.Context())
	out := make([]adminHotel, len(hs))
	for i, x := range hs {
		out[i] = adminHotel{Hotel: x, RoomsText: catalog.FormatRooms(x.Rooms)}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "nextId": catalog.FreeID(h.Catalog.Snapshot())})
}

func (h *Handlers) adminAddHotel(w http.ResponseWriter, r *http.Request) {
	var in catalog.NewHotel
	if !decodeBody(w, r, &in) {
		return
	}
	hotel, err := h.Catalog.AddHotel(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/hotels/"+hotel.ID)
	writeJSON(w, http.StatusCreated, hotel)
}

func (h *Handlers) adminRemoveHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.RemoveHotel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) adminBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Bookings.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": bs})
}

func (h *Handlers) adminDeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.Bookings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) adminUsers(w http.ResponseWriter, r *http.Request) {
	us, err := h.Accounts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": us})
}

func (h *Handlers) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type voucherBody struct {
	Code string `json:"code"`
}

// adminVerifyVoucher checks a scanned voucher QR at the front desk and
// returns the booking it belongs to.
func (h *Handlers) adminVerifyVoucher(w http.ResponseWriter, r *http.Request) {
	var in voucherBody
	if !decodeBody(w, r, &in) {
		return
	}
	id, ok := voucher.Verify(in.Code, h.VoucherSecret)
	if !ok {
		writeError(w, fmt.Errorf("%w: voucher signature does not match", domain.ErrValidation))
		return
	}
	b, err := h.Bookings.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
