package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"triply/internal/domain"
	"triply/internal/stay"
)

// BookingForm is the checkout form. Card fields are only checked for
// presence; no payment is taken.
type BookingForm struct {
	HotelID    string `json:"hotelId"`
	RoomType   string `json:"roomType"`
	Checkin    string `json:"checkin"`
	Checkout   string `json:"checkout"`
	Guests     int    `json:"guests"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCVV    string `json:"cardCvv"`
}

type Quote struct {
	HotelID      string  `json:"hotelId"`
	HotelName    string  `json:"hotelName"`
	RoomType     string  `json:"roomType,omitempty"`
	Checkin      string  `json:"checkin"`
	Checkout     string  `json:"checkout"`
	Guests       int     `json:"guests"`
	NightlyPrice float64 `json:"nightlyPrice"`
	Nights       int     `json:"nights"`
	Total        float64 `json:"total"`
	TotalText    string  `json:"totalText"`
}

type BookingService struct {
	mu      sync.Mutex
	catalog *CatalogService
	store   domain.Store
	ids     *idGen
}

func NewBookingService(c *CatalogService, st domain.Store) *BookingService {
	return &BookingService{catalog: c, store: st, ids: &idGen{now: time.Now}}
}

// Quote prices a stay. The nightly price is the named room's when the hotel
// has it, else price when positive, else the hotel's base price.
func (s *BookingService) Quote(ctx context.Context, hotelID, room string, price float64, checkin, checkout string, guests int) (Quote, error) {
	h, ok := s.catalog.Snapshot().Find(hotelID)
	if !ok {
		return Quote{}, fmt.Errorf("%w: hotel %s", domain.ErrNotFound, hotelID)
	}
	in, err := stay.ParseDate(checkin)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: checkin %v", domain.ErrValidation, err)
	}
	out, err := stay.ParseDate(checkout)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: checkout %v", domain.ErrValidation, err)
	}
	if guests < 1 {
		guests = 1
	}

	nightly := h.Price
	if r, ok := h.Room(room); ok {
		nightly = r.Price
	} else if price > 0 {
		nightly = price
	}
	st := stay.Quote(domain.StayRequest{Checkin: in, Checkout: out, NightlyPrice: nightly, Guests: guests})
	return Quote{
		HotelID:      h.ID,
		HotelName:    h.Name,
		RoomType:     room,
		Checkin:      in.Format(stay.DateLayout),
		Checkout:     out.Format(stay.DateLayout),
		Guests:       guests,
		NightlyPrice: nightly,
		Nights:       st.Nights,
		Total:        st.Total,
		TotalText:    stay.FormatTotal(st.Total),
	}, nil
}

// Submit validates the form, prices the stay from the catalog and records
// the booking.
func (s *BookingService) Submit(ctx context.Context, f BookingForm) (domain.Booking, error) {
	if err := validateBooking(f); err != nil {
		return domain.Booking{}, err
	}
	room := strings.TrimSpace(f.RoomType)
	if h, ok := s.catalog.Snapshot().Find(f.HotelID); ok && room != "" {
		if _, ok := h.Room(room); !ok {
			return domain.Booking{}, fmt.Errorf("%w: %s has no %q room", domain.ErrValidation, h.Name, room)
		}
	}
	q, err := s.Quote(ctx, f.HotelID, room, 0, f.Checkin, f.Checkout, f.Guests)
	if err != nil {
		return domain.Booking{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := loadList[domain.Booking](ctx, s.store, domain.KeyBookings)
	if err != nil {
		return domain.Booking{}, err
	}
	b := domain.Booking{
		ID:        s.ids.next(),
		HotelID:   q.HotelID,
		HotelName: q.HotelName,
		RoomType:  q.RoomType,
		Checkin:   q.Checkin,
		Checkout:  q.Checkout,
		Guests:    q.Guests,
		Name:      strings.TrimSpace(f.Name),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		Total:     q.Total,
		CreatedAt: s.ids.now().UTC(),
	}
	if err := s.store.Set(ctx, domain.KeyBookings, append(list, b)); err != nil {
		return domain.Booking{}, fmt.Errorf("save bookings: %w", err)
	}
	return b, nil
}

func validateBooking(f BookingForm) error {
	required := []struct{ name, val string }{
		{"hotelId", f.HotelID},
		{"checkin", f.Checkin},
		{"checkout", f.Checkout},
		{"name", f.Name},
		{"email", f.Email},
		{"cardNumber", f.CardNumber},
		{"cardExpiry", f.CardExpiry},
		{"cardCvv", f.CardCVV},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return loadList[domain.Booking](ctx, s.store, domain.KeyBookings)
}

// ListByEmail returns the bookings made with email, ignoring case.
func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	out := []domain.Booking{}
	for _, b := range all {
		if email != "" && strings.EqualFold(b.Email, email) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (domain.Booking, error) {
	all, err := s.List(ctx)
	if err != nil {
		return domain.Booking{}, err
	}
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Booking{}, fmt.Errorf("%w: booking %s", domain.ErrNotFound, id)
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := loadList[domain.Booking](ctx, s.store, domain.KeyBookings)
	if err != nil {
		return err
	}
	for i, b := range all {
		if b.ID == id {
			next := append(all[:i:i], all[i+1:]...)
			if err := s.store.Set(ctx, domain.KeyBookings, next); err != nil {
				return fmt.Errorf("save bookings: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: booking %s", domain.ErrNotFound, id)
}

// idGen issues "B<unix millis>" ids, strictly increasing within a process.
type idGen struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func (g *idGen) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return "B" + strconv.FormatInt(ms, 10)
}
