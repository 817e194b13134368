package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"triply/internal/domain"
)

// valJSON encodes v for a JSON column; nil slices are stored as [].
func valJSON[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func decodeJSON[T any](b []byte, dst *[]T) error {
	if len(b) == 0 {
		*dst = []T{}
		return nil
	}
	return json.Unmarshal(b, dst)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, seq int, h domain.Hotel) error {
	reviews, err := valJSON(h.Reviews)
	if err != nil {
		return err
	}
	images, err := valJSON(h.Images)
	if err != nil {
		return err
	}
	rooms, err := valJSON(h.Rooms)
	if err != nil {
		return err
	}
	amen, err := valJSON(h.Amenities)
	if err != nil {
		return err
	}
	facs, err := valJSON(h.Facilities)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		seq,
		h.Name,
		h.Location,
		h.Destination,
		h.Rating,
		h.Price,
		h.Description,
		reviews,
		images,
		rooms,
		amen,
		facs,
		h.Map.Lat,
		h.Map.Lng,
	)
	if err != nil {
		return fmt.Errorf("upsert hotel %s: %w", h.ID, err)
	}
	return nil
}

// DeleteHotel removes a hotel; deleting an unknown id is a no-op.
func (r *Repo) DeleteHotel(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteHotelSQL, id); err != nil {
		return fmt.Errorf("delete hotel %s: %w", id, err)
	}
	return nil
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		var h domain.Hotel
		var desc sql.NullString
		var reviews, images, rooms, amen, facs []byte
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Location, &h.Destination,
			&h.Rating, &h.Price, &desc,
			&reviews, &images, &rooms, &amen, &facs,
			&h.Map.Lat, &h.Map.Lng,
		); err != nil {
			return nil, err
		}
		h.Description = desc.String
		if err := decodeJSON(reviews, &h.Reviews); err != nil {
			return nil, fmt.Errorf("hotel %s reviews: %w", h.ID, err)
		}
		if err := decodeJSON(images, &h.Images); err != nil {
			return nil, fmt.Errorf("hotel %s images: %w", h.ID, err)
		}
		if err := decodeJSON(rooms, &h.Rooms); err != nil {
			return nil, fmt.Errorf("hotel %s rooms: %w", h.ID, err)
		}
		if err := decodeJSON(amen, &h.Amenities); err != nil {
			return nil, fmt.Errorf("hotel %s amenities: %w", h.ID, err)
		}
		if err := decodeJSON(facs, &h.Facilities); err != nil {
			return nil, fmt.Errorf("hotel %s facilities: %w", h.ID, err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
