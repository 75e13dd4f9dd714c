package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trip_hotels/internal/domain"
)

// batch keeps each INSERT well under max_allowed_packet.
const batch = 100

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// SaveHotels upserts all records of one run in a single transaction.
// Records without a source id are skipped: they would collapse onto one row.
func (r *Repo) SaveHotels(ctx context.Context, all []domain.HotelRecord) error {
	hs := make([]domain.HotelRecord, 0, len(all))
	for _, h := range all {
		if h.HasSourceID() {
			hs = append(hs, h)
		}
	}
	if skipped := len(all) - len(hs); skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("mysql: records without source id not stored")
	}
	if len(hs) == 0 {
		return nil
	}
	runID := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(hs); start += batch {
		end := min(start+batch, len(hs))
		values := make([]string, 0, end-start)
		args := make([]any, 0, (end-start)*17)
		for _, h := range hs[start:end] {
			imgs, _ := json.Marshal(h.Images)
			amen, _ := json.Marshal(h.Amenities)
			rooms, err := json.Marshal(h.RoomTypes)
			if err != nil {
				return fmt.Errorf("marshal rooms for %s: %w", h.ID, err)
			}
			values = append(values, upsertHotelRow)
			args = append(args,
				h.ID, h.Name, h.Location, h.City, h.Country, h.Description,
				h.Price, h.Rating, h.Reviews, h.Stars, h.PropertyType,
				string(imgs), string(amen), string(rooms),
				h.Coordinates.Lat, h.Coordinates.Lng, runID,
			)
		}
		q := upsertHotelPrefix + strings.Join(values, ",") + upsertHotelOnDup
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("upsert hotels: %w", err)
		}
	}
	return tx.Commit()
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.HotelRecord, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HotelRecord{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHotels(ctx context.Context, city string) ([]domain.HotelRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if city == "" {
		rows, err = r.db.QueryContext(ctx, listHotelsSQL)
	} else {
		rows, err = r.db.QueryContext(ctx, listHotelsByCitySQL, city)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.HotelRecord{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHotel(s scanner) (domain.HotelRecord, error) {
	var h domain.HotelRecord
	var imgs, amen, rooms []byte
	if err := s.Scan(
		&h.ID, &h.Name, &h.Location, &h.City, &h.Country, &h.Description,
		&h.Price, &h.Rating, &h.Reviews, &h.Stars, &h.PropertyType,
		&imgs, &amen, &rooms,
		&h.Coordinates.Lat, &h.Coordinates.Lng,
	); err != nil {
		return domain.HotelRecord{}, err
	}
	if err := json.Unmarshal(imgs, &h.Images); err != nil {
		return domain.HotelRecord{}, fmt.Errorf("images of %s: %w", h.ID, err)
	}
	if err := json.Unmarshal(amen, &h.Amenities); err != nil {
		return domain.HotelRecord{}, fmt.Errorf("amenities of %s: %w", h.ID, err)
	}
	if err := json.Unmarshal(rooms, &h.RoomTypes); err != nil {
		return domain.HotelRecord{}, fmt.Errorf("room types of %s: %w", h.ID, err)
	}
	return h, nil
}
