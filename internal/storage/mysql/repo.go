package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bonsplans/internal/domain"
)

var ErrNotFound = errors.New("inquiry not found")

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Repo archives contact inquiries and their delivery outcome.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) SaveInquiry(ctx context.Context, in domain.Inquiry) error {
	_, err := r.db.ExecContext(ctx, insertInquirySQL,
		in.ID,
		in.Name,
		in.Email,
		valStr(in.Phone),
		in.Establishment,
		in.Message,
		in.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save inquiry %s: %w", in.ID, err)
	}
	return nil
}

func (r *Repo) MarkDelivery(ctx context.Context, id string, delivered bool, detail string) error {
	res, err := r.db.ExecContext(ctx, markDeliverySQL, delivered, valStr(detail), id)
	if err != nil {
		return fmt.Errorf("mark delivery %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// InquiryRecord is an archived inquiry with its delivery state.
type InquiryRecord struct {
	domain.Inquiry
	Delivered *bool
	Note      string
}

func (r *Repo) GetInquiry(ctx context.Context, id string) (InquiryRecord, error) {
	var rec InquiryRecord
	var phone, note sql.NullString
	var delivered sql.NullBool
	err := r.db.QueryRowContext(ctx, getInquirySQL, id).Scan(
		&rec.ID,
		&rec.Name,
		&rec.Email,
		&phone,
		&rec.Establishment,
		&rec.Message,
		&rec.CreatedAt,
		&delivered,
		&note,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return InquiryRecord{}, ErrNotFound
	}
	if err != nil {
		return InquiryRecord{}, err
	}
	rec.Phone = phone.String
	rec.Note = note.String
	if delivered.Valid {
		v := delivered.Bool
		rec.Delivered = &v
	}
	return rec, nil
}
