package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feeportal/fee-service/internal/domain"
)

const feeRequestColumns = `id, student_name, reg_number, year, branch, section, fee_type, status,
               reason, faculty, amount, crt_fee, attendance, created_at, updated_at`

type postgresFeeRequestRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresFeeRequestRepository returns a Postgres-backed implementation.
func NewPostgresFeeRequestRepository(pool *pgxpool.Pool) FeeRequestRepository {
	return &postgresFeeRequestRepository{pool: pool}
}

func (r *postgresFeeRequestRepository) Create(ctx context.Context, request *domain.FeeRequest) error {
	const query = `
        INSERT INTO fee_requests (id, student_name, reg_number, year, branch, section, fee_type, status,
                                  reason, faculty, amount, crt_fee, attendance)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		request.StudentName,
		request.RegNumber,
		request.Year,
		request.Branch,
		request.Section,
		request.FeeType,
		request.Status,
		request.Reason,
		request.Faculty,
		request.Amount,
		request.CrtFee,
		request.Attendance,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *postgresFeeRequestRepository) GetByID(ctx context.Context, id string) (*domain.FeeRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	query := `SELECT ` + feeRequestColumns + ` FROM fee_requests WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *postgresFeeRequestRepository) GetFirstByRegNumber(ctx context.Context, regNumber string) (*domain.FeeRequest, error) {
	query := `SELECT ` + feeRequestColumns + `
        FROM fee_requests WHERE reg_number=$1 ORDER BY created_at ASC, id ASC LIMIT 1`
	return r.fetchSingle(ctx, query, regNumber)
}

func (r *postgresFeeRequestRepository) List(ctx context.Context, filter FeeRequestFilter) ([]domain.FeeRequest, error) {
	query := `SELECT ` + feeRequestColumns + ` FROM fee_requests`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status=$1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.FeeRequest{}
	for rows.Next() {
		request, err := scanFeeRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *request)
	}
	return result, rows.Err()
}

func (r *postgresFeeRequestRepository) TransitionStatus(ctx context.Context, id string, from domain.RequestStatus, update StatusUpdate) (*domain.FeeRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	query := `
        UPDATE fee_requests
        SET status=$1, reason=COALESCE($2::text, reason), faculty=COALESCE($3::text, faculty), updated_at=NOW()
        WHERE id=$4 AND status=$5
        RETURNING ` + feeRequestColumns

	request, err := scanFeeRequest(r.pool.QueryRow(ctx, query, update.Status, update.Reason, update.Faculty, id, from))
	if err == nil {
		return request, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM fee_requests WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, ErrStatusConflict
}

func (r *postgresFeeRequestRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.FeeRequest, error) {
	request, err := scanFeeRequest(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return request, nil
}

func scanFeeRequest(row pgx.Row) (*domain.FeeRequest, error) {
	var request domain.FeeRequest
	if err := row.Scan(
		&request.ID,
		&request.StudentName,
		&request.RegNumber,
		&request.Year,
		&request.Branch,
		&request.Section,
		&request.FeeType,
		&request.Status,
		&request.Reason,
		&request.Faculty,
		&request.Amount,
		&request.CrtFee,
		&request.Attendance,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}
