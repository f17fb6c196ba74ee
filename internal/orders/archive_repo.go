package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArchiveRepo struct{ DB *pgxpool.Pool }

// Insert stores o and its items in one transaction. An order already
// archived for the same session is left as is and reported with existed=true.
func (r *ArchiveRepo) Insert(ctx context.Context, o ArchivedOrder) (existed bool, err error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, `
		INSERT INTO order_archive(session_id, order_id, customer, payment_method, status, total, ordered_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7)
		ON CONFLICT (session_id, order_id) DO NOTHING
	`, o.SessionID, o.OrderID, o.Customer, o.PaymentMethod, o.Status, o.Total, o.OrderedAt)
	if err != nil {
		return false, err
	}
	if ct.RowsAffected() == 0 {
		return true, nil
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_archive_items(session_id, order_id, position, name, price)
			VALUES ($1, $2, $3, $4, $5::numeric)`,
			o.SessionID, o.OrderID, it.Position, it.Name, it.Price,
		); err != nil {
			return false, fmt.Errorf("archive item %d: %w", it.Position, err)
		}
	}
	return false, tx.Commit(ctx)
}

func (r *ArchiveRepo) ListByCustomer(ctx context.Context, customer string) ([]ArchivedOrder, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT session_id, order_id, customer, payment_method, status, total::text, ordered_at, archived_at
		FROM order_archive WHERE customer = $1 ORDER BY ordered_at, order_id`, customer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchivedOrder
	for rows.Next() {
		var o ArchivedOrder
		if err := rows.Scan(&o.SessionID, &o.OrderID, &o.Customer, &o.PaymentMethod, &o.Status, &o.Total, &o.OrderedAt, &o.ArchivedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.items(ctx, out[i].SessionID, out[i].OrderID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *ArchiveRepo) items(ctx context.Context, sessionID string, orderID int64) ([]ArchivedItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT position, name, price::text FROM order_archive_items
		WHERE session_id = $1 AND order_id = $2 ORDER BY position`, sessionID, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchivedItem
	for rows.Next() {
		var it ArchivedItem
		if err := rows.Scan(&it.Position, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return out, nil
}
