package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"linkshare/internal/models"
)

const shareColumns = `id, link_id, user_id, email, is_writable`

// sharePairSavepoint isolates one pair of a bulk share so its failure does
// not abort the surrounding transaction.
const sharePairSavepoint = "share_pair"

// insertShareQuery grants granteeID access to a link owned by ownerID. The
// grantee's email is copied inside the statement. No row is inserted when
// the link is missing, not owned by ownerID, the grantee is unknown, or the
// grantee is the owner.
//
// Binds: id, is_writable, grantee id, link id, owner id.
const insertShareQuery = `
	INSERT INTO shares (id, link_id, user_id, email, is_writable)
	SELECT ?, links.id, users.id, users.email, ?
	FROM links
	JOIN users ON users.id = ?
	WHERE links.id = ? AND links.user_id = ? AND users.id <> links.user_id
	RETURNING ` + shareColumns

// ownsShareLink restricts a shares statement to rows whose link is owned by
// the bound user.
const ownsShareLink = `EXISTS (
	SELECT 1 FROM links WHERE links.id = shares.link_id AND links.user_id = ?
)`

// insertShare runs insertShareQuery on q. It returns sql.ErrNoRows when the
// conditions filtered the row out.
func (d *DB) insertShare(ctx context.Context, q sqlx.QueryerContext, id, ownerID, linkID, granteeID string, writable bool) (*models.Share, error) {
	var share models.Share
	err := q.QueryRowxContext(ctx, d.x.Rebind(insertShareQuery),
		id, writable, granteeID, linkID, ownerID,
	).StructScan(&share)
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// CreateShare grants granteeID access to linkID, which ownerID must own.
// Returns ErrSelfShare, ErrUserNotFound, ErrLinkNotFound or ErrDuplicateShare
// for the corresponding domain failures.
func (d *DB) CreateShare(ctx context.Context, ownerID, linkID, granteeID string, writable bool) (*models.Share, error) {
	if ownerID == granteeID {
		return nil, ErrSelfShare
	}

	var share *models.Share
	_, err := d.allocate("shares", func(id string) error {
		var err error
		share, err = d.insertShare(ctx, d.x, id, ownerID, linkID, granteeID, writable)
		return err
	})
	switch {
	case err == nil:
		return share, nil
	case errors.Is(err, sql.ErrNoRows):
		return nil, d.explainMissingShare(ctx, granteeID)
	case uniqueViolation(err) == keySharePair:
		return nil, ErrDuplicateShare
	default:
		return nil, fmt.Errorf("failed to create share: %w", err)
	}
}

// explainMissingShare picks the error for an insert that matched no row.
// The link case is reported as not found whether it is missing or owned by
// someone else.
func (d *DB) explainMissingShare(ctx context.Context, granteeID string) error {
	if _, err := d.GetUserByID(ctx, granteeID); err != nil {
		return err
	}
	return ErrLinkNotFound
}

// CreateShares grants every pair in one transaction. A pair that is already
// shared, names a link ownerID does not own, names an unknown user, or names
// the owner is skipped. Any other failure rolls back the whole batch.
func (d *DB) CreateShares(ctx context.Context, ownerID string, pairs []models.SharePair, writable bool) ([]models.Share, error) {
	tx, err := d.x.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := []models.Share{}
	for _, pair := range pairs {
		if pair.UserID == ownerID {
			continue
		}

		var share *models.Share
		_, err := d.allocate("shares", func(id string) error {
			return withSavepoint(ctx, tx, sharePairSavepoint, func() error {
				var err error
				share, err = d.insertShare(ctx, tx, id, ownerID, pair.LinkID, pair.UserID, writable)
				return err
			})
		})
		switch {
		case err == nil:
			created = append(created, *share)
		case errors.Is(err, sql.ErrNoRows), uniqueViolation(err) == keySharePair:
			slog.Debug("bulk share pair skipped", "link_id", pair.LinkID, "user_id", pair.UserID)
		default:
			return nil, fmt.Errorf("failed to share link %s with user %s: %w", pair.LinkID, pair.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit shares: %w", err)
	}
	return created, nil
}

// withSavepoint runs fn inside a named savepoint, rolling back to it when fn fails.
func withSavepoint(ctx context.Context, tx *sqlx.Tx, name string, fn func() error) error {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		if _, relErr := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); relErr != nil {
			return errors.Join(err, relErr)
		}
		return err
	}
	_, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name)
	return err
}

// GetShareForUser returns userID's share on linkID.
func (d *DB) GetShareForUser(ctx context.Context, linkID, userID string) (*models.Share, error) {
	var share models.Share
	err := d.x.GetContext(ctx, &share,
		d.x.Rebind(`SELECT `+shareColumns+` FROM shares WHERE link_id = ? AND user_id = ?`),
		linkID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// ListSharesForLink returns the shares of a link owned by ownerID, ordered
// by grantee email. ErrLinkNotFound is returned when ownerID does not own it.
func (d *DB) ListSharesForLink(ctx context.Context, linkID, ownerID string) ([]models.Share, error) {
	var owned bool
	err := d.x.GetContext(ctx, &owned,
		d.x.Rebind(`SELECT EXISTS (SELECT 1 FROM links WHERE id = ? AND user_id = ?)`),
		linkID, ownerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrLinkNotFound
	}

	shares := []models.Share{}
	err = d.x.SelectContext(ctx, &shares,
		d.x.Rebind(`SELECT `+shareColumns+` FROM shares WHERE link_id = ? ORDER BY email, id`),
		linkID)
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// UpdateShare changes the writability of a share on a link owned by ownerID.
func (d *DB) UpdateShare(ctx context.Context, shareID, ownerID string, writable bool) (*models.Share, error) {
	query := d.x.Rebind(`
		UPDATE shares SET is_writable = ?
		WHERE id = ? AND ` + ownsShareLink + `
		RETURNING ` + shareColumns)

	var share models.Share
	err := d.x.QueryRowxContext(ctx, query, writable, shareID, ownerID).StructScan(&share)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update share: %w", err)
	}
	return &share, nil
}

// DeleteShare revokes a share on a link owned by ownerID.
func (d *DB) DeleteShare(ctx context.Context, shareID, ownerID string) error {
	result, err := d.x.ExecContext(ctx,
		d.x.Rebind(`DELETE FROM shares WHERE id = ? AND `+ownsShareLink), shareID, ownerID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrShareNotFound
	}
	return nil
}
