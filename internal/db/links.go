package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"linkshare/internal/models"
	"linkshare/internal/validation"
)

const linkColumns = `id, user_id, created_by, category_id, category_name, name, url`

// Permission predicates over the links row, appended to WHERE clauses so a
// mutation only matches rows the caller may touch.
const (
	// canWriteLink binds (userID, userID, true).
	canWriteLink = `(links.user_id = ? OR EXISTS (
		SELECT 1 FROM shares
		WHERE shares.link_id = links.id AND shares.user_id = ? AND shares.is_writable = ?
	))`
	// isLinkOwner binds (userID).
	isLinkOwner = `links.user_id = ?`
)

// CreateLink inserts a link owned by owner. The owner's email and the
// category name are copied inside the same statement. ErrUserNotFound is
// returned when the owner no longer exists and ErrCategoryNotFound when
// categoryID does not.
func (d *DB) CreateLink(ctx context.Context, owner *models.Session, req *models.LinkRequest) (*models.Link, error) {
	query := d.x.Rebind(`
		INSERT INTO links (id, user_id, created_by, category_id, category_name, name, url)
		SELECT ?, users.id, users.email, categories.id, categories.name, ?, ?
		FROM categories
		JOIN users ON users.id = ?
		WHERE categories.id = ?
		RETURNING ` + linkColumns)

	var link models.Link
	_, err := d.allocate("links", func(id string) error {
		return d.x.QueryRowxContext(ctx, query,
			id, req.Name, req.URL, owner.UserID, req.CategoryID,
		).StructScan(&link)
	})
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := d.GetUserByID(ctx, owner.UserID); err != nil {
			return nil, err
		}
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return &link, nil
}

// ListLinks returns the links selected by filter, ordered by name.
func (d *DB) ListLinks(ctx context.Context, filter models.LinkFilter) ([]models.Link, error) {
	var (
		where []string
		args  []any
	)

	switch filter.Mode {
	case models.ModeOwn:
		where = append(where, isLinkOwner)
		args = append(args, filter.UserID)
	case models.ModeSharedUnwritable, models.ModeSharedWritable:
		where = append(where, `EXISTS (
			SELECT 1 FROM shares
			WHERE shares.link_id = links.id AND shares.user_id = ? AND shares.is_writable = ?
		)`)
		args = append(args, filter.UserID, filter.Mode == models.ModeSharedWritable)
	default:
		return nil, ErrInvalidMode
	}

	if !filter.MatchesAllCategories() {
		where = append(where, `links.category_id = ?`)
		args = append(args, filter.CategoryID)
	}

	if filter.Name != "" {
		where = append(where, `LOWER(links.name) LIKE ? ESCAPE '\'`)
		args = append(args, validation.ContainsPattern(filter.Name))
	}

	query := `SELECT ` + linkColumns + ` FROM links WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY links.name, links.id`

	links := []models.Link{}
	if err := d.x.SelectContext(ctx, &links, d.x.Rebind(query), args...); err != nil {
		return nil, err
	}
	return links, nil
}

// GetLink returns the link with the given id regardless of caller.
func (d *DB) GetLink(ctx context.Context, id string) (*models.Link, error) {
	var link models.Link
	err := d.x.GetContext(ctx, &link, d.x.Rebind(`SELECT `+linkColumns+` FROM links WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetLinkForUser returns a link together with the share granting userID
// access to it, if any. grant is nil when userID has no share; the caller
// decides what the combination permits.
func (d *DB) GetLinkForUser(ctx context.Context, linkID, userID string) (*models.Link, *models.Share, error) {
	link, err := d.GetLink(ctx, linkID)
	if err != nil {
		return nil, nil, err
	}

	grant, err := d.GetShareForUser(ctx, linkID, userID)
	if errors.Is(err, ErrShareNotFound) {
		return link, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return link, grant, nil
}

// UpdateLink rewrites a link's category, name and url when userID owns it or
// holds a writable share. ErrLinkNotFound is returned when the caller may not
// write the link, and ErrCategoryNotFound when it may but the category does
// not exist.
func (d *DB) UpdateLink(ctx context.Context, linkID, userID string, req *models.LinkRequest) (*models.Link, error) {
	query := d.x.Rebind(`
		UPDATE links
		SET category_id = ?,
			category_name = (SELECT categories.name FROM categories WHERE categories.id = ?),
			name = ?,
			url = ?
		WHERE id = ? AND ` + canWriteLink + `
			AND EXISTS (SELECT 1 FROM categories WHERE categories.id = ?)
		RETURNING ` + linkColumns)

	var link models.Link
	err := d.x.QueryRowxContext(ctx, query,
		req.CategoryID, req.CategoryID, req.Name, req.URL,
		linkID, userID, userID, true,
		req.CategoryID,
	).StructScan(&link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, d.explainMissingUpdate(ctx, linkID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}
	return &link, nil
}

// explainMissingUpdate names why a conditioned link update matched nothing.
// The category is only reported once the caller is known to hold write access.
func (d *DB) explainMissingUpdate(ctx context.Context, linkID, userID string) error {
	var writable bool
	err := d.x.GetContext(ctx, &writable, d.x.Rebind(`
		SELECT EXISTS (SELECT 1 FROM links WHERE id = ? AND `+canWriteLink+`)`),
		linkID, userID, userID, true)
	if err != nil {
		return fmt.Errorf("failed to update link: %w", err)
	}
	if writable {
		return ErrCategoryNotFound
	}
	return ErrLinkNotFound
}

// DeleteLink removes a link owned by userID; its shares cascade.
func (d *DB) DeleteLink(ctx context.Context, linkID, userID string) error {
	result, err := d.x.ExecContext(ctx,
		d.x.Rebind(`DELETE FROM links WHERE id = ? AND `+isLinkOwner), linkID, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLinkNotFound
	}
	return nil
}
