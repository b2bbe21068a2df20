package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkshare/internal/models"
)

func linkNames(links []models.Link) []string {
	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Name)
	}
	return names
}

func TestCreateLink(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, database, "alice@example.com")

	link, err := database.CreateLink(ctx, alice, &models.LinkRequest{
		CategoryID: categoryID(t, database, "Reading"),
		Name:       "Go blog",
		URL:        "https://go.dev/blog",
	})
	require.NoError(t, err)

	assert.Regexp(t, hexID, link.ID)
	assert.Equal(t, alice.UserID, link.UserID)
	assert.Equal(t, "alice@example.com", link.CreatedBy)
	assert.Equal(t, "Reading", link.CategoryName)
	assert.Equal(t, "Go blog", link.Name)
	assert.Equal(t, "https://go.dev/blog", link.URL)
}

func TestCreateLink_UnknownCategory(t *testing.T) {
	database := setupTestDB(t)
	alice := mustCreateUser(t, database, "alice@example.com")

	_, err := database.CreateLink(context.Background(), alice, &models.LinkRequest{
		CategoryID: "missing", Name: "x", URL: "https://x.test",
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateLink_DeletedOwner(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, database, "alice@example.com")
	require.NoError(t, database.DeleteUser(ctx, alice.UserID))

	_, err := database.CreateLink(ctx, alice, &models.LinkRequest{
		CategoryID: categoryID(t, database, "Reading"), Name: "x", URL: "https://x.test",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)

	counts, err := database.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Links)
}

func TestListLinks_Modes(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, database, "alice@example.com")
	bob := mustCreateUser(t, database, "bob@example.com")

	mustCreateLink(t, database, bob, "Work", "bob own")
	readable := mustCreateLink(t, database, alice, "Work", "alice readable")
	writable := mustCreateLink(t, database, alice, "Work", "alice writable")
	mustCreateLink(t, database, alice, "Work", "alice private")

	_, err := database.CreateShare(ctx, alice.UserID, readable.ID, bob.UserID, false)
	require.NoError(t, err)
	_, err = database.CreateShare(ctx, alice.UserID, writable.ID, bob.UserID, true)
	require.NoError(t, err)

	tests := []struct {
		mode string
		want []string
	}{
		{models.ModeOwn, []string{"bob own"}},
		{models.ModeSharedUnwritable, []string{"alice readable"}},
		{models.ModeSharedWritable, []string{"alice writable"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			links, err := database.ListLinks(ctx, models.LinkFilter{UserID: bob.UserID, Mode: tt.mode})
			require.NoError(t, err)
			assert.Equal(t, tt.want, linkNames(links))
		})
	}

	_, err = database.ListLinks(ctx, models.LinkFilter{UserID: bob.UserID, Mode: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestListLinks_Filters(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, database, "alice@example.com")

	mustCreateLink(t, database, alice, "Work", "Team Wiki")
	mustCreateLink(t, database, alice, "Work", "100% uptime")
	mustCreateLink(t, database, alice, "Tools", "wiki_tools")
	mustCreateLink(t, database, alice, "Tools", "wikiXtools")

	tests := []struct {
		name     string
		category string
		search   string
		want     []string
	}{
		{"no filter", "", "", []string{"100% uptime", "Team Wiki", "wikiXtools", "wiki_tools"}},
		{"all sentinel", models.CategoryAll, "", []string{"100% uptime", "Team Wiki", "wikiXtools", "wiki_tools"}},
		{"category", categoryID(t, database, "Tools"), "", []string{"wikiXtools", "wiki_tools"}},
		{"case-insensitive name", "", "WIKI", []string{"Team Wiki", "wikiXtools", "wiki_tools"}},
		{"underscore is literal", "", "wiki_", []string{"wiki_tools"}},
		{"percent is literal", "", "100%", []string{"100% uptime"}},
		{"category and name", categoryID(t, database, "Work"), "wiki", []string{"Team Wiki"}},
		{"unknown category", "nope", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, err := database.ListLinks(ctx, models.LinkFilter{
				UserID:     alice.UserID,
				Mode:       models.ModeOwn,
				CategoryID: tt.category,
				Name:       tt.search,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, linkNames(links))
		})
	}
}

func TestGetLinkForUser(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, database, "alice@example.com")
	bob := mustCreateUser(t, database, "bob@example.com")
	carol := mustCreateUser(t, database, "carol@example.com")
	link := mustCreateLink(t, database, alice, "Work", "wiki")

	share, err := database.CreateShare(ctx, alice.UserID, link.ID, bob.UserID, true)
	require.NoError(t, err)

	got, grant, err := database.GetLinkForUser(ctx, link.ID, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, link.ID, got.ID)
	assert.Nil(t, grant)

	_, grant, err = database.GetLinkForUser(ctx, link.ID, bob.UserID)
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Equal(t, share.ID, grant.ID)
	assert.True(t, grant.IsWritable)

	_, grant, err = database.GetLinkForUser(ctx, link.ID, carol.UserID)
	require.NoError(t, err)
	assert.Nil(t, grant)

	_, _, err = database.GetLinkForUser(ctx, "missing", alice.UserID)
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestUpdateLink_Authorization(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, database, "alice@example.com")
	writer := mustCreateUser(t, database, "writer@example.com")
	reader := mustCreateUser(t, database, "reader@example.com")
	stranger := mustCreateUser(t, database, "stranger@example.com")
	link := mustCreateLink(t, database, alice, "Work", "wiki")

	_, err := database.CreateShare(ctx, alice.UserID, link.ID, writer.UserID, true)
	require.NoError(t, err)
	_, err = database.CreateShare(ctx, alice.UserID, link.ID, reader.UserID, false)
	require.NoError(t, err)

	toolsID := categoryID(t, database, "Tools")

	tests := []struct {
		name    string
		caller  *models.Session
		wantErr error
	}{
		{"owner", alice, nil},
		{"writable share", writer, nil},
		{"read-only share", reader, ErrLinkNotFound},
		{"no share", stranger, ErrLinkNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := database.UpdateLink(ctx, link.ID, tt.caller.UserID, &models.LinkRequest{
				CategoryID: toolsID,
				Name:       "by " + tt.caller.Email,
				URL:        "https://example.com/updated",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "by "+tt.caller.Email, updated.Name)
			assert.Equal(t, "Tools", updated.CategoryName)
			assert.Equal(t, alice.UserID, updated.UserID)
			assert.Equal(t, "alice@example.com", updated.CreatedBy)
		})
	}

	stored, err := database.GetLink(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, "by writer@example.com", stored.Name)
}

func TestUpdateLink_UnknownCategory(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, database, "alice@example.com")
	stranger := mustCreateUser(t, database, "stranger@example.com")
	link := mustCreateLink(t, database, alice, "Work", "wiki")

	req := &models.LinkRequest{CategoryID: "missing", Name: "x", URL: "https://x.test"}

	_, err := database.UpdateLink(ctx, link.ID, alice.UserID, req)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	// Without write access the category is never consulted.
	_, err = database.UpdateLink(ctx, link.ID, stranger.UserID, req)
	assert.ErrorIs(t, err, ErrLinkNotFound)

	_, err = database.UpdateLink(ctx, "missing", alice.UserID, req)
	assert.ErrorIs(t, err, ErrLinkNotFound)

	stored, err := database.GetLink(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, "wiki", stored.Name)
	assert.Equal(t, "Work", stored.CategoryName)
}

func TestDeleteLink_OwnerOnly(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, database, "alice@example.com")
	writer := mustCreateUser(t, database, "writer@example.com")
	link := mustCreateLink(t, database, alice, "Work", "wiki")
	_, err := database.CreateShare(ctx, alice.UserID, link.ID, writer.UserID, true)
	require.NoError(t, err)

	assert.ErrorIs(t, database.DeleteLink(ctx, link.ID, writer.UserID), ErrLinkNotFound)

	require.NoError(t, database.DeleteLink(ctx, link.ID, alice.UserID))

	counts, err := database.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Links)
	assert.Equal(t, 0, counts.Shares)

	assert.ErrorIs(t, database.DeleteLink(ctx, link.ID, alice.UserID), ErrLinkNotFound)
}
