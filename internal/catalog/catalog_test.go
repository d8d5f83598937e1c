package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

func tables(names ...string) TableSet {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(t string) bool { return set[t] }
}

var allTables = tables(TablePosts, TablePostMeta, TableUsers, TableTermRelationships,
	TableTermTaxonomy, TableTerms, TableContactForm)

func TestDefault_OrderAndNames(t *testing.T) {
	assert.Equal(t, []string{"posts", "pages", "products", "contacts"}, Default().Names())
}

func TestDataset_Columns(t *testing.T) {
	c := Default()
	tests := map[string][]string{
		"posts":    {"post_id", "post_title", "post_content", "post_date", "author_name", "tags"},
		"pages":    {"post_id", "post_title", "post_content", "post_date", "author_name"},
		"products": {"post_id", "post_title", "post_content", "post_date", "author_name", "tags", "price"},
		"contacts": {"contact_id", "contact_name", "email", "subject", "message", "submitted_at"},
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			d, ok := c.Lookup(name)
			require.True(t, ok)
			assert.Equal(t, want, d.Columns())
		})
	}
}

func TestDataset_Required(t *testing.T) {
	c := Default()
	products, _ := c.Lookup("products")
	assert.Equal(t, []string{TablePosts, TablePostMeta}, products.Required())
	contacts, _ := c.Lookup("contacts")
	assert.Equal(t, []string{TableContactForm}, contacts.Required())
	assert.Empty(t, contacts.Optional())
}

func TestDataset_SQL_AllJoins(t *testing.T) {
	posts, _ := Default().Lookup("posts")
	query := posts.SQL(allTables)

	assert.Contains(t, query, "MAX(u.display_name) AS author_name")
	assert.Contains(t, query, "GROUP_CONCAT(DISTINCT t.name ORDER BY t.name SEPARATOR ', ') AS tags")
	assert.Contains(t, query, "LEFT JOIN wp_users u ON p.post_author = u.ID")
	assert.Contains(t, query, "LEFT JOIN wp_term_taxonomy tt ON tr.term_taxonomy_id = tt.term_taxonomy_id\n")
	assert.NotContains(t, query, "tt.taxonomy =")
	assert.Contains(t, query, "p.post_type = 'post' AND p.post_status = 'publish'")
	assert.Contains(t, query, "GROUP BY\n    p.ID")
	assert.Equal(t, []string{"author", "tags"}, posts.ActiveJoins(allTables))
}

func TestDataset_SQL_DegradesWithoutOptionalTables(t *testing.T) {
	posts, _ := Default().Lookup("posts")
	query := posts.SQL(tables(TablePosts))

	assert.Contains(t, query, "NULL AS author_name")
	assert.Contains(t, query, "NULL AS tags")
	assert.NotContains(t, query, "wp_users")
	assert.NotContains(t, query, "wp_terms")
	assert.Empty(t, posts.ActiveJoins(tables(TablePosts)))
	assert.Equal(t, []string{"author", "tags"}, posts.InactiveJoins(tables(TablePosts)))
}

func TestDataset_SQL_PartialTagTables(t *testing.T) {
	posts, _ := Default().Lookup("posts")
	query := posts.SQL(tables(TablePosts, TableUsers, TableTerms))

	assert.Contains(t, query, "MAX(u.display_name) AS author_name")
	assert.Contains(t, query, "NULL AS tags")
	assert.NotContains(t, query, "wp_term_relationships")
}

func TestDataset_SQL_ProductsPrice(t *testing.T) {
	products, _ := Default().Lookup("products")
	query := products.SQL(tables(TablePosts, TablePostMeta))

	assert.Contains(t, query, "pm.meta_key = '_price'")
	assert.Contains(t, query, "MAX(pm.meta_value) AS price")
	assert.Contains(t, query, "NULL AS tags")
	assert.NotContains(t, query, "tt.taxonomy")
}

func TestDataset_SQL_ProductTagsOnly(t *testing.T) {
	products, _ := Default().Lookup("products")
	query := products.SQL(allTables)

	assert.Contains(t, query, "tt.taxonomy = 'product_tag'")
}

func TestSelect(t *testing.T) {
	c := Default()

	all, err := c.Select(nil)
	require.NoError(t, err)
	assert.Equal(t, c.Names(), all.Names())

	sub, err := c.Select([]string{"contacts", " Posts "})
	require.NoError(t, err)
	assert.Equal(t, []string{"posts", "contacts"}, sub.Names())

	_, err = c.Select([]string{"posts", "comments"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, wp2csv.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "comments")
}

func TestFetch_Posts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	posts, _ := Default().Lookup("posts")
	mock.ExpectQuery(regexp.QuoteMeta("FROM\n    wp_posts p")).
		WillReturnRows(sqlmock.NewRows(posts.Columns()).
			AddRow(1, "Hello", "<p>Hi</p>", "2024-01-02 03:04:05", "Admin", "go, sql").
			AddRow(2, "Draftless", "", "2024-01-03 00:00:00", nil, nil))

	rows, err := posts.Fetch(context.Background(), db, allTables)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first, ok := rows[0].(PostRow)
	require.True(t, ok)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Admin", first.Author.String)
	assert.Equal(t, "go, sql", first.Tags.String)

	second := rows[1].Fields()
	assert.True(t, second[4].Null)
	assert.True(t, second[5].Null)
	assert.False(t, second[2].Null)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetch_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	contacts, _ := Default().Lookup("contacts")
	mock.ExpectQuery("FROM").WillReturnError(errors.New("Error 1146: Table doesn't exist"))

	_, err = contacts.Fetch(context.Background(), db, allTables)
	require.Error(t, err)
	assert.True(t, errors.Is(err, wp2csv.ErrQueryFailed))
	assert.Contains(t, err.Error(), "contacts")
}

func TestFetch_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	contacts, _ := Default().Lookup("contacts")
	mock.ExpectQuery("FROM").
		WillReturnRows(sqlmock.NewRows(contacts.Columns()).
			AddRow("not-a-number", "A", "a@example.com", "s", "m", "2024-01-01"))

	_, err = contacts.Fetch(context.Background(), db, allTables)
	require.Error(t, err)
	assert.True(t, errors.Is(err, wp2csv.ErrQueryFailed))
}
