package catalog

import "database/sql"

// WordPress core and plugin tables referenced by the catalog.
const (
	TablePosts             = "wp_posts"
	TablePostMeta          = "wp_postmeta"
	TableUsers             = "wp_users"
	TableTermRelationships = "wp_term_relationships"
	TableTermTaxonomy      = "wp_term_taxonomy"
	TableTerms             = "wp_terms"
	TableContactForm       = "wp_contact_form"
)

const (
	joinAuthor = "author"
	joinTags   = "tags"
)

func authorJoin() join {
	return join{
		tables:  []string{TableUsers},
		clauses: []string{"LEFT JOIN wp_users u ON p.post_author = u.ID"},
	}
}

// tagsJoin attaches the terms of a post. An empty taxonomy keeps every term,
// categories included.
func tagsJoin(taxonomy string) join {
	onTaxonomy := "LEFT JOIN wp_term_taxonomy tt ON tr.term_taxonomy_id = tt.term_taxonomy_id"
	if taxonomy != "" {
		onTaxonomy += " AND tt.taxonomy = '" + taxonomy + "'"
	}
	return join{
		tables: []string{TableTermRelationships, TableTermTaxonomy, TableTerms},
		clauses: []string{
			"LEFT JOIN wp_term_relationships tr ON p.ID = tr.object_id",
			onTaxonomy,
			"LEFT JOIN wp_terms t ON tt.term_id = t.term_id",
		},
	}
}

func postColumns() []column {
	return []column{
		{name: "post_id", expr: "p.ID"},
		{name: "post_title", expr: "p.post_title"},
		{name: "post_content", expr: "p.post_content"},
		{name: "post_date", expr: "p.post_date"},
		{name: "author_name", expr: "MAX(u.display_name)", join: joinAuthor},
	}
}

const tagsExpr = "GROUP_CONCAT(DISTINCT t.name ORDER BY t.name SEPARATOR ', ')"

func publishedOf(postType string) string {
	return "p.post_type = '" + postType + "' AND p.post_status = 'publish'"
}

func postsDataset() *Dataset {
	return &Dataset{
		Name:        "posts",
		Description: "Published blog posts with author and terms (tags and categories)",
		required:    []string{TablePosts},
		from:        "wp_posts p",
		joins:       map[string]join{joinAuthor: authorJoin(), joinTags: tagsJoin("")},
		joinSeq:     []string{joinAuthor, joinTags},
		columns:     append(postColumns(), column{name: "tags", expr: tagsExpr, join: joinTags}),
		where:       publishedOf("post"),
		groupBy:     "p.ID",
		orderBy:     "p.ID",
		scan:        scanPost,
	}
}

func pagesDataset() *Dataset {
	return &Dataset{
		Name:        "pages",
		Description: "Published pages with author",
		required:    []string{TablePosts},
		from:        "wp_posts p",
		joins:       map[string]join{joinAuthor: authorJoin()},
		joinSeq:     []string{joinAuthor},
		columns:     postColumns(),
		where:       publishedOf("page"),
		groupBy:     "p.ID",
		orderBy:     "p.ID",
		scan:        scanPage,
	}
}

func productsDataset() *Dataset {
	return &Dataset{
		Name:        "products",
		Description: "Published WooCommerce products with price and tags",
		required:    []string{TablePosts, TablePostMeta},
		from:        "wp_posts p",
		clauses:     []string{"LEFT JOIN wp_postmeta pm ON p.ID = pm.post_id AND pm.meta_key = '_price'"},
		joins:       map[string]join{joinAuthor: authorJoin(), joinTags: tagsJoin("product_tag")},
		joinSeq:     []string{joinAuthor, joinTags},
		columns: append(postColumns(),
			column{name: "tags", expr: tagsExpr, join: joinTags},
			column{name: "price", expr: "MAX(pm.meta_value)"},
		),
		where:   publishedOf("product"),
		groupBy: "p.ID",
		orderBy: "p.ID",
		scan:    scanProduct,
	}
}

func contactsDataset() *Dataset {
	return &Dataset{
		Name:        "contacts",
		Description: "Contact form submissions",
		required:    []string{TableContactForm},
		from:        "wp_contact_form c",
		columns: []column{
			{name: "contact_id", expr: "c.id"},
			{name: "contact_name", expr: "c.name"},
			{name: "email", expr: "c.email"},
			{name: "subject", expr: "c.subject"},
			{name: "message", expr: "c.message"},
			{name: "submitted_at", expr: "c.submitted_at"},
		},
		orderBy: "c.id",
		scan:    scanContact,
	}
}

func scanPost(rows *sql.Rows) (Row, error) {
	var r PostRow
	err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.Date, &r.Author, &r.Tags)
	return r, err
}

func scanPage(rows *sql.Rows) (Row, error) {
	var r PageRow
	err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.Date, &r.Author)
	return r, err
}

func scanProduct(rows *sql.Rows) (Row, error) {
	var r ProductRow
	err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.Date, &r.Author, &r.Tags, &r.Price)
	return r, err
}

func scanContact(rows *sql.Rows) (Row, error) {
	var r ContactRow
	err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Subject, &r.Message, &r.SubmittedAt)
	return r, err
}
