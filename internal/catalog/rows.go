package catalog

import (
	"database/sql"
	"strconv"
)

// Field is one named cell of a row. Null distinguishes SQL NULL from an empty string.
type Field struct {
	Name  string
	Value string
	Null  bool
}

// Row is a tagged dataset row. The set of implementations is closed.
type Row interface {
	// Dataset names the dataset the row belongs to.
	Dataset() string
	// Fields returns the row cells in the dataset's column order.
	Fields() []Field
	withContent(clean func(string) string) Row
}

// Sanitize returns a copy of r with its long-form text column passed through clean.
// Other columns are left untouched.
func Sanitize(r Row, clean func(string) string) Row {
	return r.withContent(clean)
}

func nullable(name string, v sql.NullString) Field {
	return Field{Name: name, Value: v.String, Null: !v.Valid}
}

func cleanNullable(v sql.NullString, clean func(string) string) sql.NullString {
	if !v.Valid {
		return v
	}
	return sql.NullString{String: clean(v.String), Valid: true}
}

// PageRow is a published page.
type PageRow struct {
	ID      int64
	Title   sql.NullString
	Content sql.NullString
	Date    sql.NullString
	Author  sql.NullString
}

func (PageRow) Dataset() string { return "pages" }

func (r PageRow) Fields() []Field {
	return []Field{
		{Name: "post_id", Value: strconv.FormatInt(r.ID, 10)},
		nullable("post_title", r.Title),
		nullable("post_content", r.Content),
		nullable("post_date", r.Date),
		nullable("author_name", r.Author),
	}
}

func (r PageRow) withContent(clean func(string) string) Row {
	r.Content = cleanNullable(r.Content, clean)
	return r
}

// PostRow is a published blog post.
type PostRow struct {
	PageRow
	Tags sql.NullString
}

func (PostRow) Dataset() string { return "posts" }

func (r PostRow) Fields() []Field {
	return append(r.PageRow.Fields(), nullable("tags", r.Tags))
}

func (r PostRow) withContent(clean func(string) string) Row {
	r.Content = cleanNullable(r.Content, clean)
	return r
}

// ProductRow is a published WooCommerce product.
type ProductRow struct {
	PostRow
	Price sql.NullString
}

func (ProductRow) Dataset() string { return "products" }

func (r ProductRow) Fields() []Field {
	return append(r.PostRow.Fields(), nullable("price", r.Price))
}

func (r ProductRow) withContent(clean func(string) string) Row {
	r.Content = cleanNullable(r.Content, clean)
	return r
}

// ContactRow is a contact form submission.
type ContactRow struct {
	ID          int64
	Name        sql.NullString
	Email       sql.NullString
	Subject     sql.NullString
	Message     sql.NullString
	SubmittedAt sql.NullString
}

func (ContactRow) Dataset() string { return "contacts" }

func (r ContactRow) Fields() []Field {
	return []Field{
		{Name: "contact_id", Value: strconv.FormatInt(r.ID, 10)},
		nullable("contact_name", r.Name),
		nullable("email", r.Email),
		nullable("subject", r.Subject),
		nullable("message", r.Message),
		nullable("submitted_at", r.SubmittedAt),
	}
}

func (r ContactRow) withContent(clean func(string) string) Row {
	r.Message = cleanNullable(r.Message, clean)
	return r
}
