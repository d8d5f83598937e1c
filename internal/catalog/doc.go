// Package catalog holds the fixed set of WordPress datasets that can be exported.
//
// Each Dataset owns parameterless SQL built from static fragments, the tables
// it requires, optional joins that degrade to NULL columns when their tables
// are absent, and a scanner producing typed rows (PostRow, PageRow,
// ProductRow, ContactRow) behind the sealed Row interface.
package catalog
