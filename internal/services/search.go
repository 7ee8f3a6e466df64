package services

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// searchColumns are the materiel columns matched by a free-text search.
var searchColumns = []string{"marque", "modele", "numero_serie", "type_materiel"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern lowercases term and escapes LIKE wildcards so it matches literally as a substring.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// SearchPredicate builds the WHERE fragment matching term as a case-insensitive
// substring of any search column. A blank term yields an empty predicate.
func SearchPredicate(term string) (string, []any, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", nil, nil
	}
	pattern := LikePattern(term)
	or := make(sq.Or, 0, len(searchColumns))
	for _, col := range searchColumns {
		or = append(or, sq.Expr("LOWER("+col+") LIKE ? ESCAPE '\\'", pattern))
	}
	return or.ToSql()
}
