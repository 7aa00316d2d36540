package repository

import "strings"

// likeEscape is the escape character declared in every search clause.
const likeEscape = "!"

// containsPattern turns operator search text into a LIKE pattern matching
// it as a case-insensitive substring.  Wildcards typed by the operator are
// matched literally.
func containsPattern(filter string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(filter)) + "%"
}

// searchClause builds the WHERE clause for a list query.  An empty filter
// lists every row.
func searchClause(column, filter string) (string, []any) {
	if filter == "" {
		return "", nil
	}
	return " WHERE LOWER(COALESCE(" + column + ", '')) LIKE ? ESCAPE '" + likeEscape + "'",
		[]any{containsPattern(filter)}
}
