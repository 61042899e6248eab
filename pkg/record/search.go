package record

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// SearchFilter translates a free-text search string into a filter document.
//
// A nil, empty, or whitespace-only search produces the match-all filter.
// Otherwise the trimmed string becomes a case-insensitive literal substring
// match OR-ed across every configured text field, plus a literal prefix match
// against the textual form of the business key: searching "5.1" matches keys
// 5.1 and 5.12 but not 15.1. The search is a pure substring/prefix predicate,
// never ranked, fuzzy, or numeric-range.
func SearchFilter(search string, textFields []string, keyField string) bson.M {
	search = strings.TrimSpace(search)
	if search == "" {
		return bson.M{}
	}

	literal := regexp.QuoteMeta(search)

	clauses := make([]bson.M, 0, len(textFields)+1)
	for _, field := range textFields {
		clauses = append(clauses, bson.M{
			field: bson.M{"$regex": literal, "$options": "i"},
		})
	}
	if keyField != "" {
		// The key is stored as a double; match the prefix against its
		// string form so "5.1" finds 5.1 and 5.12.
		clauses = append(clauses, bson.M{
			"$expr": bson.M{
				"$regexMatch": bson.M{
					"input":   bson.M{"$toString": "$" + keyField},
					"regex":   "^" + literal,
					"options": "i",
				},
			},
		})
	}

	if len(clauses) == 0 {
		return bson.M{}
	}
	return bson.M{"$or": clauses}
}
