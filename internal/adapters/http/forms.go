package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// formText returns the trimmed form value.
func formText(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formDate parses a YYYY-MM-DD field. Blank or malformed input yields the zero time,
// which required-date validation then reports.
func formDate(r *http.Request, key string) time.Time {
	t, err := time.Parse(dateLayout, formText(r, key))
	if err != nil {
		return time.Time{}
	}
	return t
}

// formInt parses an integer field, using def when the field is blank.
// Malformed input yields 0 so range validation rejects it.
func formInt(r *http.Request, key string, def int) int {
	v := formText(r, key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// formID parses a row id field; 0 means none.
func formID(r *http.Request, key string) int64 {
	id, err := strconv.ParseInt(formText(r, key), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// formIDs parses every value of a multi-select id field, in submitted order.
// Malformed values become 0, which never matches a stored row.
func formIDs(r *http.Request, key string) []int64 {
	values := r.Form[key]
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			id = 0
		}
		ids = append(ids, id)
	}
	return ids
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseForm parses a url-encoded body, answering 400 on failure.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return false
	}
	return true
}
