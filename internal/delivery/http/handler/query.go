package handler

import (
	"net/http"
	"strconv"
)

const defaultPageLimit = 20

// parsePagination reads offset/limit query params with sane bounds
func parsePagination(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = defaultPageLimit
	}

	return offset, limit
}
