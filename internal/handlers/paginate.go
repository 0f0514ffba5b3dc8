package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

// pageSize is how many posts a listing page shows.
const pageSize = 5

// pagination describes one window into the post listing. Page numbers
// start at 1; page 1 holds the newest posts.
type pagination struct {
	Page     int
	HasOlder bool
	HasNewer bool
	OlderURL string
	NewerURL string
}

// pageParam reads the ?page query parameter, clamping anything
// unparseable or below 1 to the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate computes the navigation state for the given page against the
// total number of posts. base is the listing path the page links stay on.
func paginate(base string, page, total int) pagination {
	p := pagination{Page: page}
	if page*pageSize < total {
		p.HasOlder = true
		p.OlderURL = fmt.Sprintf("%s?page=%d", base, page+1)
	}
	if page > 1 {
		p.HasNewer = true
		if page == 2 {
			p.NewerURL = base
		} else {
			p.NewerURL = fmt.Sprintf("%s?page=%d", base, page-1)
		}
	}
	return p
}
