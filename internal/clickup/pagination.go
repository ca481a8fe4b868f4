package clickup

// The provider signals "there are more pages" in three different ways
// depending on endpoint version: a continuation cursor, a numeric next_page,
// or a last_page count. Each response is decoded once into a tagged cursor so
// the fetch loop is a single dispatch over the tag.

type cursorKind int

const (
	cursorExhausted cursorKind = iota
	cursorToken
	cursorPageNumber
	cursorLastPageCount
)

// pageCursor is the decoded continuation signal of one response.
type pageCursor struct {
	kind     cursorKind
	token    string // cursorToken
	nextPage int    // cursorPageNumber, cursorLastPageCount
}

// pageSignals are the raw continuation fields a paged response may carry.
type pageSignals struct {
	Cursor   flexString `json:"cursor"`
	NextPage *flexInt   `json:"next_page"`
	LastPage *flexInt   `json:"last_page"`
}

// decodeCursor picks the continuation signal for the page fetched as
// currentPage. Preference order: cursor token, then a strictly increasing
// next_page (guarding against a non-advancing API), then a last_page count.
// No usable signal means the scan is exhausted.
func decodeCursor(sig pageSignals, currentPage int) pageCursor {
	if sig.Cursor != "" {
		return pageCursor{kind: cursorToken, token: string(sig.Cursor)}
	}
	if sig.NextPage != nil && sig.NextPage.OK {
		next := int(sig.NextPage.Val)
		if next > currentPage {
			return pageCursor{kind: cursorPageNumber, nextPage: next}
		}
		return pageCursor{kind: cursorExhausted}
	}
	if sig.LastPage != nil && sig.LastPage.OK && currentPage < int(sig.LastPage.Val) {
		return pageCursor{kind: cursorLastPageCount, nextPage: currentPage + 1}
	}
	return pageCursor{kind: cursorExhausted}
}
