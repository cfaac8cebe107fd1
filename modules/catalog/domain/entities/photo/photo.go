package photo

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxAltTextLen is the longest accepted alt text after trimming.
const MaxAltTextLen = 160

// Photo belongs to exactly one listing. Two invariants hold after every
// successful write: at most one photo per listing is principal (exactly one
// when the listing has any photos), and sort orders form a contiguous
// ascending run starting at 1.
type Photo struct {
	id        int64
	listingID int64
	url       string
	principal bool
	sortOrder int
	altText   string
	createdAt time.Time
}

func New(listingID int64, url string, principal bool, sortOrder int) Photo {
	return Photo{
		listingID: listingID,
		url:       url,
		principal: principal,
		sortOrder: sortOrder,
	}
}

func Hydrate(
	id int64,
	listingID int64,
	url string,
	principal bool,
	sortOrder int,
	altText string,
	createdAt time.Time,
) Photo {
	return Photo{
		id:        id,
		listingID: listingID,
		url:       url,
		principal: principal,
		sortOrder: sortOrder,
		altText:   altText,
		createdAt: createdAt,
	}
}

func (p Photo) ID() int64            { return p.id }
func (p Photo) ListingID() int64     { return p.listingID }
func (p Photo) URL() string          { return p.url }
func (p Photo) Principal() bool      { return p.principal }
func (p Photo) SortOrder() int       { return p.sortOrder }
func (p Photo) AltText() string      { return p.altText }
func (p Photo) CreatedAt() time.Time { return p.createdAt }

// NormalizeAltText trims the input; ok is false when the result is too long.
// The empty string stands for "no alt text".
func NormalizeAltText(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) > MaxAltTextLen {
		return "", false
	}
	return trimmed, true
}
