package listing

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
)

type State string

const (
	StateDraft     State = "draft"
	StatePublished State = "published"
)

func (s State) Valid() bool {
	return s == StateDraft || s == StatePublished
}

// Listing is a property offer, the catalog's primary aggregate. Photos hang
// off it in a separate entity; deleting a listing cascades to them.
type Listing struct {
	id          int64
	title       string
	description string
	category    string
	condition   string
	price       *money.Money
	regionID    *int64
	area        float64
	rooms       int
	bathrooms   int
	state       State
	visible     bool
	featured    bool
	operatorID  *int64
	createdAt   time.Time
}

func New(title string, price *money.Money) Listing {
	return Listing{
		title:   strings.TrimSpace(title),
		price:   price,
		state:   StateDraft,
		visible: true,
	}
}

func Hydrate(
	id int64,
	title string,
	description string,
	category string,
	condition string,
	price *money.Money,
	regionID *int64,
	area float64,
	rooms int,
	bathrooms int,
	state State,
	visible bool,
	featured bool,
	operatorID *int64,
	createdAt time.Time,
) Listing {
	return Listing{
		id:          id,
		title:       title,
		description: description,
		category:    category,
		condition:   condition,
		price:       price,
		regionID:    regionID,
		area:        area,
		rooms:       rooms,
		bathrooms:   bathrooms,
		state:       state,
		visible:     visible,
		featured:    featured,
		operatorID:  operatorID,
		createdAt:   createdAt,
	}
}

func (l Listing) ID() int64            { return l.id }
func (l Listing) Title() string        { return l.title }
func (l Listing) Description() string  { return l.description }
func (l Listing) Category() string     { return l.category }
func (l Listing) Condition() string    { return l.condition }
func (l Listing) Price() *money.Money  { return l.price }
func (l Listing) RegionID() *int64     { return l.regionID }
func (l Listing) Area() float64        { return l.area }
func (l Listing) Rooms() int           { return l.rooms }
func (l Listing) Bathrooms() int       { return l.bathrooms }
func (l Listing) State() State         { return l.state }
func (l Listing) Visible() bool        { return l.visible }
func (l Listing) Featured() bool       { return l.featured }
func (l Listing) OperatorID() *int64   { return l.operatorID }
func (l Listing) CreatedAt() time.Time { return l.createdAt }

// Public reports whether the listing is reachable through the public catalog.
func (l Listing) Public() bool {
	return l.visible && l.state == StatePublished
}

func (l Listing) WithTitle(title string) Listing {
	l.title = strings.TrimSpace(title)
	return l
}

func (l Listing) WithDescription(description string) Listing {
	l.description = strings.TrimSpace(description)
	return l
}

func (l Listing) WithTags(category, condition string) Listing {
	l.category = strings.TrimSpace(category)
	l.condition = strings.TrimSpace(condition)
	return l
}

func (l Listing) WithPrice(price *money.Money) Listing {
	l.price = price
	return l
}

func (l Listing) WithRegionID(regionID *int64) Listing {
	l.regionID = regionID
	return l
}

func (l Listing) WithAttributes(area float64, rooms, bathrooms int) Listing {
	l.area = area
	l.rooms = rooms
	l.bathrooms = bathrooms
	return l
}

func (l Listing) WithState(state State) Listing {
	l.state = state
	return l
}

func (l Listing) WithVisible(visible bool) Listing {
	l.visible = visible
	return l
}

func (l Listing) WithFeatured(featured bool) Listing {
	l.featured = featured
	return l
}

func (l Listing) WithOperatorID(operatorID *int64) Listing {
	l.operatorID = operatorID
	return l
}
