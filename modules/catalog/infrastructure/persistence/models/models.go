package models

import (
	"database/sql"
	"time"
)

type Listing struct {
	ID            int64
	Title         string
	Description   sql.NullString
	Category      sql.NullString
	Condition     sql.NullString
	PriceAmount   int64
	PriceCurrency string
	RegionID      sql.NullInt64
	Area          float64
	Rooms         int
	Bathrooms     int
	State         string
	Visible       bool
	Featured      bool
	OperatorID    sql.NullInt64
	CreatedAt     time.Time
}

type Photo struct {
	ID        int64
	ListingID int64
	URL       string
	Principal bool
	SortOrder int
	AltText   sql.NullString
	CreatedAt time.Time
}

type Region struct {
	ID   int64
	Name string
}
