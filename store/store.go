package store

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/refill-spot/site/db"
	"github.com/refill-spot/site/geo"
)

// Store is a refill (all-you-can-eat) restaurant.
type Store struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Description string     `json:"description"`
	Phone       string     `json:"phone"`
	OpenHours   string     `json:"open_hours"`
	Price       int        `json:"price"` // per-person price in KRW
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	Rating      float64    `json:"rating"` // rolled up from approved reviews
	ReviewCount int        `json:"review_count"`
	Thumbnail   string     `json:"thumbnail"`
	Categories  []string   `json:"categories"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`

	// Per-user computed field, set by callers that know the viewer
	Favorited bool `json:"favorited"`
}

// Summary is one row of search results. DistanceKm is present only when an
// anchor coordinate was used for the search.
type Summary struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Price       int      `json:"price"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Thumbnail   string   `json:"thumbnail"`
	Categories  []string `json:"categories"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
}

// SearchParams are the server-side filters for SearchStores. The zero value
// of each field means "no restriction".
type SearchParams struct {
	Anchor     *geo.Coord
	RadiusKm   float64
	Categories []string
	MinRating  float64
	Query      string
	Page       int // 1-based
	Limit      int
}

// Result is one page of stores plus the pagination metadata callers need to
// decide whether more pages exist.
type Result struct {
	Stores  []Summary
	Page    int
	Total   int
	HasMore bool
}

// IsArchived returns true if the store has been removed from listings
func (s Store) IsArchived() bool {
	return s.DeletedAt != nil
}

const storeColumns = `s.id, s.name, s.address, s.description, s.phone, s.open_hours,
	s.price, s.lat, s.lng, s.rating, s.review_count, s.thumbnail, s.created_at, s.deleted_at,
	IFNULL(GROUP_CONCAT(c.name), '')`

const storeJoin = `FROM Store s
	LEFT JOIN StoreCategory sc ON sc.store_id = s.id
	LEFT JOIN Category c ON c.id = sc.category_id`

func scanStores(rows *sql.Rows) ([]Store, error) {
	var stores []Store
	for rows.Next() {
		var s Store
		var deletedAt sql.NullTime
		var cats string
		err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Description, &s.Phone, &s.OpenHours,
			&s.Price, &s.Lat, &s.Lng, &s.Rating, &s.ReviewCount, &s.Thumbnail,
			&s.CreatedAt, &deletedAt, &cats)
		if err != nil {
			return nil, err
		}
		if deletedAt.Valid {
			s.DeletedAt = &deletedAt.Time
		}
		if cats != "" {
			s.Categories = strings.Split(cats, ",")
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// GetStore fetches one store by ID
func GetStore(id int) (Store, error) {
	rows, err := db.Query(`SELECT `+storeColumns+` `+storeJoin+`
		WHERE s.id = ? GROUP BY s.id`, id)
	if err != nil {
		return Store{}, err
	}
	defer rows.Close()

	stores, err := scanStores(rows)
	if err != nil {
		return Store{}, err
	}
	if len(stores) == 0 {
		return Store{}, sql.ErrNoRows
	}
	return stores[0], nil
}

// GetStores returns one page of all active stores, newest first, with the
// total count for pagination metadata.
func GetStores(page, limit int) (Result, error) {
	if page < 1 {
		page = 1
	}
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM Store WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return Result{}, err
	}

	rows, err := db.Query(`SELECT `+storeColumns+` `+storeJoin+`
		WHERE s.deleted_at IS NULL
		GROUP BY s.id
		ORDER BY s.created_at DESC
		LIMIT ? OFFSET ?`, limit, (page-1)*limit)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	stores, err := scanStores(rows)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Stores:  toSummaries(stores, nil),
		Page:    page,
		Total:   total,
		HasMore: page*limit < total,
	}, nil
}

// SearchStores returns one page of stores matching the given filters.
//
// SQLite narrows by bounding box, rating floor and free-text match; the exact
// haversine distance cut, category intersection, distance ordering and
// pagination happen here. Distance order only applies when an anchor is
// present; otherwise rows keep their newest-first order.
func SearchStores(p SearchParams) (Result, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}

	where := []string{"s.deleted_at IS NULL"}
	var args []interface{}

	if p.Anchor != nil && p.RadiusKm > 0 {
		// ~111km per degree latitude; longitude span widens at the anchor's
		// latitude. The box over-selects, the haversine pass below trims.
		latDeg := p.RadiusKm / 111.0
		lngDeg := p.RadiusKm / 85.0
		where = append(where, "s.lat BETWEEN ? AND ?", "s.lng BETWEEN ? AND ?")
		args = append(args, p.Anchor.Lat-latDeg, p.Anchor.Lat+latDeg,
			p.Anchor.Lng-lngDeg, p.Anchor.Lng+lngDeg)
	}
	if p.MinRating > 0 {
		where = append(where, "s.rating >= ?")
		args = append(args, p.MinRating)
	}
	if p.Query != "" {
		where = append(where, "(s.name LIKE ? OR s.address LIKE ?)")
		like := "%" + p.Query + "%"
		args = append(args, like, like)
	}

	rows, err := db.Query(`SELECT `+storeColumns+` `+storeJoin+`
		WHERE `+strings.Join(where, " AND ")+`
		GROUP BY s.id
		ORDER BY s.created_at DESC`, args...)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	stores, err := scanStores(rows)
	if err != nil {
		return Result{}, err
	}

	if len(p.Categories) > 0 {
		stores = filterByCategories(stores, p.Categories)
	}

	summaries := toSummaries(stores, p.Anchor)
	if p.Anchor != nil && p.RadiusKm > 0 {
		summaries = trimByDistance(summaries, p.RadiusKm)
		sort.SliceStable(summaries, func(i, j int) bool {
			return *summaries[i].DistanceKm < *summaries[j].DistanceKm
		})
	}

	total := len(summaries)
	start := (p.Page - 1) * p.Limit
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	return Result{
		Stores:  summaries[start:end],
		Page:    p.Page,
		Total:   total,
		HasMore: end < total,
	}, nil
}

func filterByCategories(stores []Store, wanted []string) []Store {
	var matched []Store
	for _, s := range stores {
		if anyStringInSlice(s.Categories, wanted) {
			matched = append(matched, s)
		}
	}
	return matched
}

func anyStringInSlice(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func toSummaries(stores []Store, anchor *geo.Coord) []Summary {
	summaries := make([]Summary, 0, len(stores))
	for _, s := range stores {
		sum := Summary{
			ID:          s.ID,
			Name:        s.Name,
			Address:     s.Address,
			Lat:         s.Lat,
			Lng:         s.Lng,
			Price:       s.Price,
			Rating:      s.Rating,
			ReviewCount: s.ReviewCount,
			Thumbnail:   s.Thumbnail,
			Categories:  s.Categories,
		}
		if anchor != nil {
			d := geo.DistanceKm(*anchor, geo.Coord{Lat: s.Lat, Lng: s.Lng})
			sum.DistanceKm = &d
		}
		summaries = append(summaries, sum)
	}
	return summaries
}

func trimByDistance(summaries []Summary, radiusKm float64) []Summary {
	var within []Summary
	for _, s := range summaries {
		if s.DistanceKm != nil && *s.DistanceKm <= radiusKm {
			within = append(within, s)
		}
	}
	return within
}

// CreateStore inserts a new store with its category labels
func CreateStore(s Store) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO Store (name, address, description, phone, open_hours, price, lat, lng, thumbnail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.Address, s.Description, s.Phone, s.OpenHours, s.Price, s.Lat, s.Lng, s.Thumbnail)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()

	for _, cat := range s.Categories {
		if _, err := tx.Exec(`INSERT INTO StoreCategory (store_id, category_id)
			SELECT ?, id FROM Category WHERE name = ?`, id, cat); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(id), nil
}

// UpdateStore updates a store's editable fields and replaces its categories
func UpdateStore(s Store) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE Store SET name = ?, address = ?, description = ?, phone = ?,
		open_hours = ?, price = ?, lat = ?, lng = ?, thumbnail = ? WHERE id = ?`,
		s.Name, s.Address, s.Description, s.Phone, s.OpenHours, s.Price, s.Lat, s.Lng, s.Thumbnail, s.ID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM StoreCategory WHERE store_id = ?`, s.ID); err != nil {
		return err
	}
	for _, cat := range s.Categories {
		if _, err := tx.Exec(`INSERT INTO StoreCategory (store_id, category_id)
			SELECT ?, id FROM Category WHERE name = ?`, s.ID, cat); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ArchiveStore removes a store from listings without deleting its rows
func ArchiveStore(id int) error {
	_, err := db.Exec(`UPDATE Store SET deleted_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

// SetAggregateRating writes the rolled-up review average and count onto the
// store row. Called by the review package after moderation changes.
func SetAggregateRating(storeID int, rating float64, count int) error {
	_, err := db.Exec(`UPDATE Store SET rating = ?, review_count = ? WHERE id = ?`,
		rating, count, storeID)
	return err
}
