package types

import "time"

// Crate is one package record as returned by the registry search endpoint.
// Values are treated as immutable once decoded.
type Crate struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Downloads       uint64    `json:"downloads"`
	RecentDownloads uint64    `json:"recent_downloads,omitempty"`
	MaxVersion      string    `json:"max_version"`
	MaxStable       string    `json:"max_stable_version,omitempty"`
	Repository      string    `json:"repository,omitempty"`
	Homepage        string    `json:"homepage,omitempty"`
	Documentation   string    `json:"documentation,omitempty"`
	ExactMatch      bool      `json:"exact_match,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Version is a single published version of a crate
type Version struct {
	Num       string    `json:"num"`
	Downloads uint64    `json:"downloads"`
	Yanked    bool      `json:"yanked"`
	License   string    `json:"license,omitempty"`
	CrateSize uint64    `json:"crate_size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Keyword is a crate keyword with its usage count
type Keyword struct {
	ID        string `json:"id"`
	Keyword   string `json:"keyword"`
	CratesCnt uint64 `json:"crates_cnt"`
}

// Category is a registry category with its usage count
type Category struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	CratesCnt   uint64 `json:"crates_cnt"`
}

// CrateDetail is the full record shown in the info pane
type CrateDetail struct {
	Crate      Crate      `json:"crate"`
	Versions   []Version  `json:"versions"`
	Keywords   []Keyword  `json:"keywords"`
	Categories []Category `json:"categories"`
}

// Page is one page of search results.
// Total is the registry-wide match count, not len(Crates).
type Page struct {
	Crates []Crate
	Total  int
}

// SearchParams identifies a single page request
type SearchParams struct {
	Query    string
	Sort     SortKey
	Page     int
	PageSize int
}

// Summary is the registry front page
type Summary struct {
	NumCrates              uint64     `json:"num_crates"`
	NumDownloads           uint64     `json:"num_downloads"`
	NewCrates              []Crate    `json:"new_crates"`
	MostDownloaded         []Crate    `json:"most_downloaded"`
	MostRecentlyDownloaded []Crate    `json:"most_recently_downloaded"`
	JustUpdated            []Crate    `json:"just_updated"`
	PopularKeywords        []Keyword  `json:"popular_keywords"`
	PopularCategories      []Category `json:"popular_categories"`
}
