package persistence

import "time"

// AuctionLotModel is the GORM model for auction lots.
type AuctionLotModel struct {
	RowID              string     `gorm:"column:row_id;primaryKey"`
	TenantID           string     `gorm:"column:tenant_id;index;not null"`
	AuctionID          string     `gorm:"column:auction_id;index"`
	ArtistID           *string    `gorm:"column:artist_id;index"`
	ConsignorID        *string    `gorm:"column:consignor_id"`
	CurrencyID         *string    `gorm:"column:currency_id"`
	AuctionLotGroupID  *string    `gorm:"column:auction_lot_group_id"`
	WinningBidID       *string    `gorm:"column:winning_bid_id"`
	LotNumber          int        `gorm:"column:lot_number"`
	LotNumberExtension string     `gorm:"column:lot_number_extension"`
	Title              string     `gorm:"column:title"`
	TitleSecondary     *string    `gorm:"column:title_secondary"`
	TitleTertiary      *string    `gorm:"column:title_tertiary"`
	Artist             string     `gorm:"column:artist"`
	Description        string     `gorm:"column:description"`
	Editorial          string     `gorm:"column:editorial"`
	HighlightHeader    string     `gorm:"column:highlight_header"`
	Provenance         string     `gorm:"column:provenance"`
	Condition          string     `gorm:"column:condition"`
	Dimensions         string     `gorm:"column:dimensions"`
	Medium             string     `gorm:"column:medium"`
	Status             string     `gorm:"column:status;index"`
	Visibility         *string    `gorm:"column:visibility"`
	EstimateLow        *float64   `gorm:"column:estimate_low"`
	EstimateHigh       *float64   `gorm:"column:estimate_high"`
	StartingBid        *float64   `gorm:"column:starting_bid"`
	ReservePrice       *float64   `gorm:"column:reserve_price"`
	SoldPrice          *float64   `gorm:"column:sold_price"`
	BuyersPremiumRate  *float64   `gorm:"column:buyers_premium_rate"`
	ExtendedEndTime    *time.Time `gorm:"column:extended_end_time"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name for auction lots.
func (AuctionLotModel) TableName() string { return "auction_lot" }

// AuctionModel is the GORM model for auctions.
type AuctionModel struct {
	RowID      string         `gorm:"column:row_id;primaryKey"`
	TenantID   string         `gorm:"column:tenant_id;index;not null"`
	CurrencyID *string        `gorm:"column:currency_id"`
	Title      string         `gorm:"column:title"`
	Status     string         `gorm:"column:status"`
	Type       string         `gorm:"column:type"`
	TimeStart  *time.Time     `gorm:"column:time_start"`
	Duration   *int64         `gorm:"column:duration"`
	Xattrs     *string        `gorm:"column:xattrs"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

// TableName returns the table name for auctions.
func (AuctionModel) TableName() string { return "auction" }

// ArtistModel is the GORM model for artists.
type ArtistModel struct {
	RowID       string  `gorm:"column:row_id;primaryKey"`
	TenantID    string  `gorm:"column:tenant_id;index;not null"`
	Name        string  `gorm:"column:name"`
	BirthYear   *int    `gorm:"column:birth_year"`
	DeathYear   *int    `gorm:"column:death_year"`
	Nationality *string `gorm:"column:nationality"`
}

// TableName returns the table name for artists.
func (ArtistModel) TableName() string { return "artist" }

// ConsignorModel is the GORM model for consignors.
type ConsignorModel struct {
	RowID    string `gorm:"column:row_id;primaryKey"`
	TenantID string `gorm:"column:tenant_id;index;not null"`
	Name     string `gorm:"column:name"`
	Email    string `gorm:"column:email"`
}

// TableName returns the table name for consignors.
func (ConsignorModel) TableName() string { return "consignor" }

// CurrencyModel is the GORM model for currencies.
type CurrencyModel struct {
	RowID        string `gorm:"column:row_id;primaryKey"`
	CurrencyCode string `gorm:"column:currency_code"`
}

// TableName returns the table name for currencies.
func (CurrencyModel) TableName() string { return "currency" }

// AuctionLotGroupModel is the GORM model for lot groups.
type AuctionLotGroupModel struct {
	RowID      string `gorm:"column:row_id;primaryKey"`
	TenantID   string `gorm:"column:tenant_id;index;not null"`
	Name       string `gorm:"column:name"`
	GroupIndex int    `gorm:"column:group_index"`
}

// TableName returns the table name for lot groups.
func (AuctionLotGroupModel) TableName() string { return "auction_lot_group" }

// LiveBidModel is the GORM model for live bids.
type LiveBidModel struct {
	RowID          string    `gorm:"column:row_id;primaryKey"`
	TenantID       string    `gorm:"column:tenant_id;index;not null"`
	AuctionLotID   string    `gorm:"column:auction_lot_id;index"`
	RegistrationID string    `gorm:"column:registration_id;index"`
	Amount         float64   `gorm:"column:amount"`
	Type           string    `gorm:"column:type;index"`
	Cancelled      bool      `gorm:"column:cancelled"`
	Rejected       bool      `gorm:"column:rejected"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name for live bids.
func (LiveBidModel) TableName() string { return "live_bid" }

// AuctionRegistrationModel is the GORM model for auction registrations.
type AuctionRegistrationModel struct {
	RowID        string `gorm:"column:row_id;primaryKey"`
	TenantID     string `gorm:"column:tenant_id;index;not null"`
	AuctionID    string `gorm:"column:auction_id;index"`
	CustomerID   string `gorm:"column:customer_id;index"`
	PaddleNumber string `gorm:"column:paddle_number"`
}

// TableName returns the table name for auction registrations.
func (AuctionRegistrationModel) TableName() string { return "auction_registration" }

// CustomerModel is the GORM model for customers.
type CustomerModel struct {
	RowID      string `gorm:"column:row_id;primaryKey"`
	TenantID   string `gorm:"column:tenant_id;index;not null"`
	GivenName  string `gorm:"column:given_name"`
	FamilyName string `gorm:"column:family_name"`
	Email      string `gorm:"column:email"`
}

// TableName returns the table name for customers.
func (CustomerModel) TableName() string { return "customer" }

// AbsenteeBidModel is the GORM model for absentee bids.
type AbsenteeBidModel struct {
	RowID          string    `gorm:"column:row_id;primaryKey"`
	TenantID       string    `gorm:"column:tenant_id;index;not null"`
	AuctionLotID   string    `gorm:"column:auction_lot_id;index"`
	RegistrationID string    `gorm:"column:registration_id;index"`
	MaxBid         float64   `gorm:"column:max_bid"`
	Type           string    `gorm:"column:type"`
	Confirmed      bool      `gorm:"column:confirmed"`
	Cancelled      bool      `gorm:"column:cancelled"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

// TableName returns the table name for absentee bids.
func (AbsenteeBidModel) TableName() string { return "absentee_bid" }

// WatchedArtistModel is the GORM model for watched artists.
type WatchedArtistModel struct {
	RowID      string `gorm:"column:row_id;primaryKey"`
	TenantID   string `gorm:"column:tenant_id;index;not null"`
	CustomerID string `gorm:"column:customer_id;index"`
	ArtistID   string `gorm:"column:artist_id;index"`
}

// TableName returns the table name for watched artists.
func (WatchedArtistModel) TableName() string { return "watched_artist" }

// WatchedLotModel is the GORM model for watched lots.
type WatchedLotModel struct {
	RowID        string `gorm:"column:row_id;primaryKey"`
	TenantID     string `gorm:"column:tenant_id;index;not null"`
	CustomerID   string `gorm:"column:customer_id;index"`
	AuctionLotID string `gorm:"column:auction_lot_id;index"`
}

// TableName returns the table name for watched lots.
func (WatchedLotModel) TableName() string { return "watched_lot" }

// AuctionLotImageModel is the GORM model for lot images.
type AuctionLotImageModel struct {
	RowID        string `gorm:"column:row_id;primaryKey"`
	TenantID     string `gorm:"column:tenant_id;index;not null"`
	AuctionLotID string `gorm:"column:auction_lot_id;index"`
	Caption      string `gorm:"column:caption"`
	ImageIndex   int    `gorm:"column:image_index"`
}

// TableName returns the table name for lot images.
func (AuctionLotImageModel) TableName() string { return "auction_lot_image" }

// CategoryModel is the GORM model for categories.
type CategoryModel struct {
	RowID    string `gorm:"column:row_id;primaryKey"`
	TenantID string `gorm:"column:tenant_id;index;not null"`
	Name     string `gorm:"column:name"`
}

// TableName returns the table name for categories.
func (CategoryModel) TableName() string { return "category" }

// AuctionLotCategoryModel is the GORM model for lot category assignments.
type AuctionLotCategoryModel struct {
	RowID        string `gorm:"column:row_id;primaryKey"`
	AuctionLotID string `gorm:"column:auction_lot_id;index"`
	CategoryID   string `gorm:"column:category_id;index"`
}

// TableName returns the table name for lot category assignments.
func (AuctionLotCategoryModel) TableName() string { return "auction_lot_category" }

// TenantConfigModel is the GORM model for tenant extended configuration.
type TenantConfigModel struct {
	TenantID        string         `gorm:"column:tenant_id;primaryKey"`
	Name            string         `gorm:"column:name"`
	DefaultCurrency string         `gorm:"column:default_currency"`
	ImageBaseURL    string         `gorm:"column:image_base_url"`
	Settings        string         `gorm:"column:settings"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
}

// TableName returns the table name for tenant configuration.
func (TenantConfigModel) TableName() string { return "tenant_extended_config" }
