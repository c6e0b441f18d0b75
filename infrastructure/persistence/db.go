// Package persistence provides database storage implementations.
package persistence

import (
	"fmt"

	"github.com/loftylabs/marketplace/internal/database"
)

// AutoMigrate creates or updates the marketplace schema.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(
		&AuctionLotModel{},
		&AuctionModel{},
		&ArtistModel{},
		&ConsignorModel{},
		&CurrencyModel{},
		&AuctionLotGroupModel{},
		&LiveBidModel{},
		&AuctionRegistrationModel{},
		&CustomerModel{},
		&AbsenteeBidModel{},
		&WatchedArtistModel{},
		&WatchedLotModel{},
		&AuctionLotImageModel{},
		&CategoryModel{},
		&AuctionLotCategoryModel{},
		&TenantConfigModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
