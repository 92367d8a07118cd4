package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Dress struct {
	ID           int             `gorm:"primary_key" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name" binding:"required"`
	Style        string          `gorm:"size:255" json:"style"`
	Kind         DressKind       `gorm:"size:10;not null;default:'RENT'" json:"kind"`
	Status       DressStatus     `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`
	FactoryPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"factory_price"`
	RentalPrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rental_price"`
	RentalCount  int             `gorm:"not null;default:0" json:"rental_count"`
	Condition    string          `gorm:"size:255" json:"condition"`
	Notes        string          `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDress struct {
	Name         string          `json:"name" binding:"required"`
	Style        string          `json:"style"`
	Kind         DressKind       `json:"kind"`
	FactoryPrice decimal.Decimal `json:"factory_price"`
	RentalPrice  decimal.Decimal `json:"rental_price"`
	Condition    string          `json:"condition"`
	Notes        string          `json:"notes"`
}

func CreateDress(ctx context.Context, input *NewDress) (*Dress, error) {
	kind := input.Kind
	if kind == "" {
		kind = DressKindRent
	}
	if input.FactoryPrice.IsNegative() || input.RentalPrice.IsNegative() {
		return nil, errors.New("price must not be negative")
	}

	dress := Dress{
		Name:         input.Name,
		Style:        input.Style,
		Kind:         kind,
		Status:       DressStatusAvailable,
		FactoryPrice: input.FactoryPrice,
		RentalPrice:  input.RentalPrice,
		Condition:    input.Condition,
		Notes:        input.Notes,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&dress).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createAuditLog(ctx, tx, "create", dress.ID, "Dress", "dress "+dress.Name+" created"); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &dress, nil
}

func UpdateDress(ctx context.Context, id int, input *NewDress) (*Dress, error) {
	dress, err := utils.FetchSingleModel[Dress](ctx, id)
	if err != nil {
		return nil, err
	}
	if input.FactoryPrice.IsNegative() || input.RentalPrice.IsNegative() {
		return nil, errors.New("price must not be negative")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(dress).Updates(map[string]interface{}{
		"Name":         input.Name,
		"Style":        input.Style,
		"FactoryPrice": input.FactoryPrice,
		"RentalPrice":  input.RentalPrice,
		"Condition":    input.Condition,
		"Notes":        input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	return dress, nil
}

// hasOpenBookings reports whether any non-terminal booking still references
// the dress. Such a dress must not be archived or sold.
func hasOpenBookings(ctx context.Context, db *gorm.DB, dressId int) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&Booking{}).
		Where("dress_id = ? AND status IN ?", dressId,
			[]BookingStatus{BookingStatusPending, BookingStatusActive}).
		Count(&count).Error
	return count > 0, err
}

func SetDressStatus(ctx context.Context, id int, status DressStatus) (*Dress, error) {
	dress, err := utils.FetchSingleModel[Dress](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if status == DressStatusArchived || status == DressStatusSold {
		open, err := hasOpenBookings(ctx, db, id)
		if err != nil {
			return nil, err
		}
		if open {
			return nil, errors.New("dress has open bookings and cannot be archived or sold")
		}
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(dress).Update("Status", status).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createAuditLog(ctx, tx, "status", dress.ID, "Dress", "dress status set to "+string(status)); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	dress.Status = status
	return dress, nil
}

func GetDress(ctx context.Context, id int) (*Dress, error) {
	return utils.FetchSingleModel[Dress](ctx, id)
}

func ListDresses(ctx context.Context, status *DressStatus, kind *DressKind, name *string) ([]Dress, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil && *status != "" {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if kind != nil && *kind != "" {
		dbCtx = dbCtx.Where("kind = ?", *kind)
	}
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	var dresses []Dress
	if err := dbCtx.Order("created_at DESC").Find(&dresses).Error; err != nil {
		return nil, err
	}
	return dresses, nil
}
