package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking reserves one dress for one customer and one event date. Event and
// delivery dates are local business dates kept as strings; old records may
// carry malformed values and the conflict detector tolerates them.
type Booking struct {
	ID                    int             `gorm:"primary_key" json:"id"`
	CustomerName          string          `gorm:"size:255;not null" json:"customer_name" binding:"required"`
	CustomerPhone         string          `gorm:"size:30" json:"customer_phone"`
	DressId               int             `gorm:"index;not null" json:"dress_id" binding:"required"`
	EventDate             string          `gorm:"size:10;not null" json:"event_date" binding:"required"`
	DeliveryDate          string          `gorm:"size:10" json:"delivery_date"`
	RentalPrice           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rental_price"`
	PaidDeposit           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"paid_deposit"`
	RemainingToPay        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"remaining_to_pay"`
	Status                BookingStatus   `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	SecurityDepositType   string          `gorm:"size:50" json:"security_deposit_type"`
	SecurityDepositDetail string          `gorm:"size:255" json:"security_deposit_detail"`
	SecurityDepositValue  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"security_deposit_value"`
	Extras                string          `gorm:"type:text" json:"extras"`
	DamageFee             decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"damage_fee"`
	Measurements          string          `gorm:"type:text" json:"measurements"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBooking struct {
	CustomerName          string          `json:"customer_name" binding:"required"`
	CustomerPhone         string          `json:"customer_phone"`
	DressId               int             `json:"dress_id" binding:"required"`
	EventDate             string          `json:"event_date" binding:"required"`
	DeliveryDate          string          `json:"delivery_date"`
	RentalPrice           decimal.Decimal `json:"rental_price"`
	PaidDeposit           decimal.Decimal `json:"paid_deposit"`
	SecurityDepositType   string          `json:"security_deposit_type"`
	SecurityDepositDetail string          `json:"security_deposit_detail"`
	SecurityDepositValue  decimal.Decimal `json:"security_deposit_value"`
	Extras                string          `json:"extras"`
	Measurements          string          `json:"measurements"`

	// Override persists the booking even when the conflict detector reports
	// other bookings inside the window. Requires an explicit operator choice.
	Override bool `json:"override"`
}

// RemainingToPay is derived, never authoritative on its own.
func (input *NewBooking) remainingToPay() decimal.Decimal {
	return input.RentalPrice.Sub(input.PaidDeposit)
}

// validate input for both create & update.
func (input *NewBooking) validate(ctx context.Context) error {
	dress, err := utils.FetchSingleModel[Dress](ctx, input.DressId)
	if err != nil {
		return errors.New("dress not found")
	}
	if dress.Status == DressStatusArchived || dress.Status == DressStatusSold {
		return errors.New("dress is no longer available for rental")
	}

	if _, err := utils.ParseBusinessDate(input.EventDate); err != nil {
		return errors.New("event date must be YYYY-MM-DD")
	}
	if input.DeliveryDate != "" {
		if _, err := utils.ParseBusinessDate(input.DeliveryDate); err != nil {
			return errors.New("delivery date must be YYYY-MM-DD")
		}
	}

	if input.RentalPrice.IsNegative() || input.PaidDeposit.IsNegative() {
		return errors.New("price and deposit must not be negative")
	}
	if input.PaidDeposit.GreaterThan(input.RentalPrice) {
		return errors.New("deposit must not exceed rental price")
	}

	if input.CustomerPhone != "" {
		if err := utils.ValidatePhoneNumber(input.CustomerPhone, utils.CountryCode); err != nil {
			return errors.New("customer phone is not valid")
		}
	}
	return nil
}

func depositIncomeRecord(kind string, id int, amount decimal.Decimal, category FinanceCategory, recordDate time.Time) *FinanceRecord {
	related := id
	return &FinanceRecord{
		RecordDate:  recordDate,
		Type:        FinanceTypeIncome,
		Category:    category,
		Amount:      amount,
		Notes:       fmt.Sprintf("deposit for %s #%d", kind, id),
		RelatedID:   &related,
		RelatedType: kind,
	}
}

// CreateBooking runs the conflict detector first. With conflicts and no
// override nothing is persisted and the conflicts go back to the operator.
// The deposit income row is written in the same transaction when possible;
// the reconciliation sweep backfills it if this ever half-commits.
func CreateBooking(ctx context.Context, input *NewBooking) (*Booking, []Conflict, error) {
	if err := input.validate(ctx); err != nil {
		return nil, nil, err
	}

	conflicts, err := CheckConflict(ctx, ConflictCandidate{DressId: input.DressId, EventDate: input.EventDate})
	if err != nil {
		return nil, nil, err
	}
	if len(conflicts) > 0 && !input.Override {
		return nil, conflicts, nil
	}

	booking := Booking{
		CustomerName:          input.CustomerName,
		CustomerPhone:         input.CustomerPhone,
		DressId:               input.DressId,
		EventDate:             input.EventDate,
		DeliveryDate:          input.DeliveryDate,
		RentalPrice:           input.RentalPrice,
		PaidDeposit:           input.PaidDeposit,
		RemainingToPay:        input.remainingToPay(),
		Status:                BookingStatusPending,
		SecurityDepositType:   input.SecurityDepositType,
		SecurityDepositDetail: input.SecurityDepositDetail,
		SecurityDepositValue:  input.SecurityDepositValue,
		Extras:                input.Extras,
		Measurements:          input.Measurements,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&booking).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if booking.PaidDeposit.IsPositive() {
		record := depositIncomeRecord("Booking", booking.ID, booking.PaidDeposit, FinanceCategoryRentalDeposit, time.Now())
		if err := tx.WithContext(ctx).Create(record).Error; err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	}
	if err := createAuditLog(ctx, tx, "create", booking.ID, "Booking",
		fmt.Sprintf("booking for %s on %s created", booking.CustomerName, booking.EventDate)); err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	return &booking, conflicts, nil
}

// UpdateBooking re-runs the conflict check excluding the booking itself and
// recomputes the remaining balance. Existing finance rows are left alone;
// ledger corrections are explicit ledger operations.
func UpdateBooking(ctx context.Context, id int, input *NewBooking) (*Booking, []Conflict, error) {
	booking, err := utils.FetchSingleModel[Booking](ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, nil, errors.New("completed or cancelled bookings cannot be edited")
	}
	if err := input.validate(ctx); err != nil {
		return nil, nil, err
	}

	conflicts, err := CheckConflict(ctx, ConflictCandidate{DressId: input.DressId, EventDate: input.EventDate, ExcludeBookingId: id})
	if err != nil {
		return nil, nil, err
	}
	if len(conflicts) > 0 && !input.Override {
		return nil, conflicts, nil
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(booking).Updates(map[string]interface{}{
		"CustomerName":          input.CustomerName,
		"CustomerPhone":         input.CustomerPhone,
		"DressId":               input.DressId,
		"EventDate":             input.EventDate,
		"DeliveryDate":          input.DeliveryDate,
		"RentalPrice":           input.RentalPrice,
		"PaidDeposit":           input.PaidDeposit,
		"RemainingToPay":        input.remainingToPay(),
		"SecurityDepositType":   input.SecurityDepositType,
		"SecurityDepositDetail": input.SecurityDepositDetail,
		"SecurityDepositValue":  input.SecurityDepositValue,
		"Extras":                input.Extras,
		"Measurements":          input.Measurements,
	}).Error
	if err != nil {
		return nil, nil, err
	}

	updated, err := utils.FetchSingleModel[Booking](ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, conflicts, nil
}

// DeliverBooking hands the dress to the customer: booking goes ACTIVE, the
// dress goes RENTED and its usage counter moves up.
func DeliverBooking(ctx context.Context, id int) (*Booking, error) {
	booking, err := utils.FetchSingleModel[Booking](ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != BookingStatusPending {
		return nil, errors.New("only pending bookings can be delivered")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(booking).Update("Status", BookingStatusActive).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.WithContext(ctx).Model(&Dress{ID: booking.DressId}).Updates(map[string]interface{}{
		"Status":      DressStatusRented,
		"RentalCount": gorm.Expr("rental_count + 1"),
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createAuditLog(ctx, tx, "deliver", booking.ID, "Booking",
		fmt.Sprintf("dress #%d delivered to %s", booking.DressId, booking.CustomerName)); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	booking.Status = BookingStatusActive
	return booking, nil
}

// ReturnBooking takes the dress back: booking COMPLETED, dress to CLEANING.
// A positive damage fee is recorded on the booking and as income in the
// ledger.
func ReturnBooking(ctx context.Context, id int, damageFee decimal.Decimal) (*Booking, error) {
	booking, err := utils.FetchSingleModel[Booking](ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != BookingStatusActive {
		return nil, errors.New("only active bookings can be returned")
	}
	if damageFee.IsNegative() {
		return nil, errors.New("damage fee must not be negative")
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(booking).Updates(map[string]interface{}{
		"Status":    BookingStatusCompleted,
		"DamageFee": damageFee,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Model(&Dress{ID: booking.DressId}).Update("Status", DressStatusCleaning).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if damageFee.IsPositive() {
		related := booking.ID
		record := FinanceRecord{
			RecordDate:  time.Now(),
			Type:        FinanceTypeIncome,
			Category:    FinanceCategoryDamageFee,
			Amount:      damageFee,
			Notes:       fmt.Sprintf("damage fee for Booking #%d", booking.ID),
			RelatedID:   &related,
			RelatedType: "Booking",
		}
		if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := createAuditLog(ctx, tx, "return", booking.ID, "Booking",
		fmt.Sprintf("dress #%d returned by %s", booking.DressId, booking.CustomerName)); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	booking.Status = BookingStatusCompleted
	booking.DamageFee = damageFee
	return booking, nil
}

// bookingStateWriter is the pair of writes a cancellation performs; tests
// swap in fakes.
type bookingStateWriter interface {
	setBookingStatus(ctx context.Context, bookingId int, status BookingStatus) error
	setDressState(ctx context.Context, dressId int, status DressStatus) error
}

type txStateWriter struct {
	tx *gorm.DB
}

func (w txStateWriter) setBookingStatus(ctx context.Context, bookingId int, status BookingStatus) error {
	return w.tx.WithContext(ctx).Model(&Booking{ID: bookingId}).Update("Status", status).Error
}

func (w txStateWriter) setDressState(ctx context.Context, dressId int, status DressStatus) error {
	return w.tx.WithContext(ctx).Model(&Dress{ID: dressId}).Update("Status", status).Error
}

// cancelBooking writes the cancellation. Whether the dress is released is
// decided on the snapshot taken before any write: an ACTIVE booking still
// holds the dress, so cancelling it sends the dress to cleaning.
func cancelBooking(ctx context.Context, writer bookingStateWriter, booking *Booking) error {
	wasActive := booking.Status == BookingStatusActive
	if err := writer.setBookingStatus(ctx, booking.ID, BookingStatusCancelled); err != nil {
		return err
	}
	if wasActive {
		if err := writer.setDressState(ctx, booking.DressId, DressStatusCleaning); err != nil {
			return err
		}
	}
	return nil
}

func CancelBooking(ctx context.Context, id int) (*Booking, error) {
	booking, err := utils.FetchSingleModel[Booking](ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, errors.New("booking is already completed or cancelled")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := cancelBooking(ctx, txStateWriter{tx: tx}, booking); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createAuditLog(ctx, tx, "cancel", booking.ID, "Booking",
		fmt.Sprintf("booking for %s on %s cancelled", booking.CustomerName, booking.EventDate)); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	booking.Status = BookingStatusCancelled
	return booking, nil
}

func GetBooking(ctx context.Context, id int) (*Booking, error) {
	return utils.FetchSingleModel[Booking](ctx, id)
}

func ListBookings(ctx context.Context, status *BookingStatus, dressId *int, customerName *string) ([]Booking, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil && *status != "" {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if dressId != nil && *dressId > 0 {
		dbCtx = dbCtx.Where("dress_id = ?", *dressId)
	}
	if customerName != nil && *customerName != "" {
		dbCtx = dbCtx.Where("customer_name LIKE ?", "%"+*customerName+"%")
	}
	var bookings []Booking
	if err := dbCtx.Order("event_date ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
