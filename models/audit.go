package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is append-only. The core only ever writes it; reading is an
// admin screen concern.
type AuditLog struct {
	ID            int       `gorm:"primary_key" json:"id"`
	Action        string    `gorm:"size:50;not null" json:"action"`
	UserName      string    `gorm:"size:100" json:"user_name"`
	Details       string    `gorm:"type:text" json:"details"`
	ReferenceID   int       `gorm:"index" json:"reference_id"`
	ReferenceType string    `gorm:"size:50" json:"reference_type"`
	CorrelationID string    `gorm:"size:36" json:"correlation_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func createAuditLog(ctx context.Context, tx *gorm.DB, action string, referenceId int, referenceType string, details string) error {
	userName, ok := utils.GetUserNameFromContext(ctx)
	if !ok || userName == "" {
		// cmd tools and the reconcile sweep run outside a request
		userName = "system"
	}
	correlationId, ok := utils.GetCorrelationIdFromContext(ctx)
	if !ok || correlationId == "" {
		correlationId = uuid.NewString()
	}

	entry := AuditLog{
		Action:        action,
		UserName:      userName,
		Details:       details,
		ReferenceID:   referenceId,
		ReferenceType: referenceType,
		CorrelationID: correlationId,
	}
	return tx.Create(&entry).Error
}

// WriteAudit records an action outside a surrounding transaction.
func WriteAudit(ctx context.Context, action string, referenceId int, referenceType string, details string) error {
	db := config.GetDB()
	return createAuditLog(ctx, db.WithContext(ctx), action, referenceId, referenceType, details)
}

func ListAuditLogs(ctx context.Context, referenceType *string, limit int) ([]AuditLog, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if referenceType != nil && *referenceType != "" {
		dbCtx = dbCtx.Where("reference_type = ?", *referenceType)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []AuditLog
	if err := dbCtx.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
