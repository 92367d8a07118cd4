package controllers

import (
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"bitbucket.org/mmdatafocus/bridal_backend/workflow"
	"github.com/gin-gonic/gin"
)

func RunReconciliationHandler(c *gin.Context) {
	report, err := workflow.RunReconciliation(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func ListAuditLogsHandler(c *gin.Context) {
	var referenceType *string
	if s := c.Query("reference_type"); s != "" {
		referenceType = &s
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := models.ListAuditLogs(c.Request.Context(), referenceType, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
