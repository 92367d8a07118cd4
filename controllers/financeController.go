package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"bitbucket.org/mmdatafocus/bridal_backend/models/reports"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
	"github.com/gin-gonic/gin"
)

func CreateFinanceRecordHandler(c *gin.Context) {
	var input models.NewFinanceRecord
	if !bindJSON(c, &input) {
		return
	}
	record, err := models.CreateFinanceRecord(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func DeleteFinanceRecordHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := models.DeleteFinanceRecord(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func dateRangeQuery(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := utils.ParseBusinessDate(s)
		if err != nil {
			return nil, nil, fmt.Errorf("from must be YYYY-MM-DD")
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := utils.ParseBusinessDate(s)
		if err != nil {
			return nil, nil, fmt.Errorf("to must be YYYY-MM-DD")
		}
		// inclusive end of day
		t = t.Add(24*time.Hour - time.Second)
		to = &t
	}
	return from, to, nil
}

func ListFinanceRecordsHandler(c *gin.Context) {
	from, to, err := dateRangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var financeType *models.FinanceType
	if s := c.Query("type"); s != "" {
		v := models.FinanceType(s)
		financeType = &v
	}
	var category *models.FinanceCategory
	if s := c.Query("category"); s != "" {
		v := models.ParseFinanceCategory(s)
		category = &v
	}
	records, err := models.ListFinanceRecords(c.Request.Context(), from, to, financeType, category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func CashSummaryHandler(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
		return
	}
	summary, err := models.MonthlyCashSummary(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func ExportLedgerHandler(c *gin.Context) {
	from, to, err := dateRangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if from == nil || to == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	f, err := reports.BuildLedgerWorkbook(c.Request.Context(), *from, *to)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("ledger_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}
