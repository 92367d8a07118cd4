package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"bitbucket.org/mmdatafocus/bridal_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func CreateSaleOrderHandler(c *gin.Context) {
	var input models.NewSaleOrder
	if !bindJSON(c, &input) {
		return
	}
	sale, err := models.CreateSaleOrder(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func UpdateSaleOrderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewSaleOrder
	if !bindJSON(c, &input) {
		return
	}
	sale, err := models.UpdateSaleOrder(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

type saleStatusInput struct {
	Status models.SaleStatus `json:"status" binding:"required"`
}

func SetSaleStatusHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input saleStatusInput
	if !bindJSON(c, &input) {
		return
	}
	sale, err := models.SetSaleStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

type payFactoryInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func PayFactoryHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input payFactoryInput
	if !bindJSON(c, &input) {
		return
	}
	sale, err := models.PayFactory(c.Request.Context(), id, input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

type payFactoryBulkInput struct {
	SaleIds []int `json:"sale_ids" binding:"required"`
}

func PayFactoryBulkHandler(c *gin.Context) {
	var input payFactoryBulkInput
	if !bindJSON(c, &input) {
		return
	}
	report, err := workflow.PayFactoryBalances(c.Request.Context(), input.SaleIds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func DeleteSaleOrderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := models.DeleteWithCascade(c.Request.Context(), models.CascadeKindSale, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func GetSaleOrderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sale, err := models.GetSaleOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func ListSaleOrdersHandler(c *gin.Context) {
	var status *models.SaleStatus
	if s := c.Query("status"); s != "" {
		v := models.SaleStatus(s)
		status = &v
	}
	var factoryStatus *models.FactoryStatus
	if s := c.Query("factory_status"); s != "" {
		v := models.FactoryStatus(s)
		factoryStatus = &v
	}
	var brideName *string
	if s := c.Query("bride_name"); s != "" {
		brideName = &s
	}
	sales, err := models.ListSaleOrders(c.Request.Context(), status, factoryStatus, brideName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}
