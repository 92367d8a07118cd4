package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateDressHandler(c *gin.Context) {
	var input models.NewDress
	if !bindJSON(c, &input) {
		return
	}
	dress, err := models.CreateDress(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dress)
}

func UpdateDressHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewDress
	if !bindJSON(c, &input) {
		return
	}
	dress, err := models.UpdateDress(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dress)
}

type dressStatusInput struct {
	Status models.DressStatus `json:"status" binding:"required"`
}

func SetDressStatusHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input dressStatusInput
	if !bindJSON(c, &input) {
		return
	}
	dress, err := models.SetDressStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dress)
}

func GetDressHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dress, err := models.GetDress(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dress)
}

func ListDressesHandler(c *gin.Context) {
	var status *models.DressStatus
	if s := c.Query("status"); s != "" {
		v := models.DressStatus(s)
		status = &v
	}
	var kind *models.DressKind
	if s := c.Query("kind"); s != "" {
		v := models.DressKind(s)
		kind = &v
	}
	var name *string
	if s := c.Query("name"); s != "" {
		name = &s
	}
	dresses, err := models.ListDresses(c.Request.Context(), status, kind, name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dresses)
}
