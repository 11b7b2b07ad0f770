package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smpregistry/inspections_backend/config"
	"github.com/smpregistry/inspections_backend/models"
)

func (a *app) searchSmpHandler(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := a.smps.Search(c.Request.Context(), term, limit)
	if err != nil {
		config.LogError(config.GetLogger(), "smp.go", "searchSmpHandler", "Search", term, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось выполнить поиск СМП"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

func (a *app) smpDropdownHandler(c *gin.Context) {
	rows, err := a.smps.Dropdown(c.Request.Context())
	if err != nil {
		config.LogError(config.GetLogger(), "smp.go", "smpDropdownHandler", "Dropdown", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось получить справочник СМП"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

func (a *app) getSmpHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}

	smp, err := a.smps.Find(c.Request.Context(), id)
	if err != nil {
		config.LogError(config.GetLogger(), "smp.go", "getSmpHandler", "Find", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось получить СМП"})
		return
	}
	if smp == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "СМП не найден"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": smp})
}

func (a *app) createSmpHandler(c *gin.Context) {
	var input models.NewSmp
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Укажите наименование СМП"})
		return
	}

	created, err := a.smps.Create(c.Request.Context(), &input)
	if err != nil {
		config.LogError(config.GetLogger(), "smp.go", "createSmpHandler", "Create", input, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось создать СМП"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}
