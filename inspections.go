package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/smpregistry/inspections_backend/config"
	"github.com/smpregistry/inspections_backend/importer"
	"github.com/smpregistry/inspections_backend/models"
)

const defaultPerPage = 10

func parseIdParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Некорректный идентификатор"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if v := strings.TrimSpace(c.Query(name)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func filtersFromQuery(c *gin.Context) models.InspectionFilters {
	return models.InspectionFilters{
		Q:                    strings.TrimSpace(c.Query("q")),
		SmpName:              strings.TrimSpace(c.Query("smp_name")),
		ControllingAuthority: strings.TrimSpace(c.Query("controlling_authority")),
		Status:               strings.TrimSpace(c.Query("status")),
		StartDate:            strings.TrimSpace(c.Query("start_date")),
		EndDate:              strings.TrimSpace(c.Query("end_date")),
	}
}

func (a *app) listInspectionsHandler(c *gin.Context) {
	params := models.ListParams{
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", defaultPerPage),
		Filters: filtersFromQuery(c),
	}

	list, err := a.inspections.List(c.Request.Context(), params)
	if err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "listInspectionsHandler", "List", params, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось получить список проверок"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *app) getInspectionHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}

	inspection, err := a.inspections.Find(c.Request.Context(), id)
	if err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "getInspectionHandler", "Find", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось получить проверку"})
		return
	}
	if inspection == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Проверка не найдена"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": inspection})
}

func (a *app) createInspectionHandler(c *gin.Context) {
	var input models.NewPlannedInspection
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Некорректный запрос"})
		return
	}

	created, fieldErrs, err := a.inspections.Create(c.Request.Context(), &input)
	if err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "createInspectionHandler", "Create", input, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось создать проверку"})
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": fieldErrs})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

func (a *app) updateInspectionHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}

	var input models.NewPlannedInspection
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Некорректный запрос"})
		return
	}

	updated, fieldErrs, err := a.inspections.Update(c.Request.Context(), id, &input)
	if err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "updateInspectionHandler", "Update", input, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось обновить проверку"})
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": fieldErrs})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Проверка не найдена"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

func (a *app) deleteInspectionHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}

	deleted, err := a.inspections.Delete(c.Request.Context(), id)
	if err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "deleteInspectionHandler", "Delete", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось удалить проверку"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Проверка не найдена"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Проверка удалена"})
}

func (a *app) listAuthoritiesHandler(c *gin.Context) {
	authorities, err := a.inspections.Authorities(c.Request.Context())
	if err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "listAuthoritiesHandler", "Authorities", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось получить список органов"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": authorities, "total": len(authorities)})
}

func (a *app) exportInspectionsHandler(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "inspections.export")
	defer span.End()

	params := models.ListParams{
		Page:    1,
		PerPage: config.ExportRowLimit,
		Filters: filtersFromQuery(c),
	}
	list, err := a.inspections.List(ctx, params)
	if err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "exportInspectionsHandler", "List", params, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось выполнить экспорт"})
		return
	}
	if len(list.Data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Нет данных для экспорта"})
		return
	}

	path, err := importer.ExportInspections(list.Data)
	if err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "exportInspectionsHandler", "ExportInspections", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось сформировать файл"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (a *app) downloadTemplateHandler(c *gin.Context) {
	path, err := importer.GenerateTemplate()
	if err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "downloadTemplateHandler", "GenerateTemplate", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось сформировать шаблон"})
		return
	}
	c.FileAttachment(path, "inspections_template.xlsx")
}

var importExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
}

func (a *app) importInspectionsHandler(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "inspections.import")
	defer span.End()

	file, err := c.FormFile("excel_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Файл не загружен"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !importExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Неподдерживаемый формат файла. Загрузите XLSX, XLS или CSV"})
		return
	}

	// Matched records are rewritten unless the form says otherwise.
	updateExisting := !strings.EqualFold(c.DefaultPostForm("update_existing", "true"), "false")

	dir := filepath.Join(config.UploadDir(), "imports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "importInspectionsHandler", "MkdirAll", dir, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось сохранить файл"})
		return
	}
	path := filepath.Join(dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		config.LogError(config.GetLogger(), "inspections.go", "importInspectionsHandler", "SaveUploadedFile", path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось сохранить файл"})
		return
	}
	defer os.Remove(path)

	result, err := a.importer.Process(ctx, path, importer.Options{UpdateExisting: updateExisting})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	config.GetLogger().WithFields(logrus.Fields{
		"field":    "import",
		"total":    result.Total,
		"imported": result.Imported,
		"updated":  result.Updated,
		"skipped":  result.Skipped,
	}).Info("import finished")
	c.JSON(http.StatusOK, result)
}
