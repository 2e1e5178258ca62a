package handler

import (
	"errors"
	"net/http"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/pricing"
	"backend/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ЛОКАЦИИ И ПАКЕТЫ ============

// GetLocations получает список локаций
// @Summary Список локаций
// @Description Возвращает доступные локации с ценами за единицу ресурса
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.LocationListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/locations [get]
func (h *APIHandler) GetLocations(c *gin.Context) {
	locations, err := h.Repository.GetAllLocations()
	if err != nil {
		logrus.Error("Error getting locations: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения локаций")
		return
	}

	resp := make([]dto.LocationResponse, len(locations))
	for i, loc := range locations {
		resp[i] = dto.LocationResponse{
			ID:                loc.ID,
			Name:              loc.Name,
			Region:            loc.Region,
			PricePerCoreCents: loc.CPU.PricePerCoreCents,
			PricePerGbCents:   loc.RAM.PricePerGbCents,
		}
	}

	c.JSON(http.StatusOK, dto.LocationListResponse{
		Locations: resp,
		Total:     len(resp),
	})
}

// GetPackages получает список пакетов с актуальными ценами
// @Summary Список пакетов
// @Description Возвращает готовые пакеты; цена каждого считается на момент запроса
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.PackageListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/packages [get]
func (h *APIHandler) GetPackages(c *gin.Context) {
	packages, err := h.Repository.GetAllPackages()
	if err != nil {
		logrus.Error("Error getting packages: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения пакетов")
		return
	}

	resp := make([]dto.PackageResponse, len(packages))
	for i, pkg := range packages {
		// Цена пакета не хранится в БД, считается по текущим ценам локации
		price := pricing.CalculateNew(pkg.Location, pkg.CPUPercent, pkg.RAMMb, pkg.DurationDays)

		resp[i] = dto.PackageResponse{
			ID:           pkg.ID,
			Name:         pkg.Name,
			GameID:       pkg.GameID,
			GameName:     pkg.Game.Name,
			LocationID:   pkg.LocationID,
			LocationName: pkg.Location.Name,
			CPUPercent:   pkg.CPUPercent,
			RAMMb:        pkg.RAMMb,
			DiskMb:       pkg.DiskMb,
			DurationDays: pkg.DurationDays,
			PriceCents:   price.TotalCents,
		}
	}

	c.JSON(http.StatusOK, dto.PackageListResponse{
		Packages: resp,
		Total:    len(resp),
	})
}

// GetQuote считает цену конфигурации без создания заказа
// @Summary Расчёт цены конфигурации
// @Description Возвращает цену выбранной конфигурации железа (калькулятор)
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Конфигурация железа"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/checkout/quote [post]
func (h *APIHandler) GetQuote(c *gin.Context) {
	var request dto.QuoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	hardware := ds.HardwareConfig{
		CPUPercent:   request.CPUPercent,
		RAMMb:        request.RAMMb,
		DiskMb:       request.DiskMb,
		DurationDays: request.DurationDays,
		LocationID:   request.LocationID,
	}
	if err := hardware.Validate(); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.Repository.GetEnabledLocation(request.LocationID)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			h.errorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		logrus.Error("Error getting location for quote: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка расчёта цены")
		return
	}

	price := pricing.CalculateNew(*location, request.CPUPercent, request.RAMMb, request.DurationDays)

	c.JSON(http.StatusOK, dto.QuoteResponse{PriceCents: price.TotalCents})
}
