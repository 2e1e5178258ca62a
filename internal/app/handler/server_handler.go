package handler

import (
	"errors"
	"net/http"
	"strconv"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/panel"
	"backend/internal/app/repository"
	"backend/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ СЕРВЕРЫ ПОЛЬЗОВАТЕЛЯ ============

func serverToDTO(s ds.GameServer) dto.ServerResponse {
	return dto.ServerResponse{
		ID:           s.ID,
		Name:         s.Name,
		GameName:     s.GameData.Game.Name,
		LocationName: s.Location.Name,
		CPUPercent:   s.CPUPercent,
		RAMMb:        s.RAMMb,
		DiskMb:       s.DiskMb,
		FreeServer:   s.FreeServer,
		Status:       s.Status,
		ExpiresAt:    s.ExpiresAt,
	}
}

// ownedServer загружает сервер и проверяет владение
func (h *APIHandler) ownedServer(c *gin.Context) (*ds.GameServer, bool) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return nil, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID сервера")
		return nil, false
	}

	server, err := h.Repository.GetServerByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Сервер не найден")
		return nil, false
	}

	if server.UserID != userID && userRole == role.Customer {
		h.errorResponse(c, http.StatusForbidden, "Сервер принадлежит другому пользователю")
		return nil, false
	}

	return server, true
}

// GetServers получает серверы пользователя
// @Summary Список серверов
// @Description Возвращает серверы текущего пользователя
// @Tags Servers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ServerListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/servers [get]
func (h *APIHandler) GetServers(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	servers, err := h.Repository.GetUserServers(userID)
	if err != nil {
		logrus.Error("Error getting servers: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения серверов")
		return
	}

	resp := make([]dto.ServerResponse, len(servers))
	for i, s := range servers {
		resp[i] = serverToDTO(s)
	}

	c.JSON(http.StatusOK, dto.ServerListResponse{
		Servers: resp,
		Total:   len(resp),
	})
}

// GetServer получает сервер с живым состоянием из панели
// @Summary Детали сервера
// @Description Возвращает сервер вместе с актуальным статусом и адресом из панели
// @Tags Servers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сервера"
// @Success 200 {object} dto.ServerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/servers/{id} [get]
func (h *APIHandler) GetServer(c *gin.Context) {
	server, ok := h.ownedServer(c)
	if !ok {
		return
	}

	resp := serverToDTO(*server)

	// Живое состояние из панели; её недоступность не роняет ответ
	panelServer, err := h.Panel.GetServer(c.Request.Context(), server.PanelIdentifier)
	if err != nil {
		logrus.Warn("Cannot get live server state: ", err)
	} else {
		resp.Status = panelServer.Status
		resp.IP = panelServer.Allocation.IP
		resp.Port = panelServer.Allocation.Port

		if panelServer.Status != server.Status {
			if err := h.Repository.UpdateServerStatus(server.ID, panelServer.Status); err != nil {
				logrus.Warn("Cannot sync server status: ", err)
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// RenameServer переименовывает сервер
// @Summary Переименование сервера
// @Description Изменяет отображаемое имя сервера
// @Tags Servers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сервера"
// @Param request body dto.RenameServerRequest true "Новое имя"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/servers/{id}/name [put]
func (h *APIHandler) RenameServer(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID сервера")
		return
	}

	var request dto.RenameServerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.RenameServer(uint(id), userID, request.Name); err != nil {
		if errors.Is(err, repository.ErrServerNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Сервер не найден")
			return
		}
		logrus.Error("Error renaming server: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка переименования сервера")
		return
	}

	h.successResponse(c, http.StatusOK, "сервер переименован", nil)
}

// SendPowerSignal управляет питанием сервера
// @Summary Управление сервером
// @Description Отправляет сигнал start/stop/restart/kill в панель
// @Tags Servers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сервера"
// @Param request body dto.PowerRequest true "Сигнал"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/servers/{id}/power [post]
func (h *APIHandler) SendPowerSignal(c *gin.Context) {
	server, ok := h.ownedServer(c)
	if !ok {
		return
	}

	var request dto.PowerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Panel.SendPowerSignal(c.Request.Context(), server.PanelIdentifier, request.Signal); err != nil {
		var panelErr *panel.Error
		if errors.As(err, &panelErr) && panelErr.StatusCode == http.StatusNotFound {
			h.errorResponse(c, http.StatusNotFound, "Сервер не найден в панели")
			return
		}
		logrus.Error("Error sending power signal: ", err)
		h.errorResponse(c, http.StatusBadGateway, "Панель недоступна")
		return
	}

	h.successResponse(c, http.StatusOK, "сигнал отправлен", nil)
}

// GetServerBackups получает бэкапы сервера
// @Summary Бэкапы сервера
// @Description Возвращает список бэкапов сервера из панели
// @Tags Servers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сервера"
// @Success 200 {array} dto.BackupResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/servers/{id}/backups [get]
func (h *APIHandler) GetServerBackups(c *gin.Context) {
	server, ok := h.ownedServer(c)
	if !ok {
		return
	}

	backups, err := h.Panel.ListBackups(c.Request.Context(), server.PanelIdentifier)
	if err != nil {
		logrus.Error("Error listing backups: ", err)
		h.errorResponse(c, http.StatusBadGateway, "Панель недоступна")
		return
	}

	resp := make([]dto.BackupResponse, len(backups))
	for i, b := range backups {
		resp[i] = dto.BackupResponse{
			UUID:      b.UUID,
			Name:      b.Name,
			Bytes:     b.Bytes,
			Completed: b.Completed,
			CreatedAt: b.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, resp)
}
