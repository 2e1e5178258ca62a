package handler

import (
	"io"
	"net/http"
	"strconv"

	"backend/internal/app/ds"
	"backend/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ИГРЫ ============

func gameToDTO(g ds.Game) dto.GameResponse {
	return dto.GameResponse{
		ID:          g.ID,
		Name:        g.Name,
		Slug:        g.Slug,
		Description: g.Description,
		ImageURL:    g.ImageURL,
		MinRAMMb:    g.MinRAMMb,
	}
}

// GetGames получает список игр
// @Summary Получение списка игр
// @Description Возвращает каталог игр с возможностью поиска по названию
// @Tags Games
// @Produce json
// @Param query query string false "Поиск по названию игры"
// @Success 200 {object} dto.GameListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/games [get]
func (h *APIHandler) GetGames(c *gin.Context) {
	searchQuery := c.Query("query")

	var games []ds.Game
	var err error

	if searchQuery == "" {
		games, err = h.Repository.GetAllGames()
	} else {
		games, err = h.Repository.SearchGamesByName(searchQuery)
	}

	if err != nil {
		logrus.Error("Error getting games: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения каталога игр")
		return
	}

	dtoGames := make([]dto.GameResponse, len(games))
	for i, g := range games {
		dtoGames[i] = gameToDTO(g)
	}

	c.JSON(http.StatusOK, dto.GameListResponse{
		Games: dtoGames,
		Total: len(dtoGames),
	})
}

// GetGame получает одну игру
// @Summary Получение игры по ID
// @Description Возвращает детальную информацию об игре
// @Tags Games
// @Produce json
// @Param id path int true "ID игры"
// @Success 200 {object} dto.GameResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/games/{id} [get]
func (h *APIHandler) GetGame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID игры")
		return
	}

	game, err := h.Repository.GetGameByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Игра не найдена")
		return
	}

	c.JSON(http.StatusOK, gameToDTO(*game))
}

// GetGameData получает варианты установки игры
// @Summary Варианты установки игры
// @Description Возвращает доступные варианты установки (версии, модпаки)
// @Tags Games
// @Produce json
// @Param id path int true "ID игры"
// @Success 200 {array} dto.GameDataResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/games/{id}/variants [get]
func (h *APIHandler) GetGameData(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID игры")
		return
	}

	exists, err := h.Repository.GameExists(uint(id))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Игра не найдена")
		return
	}

	variants, err := h.Repository.GetGameDataForGame(uint(id))
	if err != nil {
		logrus.Error("Error getting game variants: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения вариантов установки")
		return
	}

	resp := make([]dto.GameDataResponse, len(variants))
	for i, v := range variants {
		resp[i] = dto.GameDataResponse{
			ID:          v.ID,
			Name:        v.Name,
			DockerImage: v.DockerImage,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// CreateGame создает игру в каталоге
// @Summary Создание игры
// @Description Добавляет новую игру в каталог (только админ)
// @Tags Games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGameRequest true "Данные игры"
// @Success 201 {object} dto.GameResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/games [post]
func (h *APIHandler) CreateGame(c *gin.Context) {
	var request dto.CreateGameRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	minRAM := request.MinRAMMb
	if minRAM == 0 {
		minRAM = 1024
	}

	game, err := h.Repository.CreateGame(request.Name, request.Slug, request.Description, minRAM)
	if err != nil {
		logrus.Error("Error creating game: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания игры")
		return
	}

	c.JSON(http.StatusCreated, gameToDTO(*game))
}

// UpdateGame изменяет игру
// @Summary Изменение игры
// @Description Обновляет поля игры в каталоге (только админ)
// @Tags Games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID игры"
// @Param request body dto.UpdateGameRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/games/{id} [put]
func (h *APIHandler) UpdateGame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID игры")
		return
	}

	var request dto.UpdateGameRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.Repository.GameExists(uint(id))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Игра не найдена")
		return
	}

	if err := h.Repository.UpdateGame(uint(id), request.Name, request.Description, request.MinRAMMb); err != nil {
		logrus.Error("Error updating game: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления игры")
		return
	}

	h.successResponse(c, http.StatusOK, "игра обновлена", nil)
}

// DeleteGame удаляет игру из каталога
// @Summary Удаление игры
// @Description Логически удаляет игру из каталога (только админ)
// @Tags Games
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID игры"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/games/{id} [delete]
func (h *APIHandler) DeleteGame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID игры")
		return
	}

	exists, err := h.Repository.GameExists(uint(id))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Игра не найдена")
		return
	}

	if err := h.Repository.DeleteGame(uint(id)); err != nil {
		logrus.Error("Error deleting game: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления игры")
		return
	}

	h.successResponse(c, http.StatusOK, "игра удалена из каталога", nil)
}

// UploadGameImage загружает обложку игры в MinIO
// @Summary Загрузка изображения игры
// @Description Загружает обложку игры в объектное хранилище (только админ)
// @Tags Games
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID игры"
// @Param image formData file true "Файл изображения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/games/{id}/image [post]
func (h *APIHandler) UploadGameImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID игры")
		return
	}

	game, err := h.Repository.GetGameByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Игра не найдена")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл изображения не передан")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	// Старая обложка больше не нужна
	if game.ImageURL != nil {
		if err := h.MinIOClient.DeleteFile(*game.ImageURL); err != nil {
			logrus.Warn("Cannot delete old image: ", err)
		}
	}

	imageURL, err := h.MinIOClient.UploadGameImage(fileData, fileHeader.Filename)
	if err != nil {
		logrus.Error("Error uploading image to MinIO: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки изображения")
		return
	}

	if err := h.Repository.UpdateGameImage(game.ID, imageURL); err != nil {
		logrus.Error("Error saving image URL: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения изображения")
		return
	}

	h.successResponse(c, http.StatusOK, "изображение загружено", gin.H{"image_url": imageURL})
}

// DeleteGameImage удаляет обложку игры
// @Summary Удаление изображения игры
// @Description Удаляет обложку игры из хранилища (только админ)
// @Tags Games
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID игры"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/games/{id}/image [delete]
func (h *APIHandler) DeleteGameImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID игры")
		return
	}

	game, err := h.Repository.GetGameByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Игра не найдена")
		return
	}

	if game.ImageURL != nil {
		if err := h.MinIOClient.DeleteFile(*game.ImageURL); err != nil {
			logrus.Warn("Cannot delete image from MinIO: ", err)
		}
	}

	if err := h.Repository.DeleteGameImage(game.ID); err != nil {
		logrus.Error("Error deleting image URL: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления изображения")
		return
	}

	h.successResponse(c, http.StatusOK, "изображение удалено", nil)
}
