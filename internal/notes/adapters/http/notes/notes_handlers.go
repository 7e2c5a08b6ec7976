// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/app/dto"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/logger"
)

// Константы сообщений для логирования и ответов.
const (
	LogHandlerListNotes      = "handling list notes request"
	LogHandlerGetNote        = "handling get note request"
	LogHandlerGetNoteByTitle = "handling get note by title request"
	LogHandlerCreateNote     = "handling create note request"
	LogHandlerUpdateNote     = "handling update note request"
	LogHandlerDeleteNote     = "handling delete note request"

	MsgNoNotesFound         = "No notes found"
	MsgNoteNotFound         = "Note not found"
	MsgTitleContentRequired = "Title and content are required"
	MsgInvalidRequestBody   = "Invalid request body"
	MsgInternalServerError  = "Internal server error"
	paramID                 = "id"
	paramTitle              = "title"
	errSendResponse         = "error sending response"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteService api.NoteService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteService api.NoteService) *Handler {
	return &Handler{noteService: noteService}
}

// ListNotes возвращает все заметки. Пустое хранилище отдается как 404.
func (h *Handler) ListNotes(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerListNotes)

	notes, err := h.noteService.ListNotes(ctx)
	if err != nil {
		return h.handleError(ctx, c, err, fiber.StatusNotFound)
	}

	return send(c, fiber.StatusOK, dto.NotesFromEntities(notes))
}

// GetNote возвращает заметку по ID.
func (h *Handler) GetNote(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerGetNote, zap.String(paramID, c.Params(paramID)))

	id, ok := parseID(c)
	if !ok {
		return send(c, fiber.StatusNotFound, dto.MessageResponse{Message: MsgNoteNotFound})
	}

	note, err := h.noteService.GetNote(ctx, id)
	if err != nil {
		return h.handleError(ctx, c, err, fiber.StatusNotFound)
	}

	return send(c, fiber.StatusOK, dto.NoteFromEntity(note))
}

// GetNoteByTitle возвращает первую заметку с точно совпадающим заголовком.
func (h *Handler) GetNoteByTitle(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	title := c.Params(paramTitle)
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}
	logger.Log(ctx).Debug(ctx, LogHandlerGetNoteByTitle, zap.String(paramTitle, title))

	note, err := h.noteService.GetNoteByTitle(ctx, title)
	if err != nil {
		return h.handleError(ctx, c, err, fiber.StatusNotFound)
	}

	return send(c, fiber.StatusOK, dto.NoteFromEntity(note))
}

// CreateNote создает новую заметку.
func (h *Handler) CreateNote(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(ctx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := bindBody(c, &req); err != nil {
		log.Warn(ctx, MsgInvalidRequestBody, zap.Error(err))
		return send(c, fiber.StatusBadRequest, dto.MessageResponse{Message: MsgInvalidRequestBody})
	}

	note, err := h.noteService.CreateNote(ctx, req.Title, req.Content)
	if err != nil {
		return h.handleError(ctx, c, err, fiber.StatusConflict)
	}

	return send(c, fiber.StatusCreated, dto.NoteFromEntity(note))
}

// UpdateNote частично обновляет заметку.
// Неизвестный ID отдается как 409, а не 404.
func (h *Handler) UpdateNote(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(ctx, LogHandlerUpdateNote, zap.String(paramID, c.Params(paramID)))

	id, ok := parseID(c)
	if !ok {
		return send(c, fiber.StatusConflict, dto.MessageResponse{Message: MsgNoteNotFound})
	}

	var req dto.UpdateNoteRequest
	if err := bindBody(c, &req); err != nil {
		log.Warn(ctx, MsgInvalidRequestBody, zap.Error(err))
		return send(c, fiber.StatusBadRequest, dto.MessageResponse{Message: MsgInvalidRequestBody})
	}

	if err := h.noteService.UpdateNote(ctx, id, req.Patch()); err != nil {
		return h.handleError(ctx, c, err, fiber.StatusConflict)
	}

	return sendStatus(c, fiber.StatusNoContent)
}

// DeleteNote удаляет заметку. Неизвестный ID отдается как 409.
func (h *Handler) DeleteNote(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerDeleteNote, zap.String(paramID, c.Params(paramID)))

	id, ok := parseID(c)
	if !ok {
		return send(c, fiber.StatusConflict, dto.MessageResponse{Message: MsgNoteNotFound})
	}

	if err := h.noteService.DeleteNote(ctx, id); err != nil {
		return h.handleError(ctx, c, err, fiber.StatusConflict)
	}

	return sendStatus(c, fiber.StatusNoContent)
}

// parseID разбирает :id. Нечисловой ID считается промахом поиска.
func parseID(c fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(paramID), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// bindBody разбирает JSON тело. Пустое тело или тело не в JSON
// означает пустой запрос.
func bindBody(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 || !isJSON(c.Get(fiber.HeaderContentType)) {
		return nil
	}
	if err := c.Bind().Body(out); err != nil {
		return fmt.Errorf("failed to bind request body: %w", err)
	}
	return nil
}

// isJSON принимает application/json и типы вида application/*+json.
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == fiber.MIMEApplicationJSON ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

// handleError переводит доменные ошибки в HTTP статусы.
// notFoundStatus - статус для ненайденной заметки, он различается по методам.
func (h *Handler) handleError(ctx context.Context, c fiber.Ctx, err error, notFoundStatus int) error {
	switch {
	case errors.Is(err, entities.ErrEmptyCollection):
		return send(c, fiber.StatusNotFound, dto.MessageResponse{Message: MsgNoNotesFound})
	case errors.Is(err, entities.ErrNoteNotFound):
		return send(c, notFoundStatus, dto.MessageResponse{Message: MsgNoteNotFound})
	case errors.Is(err, entities.ErrInvalidInput):
		return send(c, fiber.StatusConflict, dto.MessageResponse{Message: MsgTitleContentRequired})
	default:
		logger.Log(ctx).Error(ctx, "request failed", zap.Error(err))
		return send(c, fiber.StatusInternalServerError, dto.MessageResponse{Message: MsgInternalServerError})
	}
}

func send(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("%s: %w", errSendResponse, err)
	}
	return nil
}

func sendStatus(c fiber.Ctx, status int) error {
	if err := c.SendStatus(status); err != nil {
		return fmt.Errorf("%s: %w", errSendResponse, err)
	}
	return nil
}
