package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"messenger/internal/auth"
	"messenger/internal/httpx"
	"messenger/internal/models"
	"messenger/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *service.MessageService
}

func NewAPIHandler(service *service.MessageService) *Handler {
	return &Handler{Service: service}
}

type sendMessageRequest struct {
	ReceiverID *int    `json:"receiver_id" binding:"required"`
	Content    *string `json:"content" binding:"required"`
}

// ListMessages godoc
// @Summary  List messages
// @Tags     messages
// @Security OAuth2Password
// @Produce  json
// @Param    sender_id   query int  false "only messages from this sender"
// @Param    receiver_id query int  false "only messages to this receiver"
// @Param    read_status query bool false "only read or only unread messages"
// @Success  200 {array} models.Message
// @Failure  401 {object} httpx.ErrorResponse
// @Failure  422 {object} httpx.ErrorResponse
// @Router   /v1/messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	var filter models.MessageFilter
	var err error
	if filter.SenderID, err = queryInt(c, "sender_id"); err != nil {
		httpx.Abort(c, http.StatusUnprocessableEntity, "sender_id must be an integer")
		return
	}
	if filter.ReceiverID, err = queryInt(c, "receiver_id"); err != nil {
		httpx.Abort(c, http.StatusUnprocessableEntity, "receiver_id must be an integer")
		return
	}
	if filter.ReadStatus, err = queryBool(c, "read_status"); err != nil {
		httpx.Abort(c, http.StatusUnprocessableEntity, "read_status must be a boolean")
		return
	}

	messages, err := h.Service.ListMessages(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetMessage godoc
// @Summary  Fetch a message
// @Tags     messages
// @Security OAuth2Password
// @Produce  json
// @Param    msg_id path int true "message id"
// @Success  200 {object} models.Message
// @Failure  404 {object} httpx.ErrorResponse
// @Router   /v1/messages/{msg_id} [get]
func (h *Handler) GetMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	msg, err := h.Service.GetMessage(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// SendMessage godoc
// @Summary  Send a message as the caller
// @Tags     messages
// @Security OAuth2Password
// @Accept   json
// @Produce  json
// @Param    message body models.NewMessage true "receiver and content"
// @Success  200 {object} models.NewMessageID
// @Failure  422 {object} httpx.ErrorResponse
// @Router   /v1/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Abort(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	uid, _ := auth.UserID(c)
	id, err := h.Service.SendMessage(c.Request.Context(), uid, models.NewMessage{
		ReceiverID: *req.ReceiverID,
		Content:    *req.Content,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewMessageID{ID: id})
}

// GetReadStatus godoc
// @Summary  Read status of a message
// @Tags     messages
// @Security OAuth2Password
// @Produce  json
// @Param    msg_id path int true "message id"
// @Success  200 {boolean} boolean
// @Failure  404 {object} httpx.ErrorResponse
// @Router   /v1/messages/{msg_id}/read [get]
func (h *Handler) GetReadStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	read, err := h.Service.GetReadStatus(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, read)
}

// MarkRead godoc
// @Summary  Mark a received message as read
// @Tags     messages
// @Security OAuth2Password
// @Param    msg_id path int true "message id"
// @Success  200
// @Failure  404 {object} httpx.ErrorResponse
// @Failure  422 {object} httpx.ErrorResponse
// @Router   /v1/messages/{msg_id}/read [post]
func (h *Handler) MarkRead(c *gin.Context) {
	h.setReadStatus(c, h.Service.MarkRead)
}

// MarkUnread godoc
// @Summary  Mark a received message as unread
// @Tags     messages
// @Security OAuth2Password
// @Param    msg_id path int true "message id"
// @Success  200
// @Failure  404 {object} httpx.ErrorResponse
// @Failure  422 {object} httpx.ErrorResponse
// @Router   /v1/messages/{msg_id}/unread [post]
func (h *Handler) MarkUnread(c *gin.Context) {
	h.setReadStatus(c, h.Service.MarkUnread)
}

func (h *Handler) setReadStatus(c *gin.Context, mark func(ctx context.Context, callerID, id int) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	uid, _ := auth.UserID(c)
	if err := mark(c.Request.Context(), uid, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, nil)
}

// DeleteMessage godoc
// @Summary  Delete a message
// @Tags     messages
// @Security OAuth2Password
// @Param    msg_id path int true "message id"
// @Success  200
// @Failure  404 {object} httpx.ErrorResponse
// @Router   /v1/messages/{msg_id} [delete]
func (h *Handler) DeleteMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	uid, _ := auth.UserID(c)
	if err := h.Service.DeleteMessage(c.Request.Context(), uid, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, nil)
}

func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		httpx.Abort(c, http.StatusNotFound, "Message with given ID not found")
	case errors.Is(err, service.ErrForbidden):
		httpx.Abort(c, http.StatusUnprocessableEntity, forbiddenDetail(err))
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.FullPath(), err)
		httpx.Abort(c, http.StatusInternalServerError, "Internal server error")
	}
}

// forbiddenDetail keeps the service's "Cannot mark ..." wording but drops
// the wrapped sentinel text.
func forbiddenDetail(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "+service.ErrForbidden.Error()); i > 0 {
		msg = msg[:i]
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("msg_id"))
	if err != nil {
		httpx.Abort(c, http.StatusUnprocessableEntity, "msg_id must be an integer")
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
