package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apimw "github.com/quizhub/class-notifier/internal/api/middleware"
	"github.com/quizhub/class-notifier/internal/domain"
	"github.com/quizhub/class-notifier/internal/service"
)

// NotifyHandler handles the four notification endpoints.
type NotifyHandler struct {
	svc    *service.NotifyService
	logger *zap.Logger
}

func NewNotifyHandler(svc *service.NotifyService, logger *zap.Logger) *NotifyHandler {
	return &NotifyHandler{svc: svc, logger: logger}
}

// SendQuizNotice handles POST /api/v1/notifications/quiz
//
// @Summary     Send a single quiz notification
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       body  body      domain.QuizNoticeRequest  true  "Quiz notice payload"
// @Success     200   {object}  map[string]string
// @Failure     400   {object}  map[string]string
// @Failure     500   {object}  map[string]string
// @Router      /api/v1/notifications/quiz [post]
func (h *NotifyHandler) SendQuizNotice(w http.ResponseWriter, r *http.Request) {
	var req domain.QuizNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.svc.SendQuizNotice(r.Context(), req); err != nil {
		h.warn(r, "send quiz notice failed", err)
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Email sent successfully"})
}

// BroadcastQuiz handles POST /api/v1/notifications/class
//
// @Summary     Broadcast a quiz announcement to every student in a class
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       body  body      domain.ClassBroadcastRequest  true  "Broadcast payload"
// @Success     200   {object}  domain.DispatchResult
// @Failure     400   {object}  map[string]string
// @Failure     404   {object}  map[string]string
// @Failure     503   {object}  map[string]string
// @Router      /api/v1/notifications/class [post]
func (h *NotifyHandler) BroadcastQuiz(w http.ResponseWriter, r *http.Request) {
	var req domain.ClassBroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.svc.BroadcastQuiz(r.Context(), req)
	if err != nil {
		h.warn(r, "class broadcast failed", err)
		mapError(w, err)
		return
	}

	// Partial failure still returns 200: the failures list in the body is
	// the observable signal, and a 5xx here would invite duplicate sends.
	respondJSON(w, http.StatusOK, result)
}

// SendClassInvite handles POST /api/v1/notifications/invite
//
// @Summary     Invite a student to a class
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       body  body      domain.ClassInviteRequest  true  "Invite payload"
// @Success     200   {object}  map[string]string
// @Failure     400   {object}  map[string]string
// @Failure     500   {object}  map[string]string
// @Router      /api/v1/notifications/invite [post]
func (h *NotifyHandler) SendClassInvite(w http.ResponseWriter, r *http.Request) {
	var req domain.ClassInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.svc.SendClassInvite(r.Context(), req); err != nil {
		h.warn(r, "send class invite failed", err)
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Invite sent successfully"})
}

// SendLecturePacket handles POST /api/v1/notifications/lecture
//
// @Summary     Send lecture material to a student, with optional attachment
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       body  body      domain.LecturePacketRequest  true  "Lecture payload"
// @Success     200   {object}  map[string]string
// @Failure     400   {object}  map[string]string
// @Failure     500   {object}  map[string]string
// @Router      /api/v1/notifications/lecture [post]
func (h *NotifyHandler) SendLecturePacket(w http.ResponseWriter, r *http.Request) {
	var req domain.LecturePacketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.svc.SendLecturePacket(r.Context(), req); err != nil {
		h.warn(r, "send lecture packet failed", err)
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Lecture material sent successfully"})
}

func (h *NotifyHandler) warn(r *http.Request, msg string, err error) {
	h.logger.Warn(msg,
		zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
		zap.Error(err),
	)
}
