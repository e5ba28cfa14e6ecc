package rest

import (
	"net/http"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/util"
	"github.com/civicpulse/civicpulse/util/tracing"
	"github.com/civicpulse/civicpulse/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (api *API) NotificationRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodGet, "/", Handler(api.ListNotifications))
		r.Method(http.MethodGet, "/unread-count", Handler(api.GetUnreadCount))
		r.Method(http.MethodPost, "/read-all", Handler(api.MarkAllNotificationsRead))
		r.Method(http.MethodGet, "/preferences", Handler(api.GetChannelPreferences))
		r.Method(http.MethodPut, "/preferences", Handler(api.SetChannelPreferences))
		r.Method(http.MethodPost, "/announce", Handler(api.Announce))

		r.Method(http.MethodPost, "/{notificationID}/read", Handler(api.MarkNotificationRead))
		r.Method(http.MethodDelete, "/{notificationID}", Handler(api.DeleteNotification))
	})

	return mux
}

func (api *API) ListNotifications(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	notifications := api.Deps.Notifications.List(userID)

	return &ServerResponse{
		Message:    "Notifications fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: struct {
			Notifications []model.Notification `json:"notifications"`
			UnreadCount   int                  `json:"unread_count"`
		}{
			Notifications: notifications,
			UnreadCount:   api.Deps.Notifications.UnreadCount(userID),
		},
	}
}

func (api *API) GetUnreadCount(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	return &ServerResponse{
		Message:    "Unread count fetched",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: struct {
			UnreadCount int `json:"unread_count"`
		}{UnreadCount: api.Deps.Notifications.UnreadCount(userID)},
	}
}

func (api *API) MarkNotificationRead(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	notificationID, err := util.StringToUUID(chi.URLParam(r, "notificationID"))
	if err != nil {
		return respondWithError(err, "invalid notification ID", values.BadRequestBody, &tc)
	}

	if err := api.Deps.Notifications.MarkRead(notificationID); err != nil {
		return respondWithError(err, "failed to mark notification read", storeStatus(err), &tc)
	}

	return &ServerResponse{
		Message:    "Notification marked as read",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

func (api *API) MarkAllNotificationsRead(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	api.Deps.Notifications.MarkAllRead(userID)

	return &ServerResponse{
		Message:    "All notifications marked as read",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

func (api *API) DeleteNotification(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	notificationID, err := util.StringToUUID(chi.URLParam(r, "notificationID"))
	if err != nil {
		return respondWithError(err, "invalid notification ID", values.BadRequestBody, &tc)
	}

	// Deletion is idempotent; a double-tap must not surface an error.
	api.Deps.Notifications.Delete(notificationID)

	return &ServerResponse{
		Message:    "Notification deleted",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

func (api *API) GetChannelPreferences(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	return &ServerResponse{
		Message:    "Preferences fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       api.Deps.Notifications.Preferences(userID),
	}
}

func (api *API) SetChannelPreferences(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var prefs model.ChannelPreferences
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &prefs); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	api.Deps.Notifications.SetPreferences(userID, prefs)

	return &ServerResponse{
		Message:    "Preferences updated",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       prefs,
	}
}

func (api *API) Announce(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req struct {
		Recipients []uuid.UUID `json:"recipients"`
		Message    string      `json:"message"`
	}
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if !util.NotBlank(req.Message) || len(req.Recipients) == 0 {
		return respondWithError(nil, "recipients and message are required", values.Unprocessable, &tc)
	}

	api.Deps.Notifications.Announce(req.Recipients, req.Message)

	return &ServerResponse{
		Message:    "Announcement sent",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
	}
}
