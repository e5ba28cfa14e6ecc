package rest

import (
	"net/http"

	"github.com/civicpulse/civicpulse/internal/filter"
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/util"
	"github.com/civicpulse/civicpulse/util/tracing"
	"github.com/civicpulse/civicpulse/util/values"
	"github.com/go-chi/chi/v5"
)

func (api *API) IssueRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/", Handler(api.CreateIssue))
		r.Method(http.MethodGet, "/", Handler(api.ListIssues))
		r.Method(http.MethodPost, "/attachments", Handler(api.UploadAttachment))

		r.Method(http.MethodGet, "/{issueID}", Handler(api.GetIssueByID))
		r.Method(http.MethodPatch, "/{issueID}", Handler(api.EditIssue))
		r.Method(http.MethodPost, "/{issueID}/transition", Handler(api.TransitionIssue))
		r.Method(http.MethodPatch, "/{issueID}/progress", Handler(api.SetIssueProgress))
		r.Method(http.MethodPost, "/{issueID}/updates", Handler(api.AddIssueUpdate))
		r.Method(http.MethodPost, "/{issueID}/upvote", Handler(api.ToggleUpvote))
		r.Method(http.MethodGet, "/{issueID}/upvotes", Handler(api.GetUpvotes))
	})

	return mux
}

func (api *API) archiveIssue(issue model.Issue) {
	if api.Deps.Archive != nil {
		go api.Deps.Archive.SaveIssue(issue)
	}
}

func (api *API) CreateIssue(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.CreateIssueRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}
	req.ReporterID = userID

	issue, err := api.Deps.Issues.Create(req)
	if err != nil {
		return respondWithError(err, "failed to create issue", storeStatus(err), &tc)
	}
	api.archiveIssue(issue)

	return &ServerResponse{
		Message:    "Issue reported successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       issue,
	}
}

func (api *API) ListIssues(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var issues []model.Issue
	if r.URL.Query().Get("mine") == "true" {
		issues = api.Deps.Issues.ListByReporter(userID)
	} else {
		issues = api.Deps.Issues.List()
	}

	params := filter.Params{
		SearchTerm:   r.URL.Query().Get("search"),
		StatusFilter: r.URL.Query().Get("status"),
	}
	filtered := filter.Query(issues, params)

	return &ServerResponse{
		Message:    "Issues fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: struct {
			Issues []model.Issue    `json:"issues"`
			Stats  model.IssueStats `json:"stats"`
		}{
			Issues: filtered,
			Stats:  api.Deps.Issues.Stats(issues),
		},
	}
}

func (api *API) GetIssueByID(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	issueID, err := util.StringToUUID(chi.URLParam(r, "issueID"))
	if err != nil {
		return respondWithError(err, "invalid issue ID", values.BadRequestBody, &tc)
	}

	issue, err := api.Deps.Issues.Get(issueID)
	if err != nil {
		return respondWithError(err, "failed to get issue", storeStatus(err), &tc)
	}

	userID, _ := util.GetUserIDFromContext(r.Context())

	return &ServerResponse{
		Message:    "Issue fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: struct {
			model.Issue
			Upvotes model.UpvoteResult `json:"upvotes"`
		}{
			Issue: issue,
			Upvotes: model.UpvoteResult{
				Upvoted: api.Deps.Upvotes.HasVoted(issueID, userID),
				Count:   api.Deps.Upvotes.Count(issueID),
			},
		},
	}
}

func (api *API) EditIssue(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	issueID, err := util.StringToUUID(chi.URLParam(r, "issueID"))
	if err != nil {
		return respondWithError(err, "invalid issue ID", values.BadRequestBody, &tc)
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	issue, err := api.Deps.Issues.EditDetails(issueID, req.Title, req.Description)
	if err != nil {
		return respondWithError(err, "failed to edit issue", storeStatus(err), &tc)
	}
	api.archiveIssue(issue)

	return &ServerResponse{
		Message:    "Issue updated successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       issue,
	}
}

func (api *API) TransitionIssue(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	issueID, err := util.StringToUUID(chi.URLParam(r, "issueID"))
	if err != nil {
		return respondWithError(err, "invalid issue ID", values.BadRequestBody, &tc)
	}

	var req model.TransitionRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	issue, err := api.Deps.Issues.Transition(issueID, req.Status, req.Note)
	if err != nil {
		return respondWithError(err, "failed to transition issue", storeStatus(err), &tc)
	}
	api.archiveIssue(issue)

	return &ServerResponse{
		Message:    "Issue status updated",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       issue,
	}
}

func (api *API) SetIssueProgress(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	issueID, err := util.StringToUUID(chi.URLParam(r, "issueID"))
	if err != nil {
		return respondWithError(err, "invalid issue ID", values.BadRequestBody, &tc)
	}

	var req model.ProgressRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	issue, err := api.Deps.Issues.SetProgress(issueID, req.Progress)
	if err != nil {
		return respondWithError(err, "failed to set progress", storeStatus(err), &tc)
	}
	api.archiveIssue(issue)

	return &ServerResponse{
		Message:    "Progress updated",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       issue,
	}
}

func (api *API) AddIssueUpdate(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	issueID, err := util.StringToUUID(chi.URLParam(r, "issueID"))
	if err != nil {
		return respondWithError(err, "invalid issue ID", values.BadRequestBody, &tc)
	}

	var req model.UpdateNoteRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	issue, err := api.Deps.Issues.AddUpdate(issueID, userID, req.Message)
	if err != nil {
		return respondWithError(err, "failed to add update", storeStatus(err), &tc)
	}
	api.archiveIssue(issue)

	return &ServerResponse{
		Message:    "Update added successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       issue,
	}
}

func (api *API) ToggleUpvote(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	issueID, err := util.StringToUUID(chi.URLParam(r, "issueID"))
	if err != nil {
		return respondWithError(err, "invalid issue ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	result, err := api.Deps.Upvotes.Toggle(issueID, userID)
	if err != nil {
		return respondWithError(err, "failed to toggle upvote", storeStatus(err), &tc)
	}
	if api.Deps.Archive != nil {
		go api.Deps.Archive.SaveUpvote(issueID, userID, result.Upvoted)
	}

	return &ServerResponse{
		Message:    "Upvote toggled",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       result,
	}
}

func (api *API) GetUpvotes(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	issueID, err := util.StringToUUID(chi.URLParam(r, "issueID"))
	if err != nil {
		return respondWithError(err, "invalid issue ID", values.BadRequestBody, &tc)
	}

	userID, _ := util.GetUserIDFromContext(r.Context())

	return &ServerResponse{
		Message:    "Upvotes fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: model.UpvoteResult{
			Upvoted: api.Deps.Upvotes.HasVoted(issueID, userID),
			Count:   api.Deps.Upvotes.Count(issueID),
		},
	}
}

func (api *API) UploadAttachment(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	if api.Deps.Cloudinary == nil {
		return respondWithError(nil, "media storage not configured", values.NotAllowed, &tc)
	}

	var req struct {
		File string `json:"file"`
	}
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	url, err := api.Deps.Cloudinary.UploadImage(r.Context(), req.File, "issues")
	if err != nil {
		return respondWithError(err, "failed to upload attachment", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Attachment uploaded",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data: struct {
			URL string `json:"url"`
		}{URL: url},
	}
}
