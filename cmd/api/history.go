package main

import "net/http"

// GetHistory godoc
//
//	@Summary		Caller's activity history
//	@Description	Reviews the caller wrote and restaurants they added, newest first.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	history.History
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me/history [get]
func (app *application) historyHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	h, err := app.history.ForUser(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, h); err != nil {
		app.internalServerError(w, r, err)
	}
}
