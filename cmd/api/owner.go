package main

import (
	"net/http"

	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/params"
)

// CreateOwnedRestaurant godoc
//
//	@Summary		Create a restaurant as its owner
//	@Description	The new listing is claimed by the caller from the start.
//	@Tags			Owner
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		restaurants.CreateInput	true	"Restaurant"
//	@Success		201		{object}	restaurants.Summary
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		422		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/owner/restaurants [post]
func (app *application) createOwnedRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	owner := getOwnerFromContext(r)

	var payload restaurants.CreateInput
	if !app.readPayload(w, r, &payload) {
		return
	}

	summary, err := app.claims.CreateClaimed(r.Context(), owner.ID, payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}

// UpdateOwnedRestaurant godoc
//
//	@Summary		Update a claimed restaurant
//	@Description	Only the owner holding the claim may update. Omitted fields keep their value.
//	@Tags			Owner
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		int					true	"Restaurant ID"
//	@Param			payload			body		restaurants.Patch	true	"Fields to change"
//	@Success		200				{object}	restaurants.Summary
//	@Failure		400				{object}	error
//	@Failure		401				{object}	error
//	@Failure		403				{object}	error	"Not the claiming owner"
//	@Failure		404				{object}	error
//	@Failure		422				{object}	error
//	@Security		ApiKeyAuth
//	@Router			/owner/restaurants/{restaurantID} [put]
func (app *application) updateOwnedRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	owner := getOwnerFromContext(r)

	var patch restaurants.Patch
	if !app.readPayload(w, r, &patch) {
		return
	}

	summary, err := app.claims.UpdateRestaurant(r.Context(), restaurantID, owner.ID, patch)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ClaimRestaurant godoc
//
//	@Summary		Claim a restaurant
//	@Description	Succeeds only if nobody has claimed the listing. Claims are permanent.
//	@Tags			Owner
//	@Produce		json
//	@Param			restaurantID	path		int	true	"Restaurant ID"
//	@Success		200				{object}	claims.ClaimResult
//	@Failure		400				{object}	error
//	@Failure		401				{object}	error
//	@Failure		404				{object}	error
//	@Failure		409				{object}	error	"Already claimed"
//	@Security		ApiKeyAuth
//	@Router			/owner/restaurants/{restaurantID}/claim [post]
func (app *application) claimRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	owner := getOwnerFromContext(r)

	result, err := app.claims.Claim(r.Context(), restaurantID, owner.ID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("restaurant claimed", "restaurant_id", restaurantID, "owner_id", owner.ID)
	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// OwnerRestaurantReviews godoc
//
//	@Summary		Reviews of a claimed restaurant
//	@Tags			Owner
//	@Produce		json
//	@Param			restaurantID	path		int	true	"Restaurant ID"
//	@Param			page			query		int	false	"Page number (1-based)"
//	@Param			size			query		int	false	"Page size (max 100)"
//	@Success		200				{object}	params.Page[reviews.Review]
//	@Failure		401				{object}	error
//	@Failure		403				{object}	error
//	@Failure		404				{object}	error
//	@Security		ApiKeyAuth
//	@Router			/owner/restaurants/{restaurantID}/reviews [get]
func (app *application) ownerRestaurantReviewsHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	owner := getOwnerFromContext(r)

	page, err := app.claims.RestaurantReviews(r.Context(), restaurantID, owner.ID, params.ParsePagination(r.URL.Query()))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

// OwnerDashboard godoc
//
//	@Summary		Owner dashboard
//	@Description	Claimed restaurants with review totals and the rating distribution across them.
//	@Tags			Owner
//	@Produce		json
//	@Success		200	{object}	claims.Dashboard
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/owner/dashboard [get]
func (app *application) ownerDashboardHandler(w http.ResponseWriter, r *http.Request) {
	owner := getOwnerFromContext(r)

	dash, err := app.claims.Dashboard(r.Context(), owner.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, dash); err != nil {
		app.internalServerError(w, r, err)
	}
}
