package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/params"
)

// readIDParam parses a positive int64 URL parameter.
func readIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// ListRestaurants godoc
//
//	@Summary		List restaurants
//	@Description	Returns restaurant cards with live average rating and review count.
//	@Tags			Restaurants
//	@Produce		json
//	@Param			sort	query		string	false	"rating (default), newest or name"
//	@Param			city	query		string	false	"Exact city match, case-insensitive"
//	@Param			cuisine	query		string	false	"Exact cuisine match, case-insensitive"
//	@Param			page	query		int		false	"Page number (1-based)"
//	@Param			size	query		int		false	"Page size (max 100)"
//	@Success		200		{object}	params.Page[restaurants.Summary]
//	@Failure		422		{object}	error	"Unknown sort"
//	@Failure		500		{object}	error
//	@Router			/restaurants [get]
func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := restaurants.ListFilter{
		Sort:        q.Get("sort"),
		City:        q.Get("city"),
		CuisineType: q.Get("cuisine"),
	}

	page, err := app.catalog.List(r.Context(), filter, params.ParsePagination(q))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

// CreateRestaurant godoc
//
//	@Summary		Add a restaurant
//	@Description	Adds an unclaimed listing credited to the calling user.
//	@Tags			Restaurants
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		restaurants.CreateInput	true	"Restaurant"
//	@Success		201		{object}	restaurants.Restaurant
//	@Failure		400		{object}	error	"Malformed body"
//	@Failure		401		{object}	error
//	@Failure		422		{object}	error	"Invalid fields"
//	@Security		ApiKeyAuth
//	@Router			/restaurants [post]
func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload restaurants.CreateInput
	if !app.readPayload(w, r, &payload) {
		return
	}

	rest, err := app.catalog.Create(r.Context(), user.ID, payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, rest); err != nil {
		app.internalServerError(w, r, err)
	}
}

// GetRestaurant godoc
//
//	@Summary		Get a restaurant
//	@Description	Returns one restaurant with its live average rating and review count.
//	@Tags			Restaurants
//	@Produce		json
//	@Param			restaurantID	path		int	true	"Restaurant ID"
//	@Success		200				{object}	restaurants.Summary
//	@Failure		400				{object}	error
//	@Failure		404				{object}	error
//	@Router			/restaurants/{restaurantID} [get]
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	rest, err := app.catalog.Get(ctx, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}
	agg, err := app.reviews.Aggregate(ctx, id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	summary := restaurants.Summary{Restaurant: *rest, Aggregate: agg}
	if err := app.jsonResponse(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}
