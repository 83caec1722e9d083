package main

import (
	"net/http"

	"dinefinder/internal/params"
)

// AddFavorite godoc
//
//	@Summary		Add a restaurant to favorites
//	@Description	Idempotent: adding an existing favorite succeeds and changes nothing.
//	@Tags			Favorites
//	@Produce		json
//	@Param			restaurantID	path		int	true	"Restaurant ID"
//	@Success		200				{object}	favorites.State
//	@Failure		400				{object}	error
//	@Failure		401				{object}	error
//	@Failure		404				{object}	error	"Restaurant not found"
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/favorite [post]
func (app *application) addFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	user := getUserFromContext(r)

	state, err := app.favorites.Add(r.Context(), user.ID, restaurantID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}

// RemoveFavorite godoc
//
//	@Summary		Remove a restaurant from favorites
//	@Description	Idempotent: removing a favorite that does not exist succeeds.
//	@Tags			Favorites
//	@Produce		json
//	@Param			restaurantID	path		int	true	"Restaurant ID"
//	@Success		200				{object}	favorites.State
//	@Failure		400				{object}	error
//	@Failure		401				{object}	error
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/favorite [delete]
func (app *application) removeFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	user := getUserFromContext(r)

	state, err := app.favorites.Remove(r.Context(), user.ID, restaurantID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ListFavorites godoc
//
//	@Summary		List favorite restaurants
//	@Description	Most recently favorited first.
//	@Tags			Favorites
//	@Produce		json
//	@Param			page	query		int	false	"Page number (1-based)"
//	@Param			size	query		int	false	"Page size (max 100)"
//	@Success		200		{object}	params.Page[favorites.FavoriteRestaurant]
//	@Failure		401		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me/favorites [get]
func (app *application) listFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	page, err := app.favorites.List(r.Context(), user.ID, params.ParsePagination(r.URL.Query()))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ListFavoriteIDs godoc
//
//	@Summary		List favorite restaurant ids
//	@Description	Used by clients to seed their local favorite state.
//	@Tags			Favorites
//	@Produce		json
//	@Success		200	{array}		int
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me/favorites/ids [get]
func (app *application) listFavoriteIDsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	ids, err := app.favorites.IDs(r.Context(), user.ID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, ids); err != nil {
		app.internalServerError(w, r, err)
	}
}
