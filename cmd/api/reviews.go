package main

import (
	"net/http"

	"dinefinder/internal/domain/reviews"
	"dinefinder/internal/params"
)

type CreateReviewPayload struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

type UpdateReviewPayload struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// CreateReview godoc
//
//	@Summary		Review a restaurant
//	@Description	Creates the caller's review. A user may review a restaurant once; later changes go through PUT /reviews/{reviewID}.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		int					true	"Restaurant ID"
//	@Param			payload			body		CreateReviewPayload	true	"Review"
//	@Success		201				{object}	reviews.Review
//	@Failure		400				{object}	error	"Malformed body"
//	@Failure		401				{object}	error
//	@Failure		404				{object}	error	"Restaurant not found"
//	@Failure		409				{object}	error	"Already reviewed"
//	@Failure		422				{object}	error	"Rating out of range"
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	user := getUserFromContext(r)

	var payload CreateReviewPayload
	if !app.readPayload(w, r, &payload) {
		return
	}

	review, err := app.reviews.Create(r.Context(), reviews.CreateInput{
		RestaurantID: restaurantID,
		UserID:       user.ID,
		Rating:       payload.Rating,
		Comment:      payload.Comment,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}
	review.UserName = user.Name

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ListRestaurantReviews godoc
//
//	@Summary		List reviews of a restaurant
//	@Description	Newest first, with the reviewer's display name.
//	@Tags			Reviews
//	@Produce		json
//	@Param			restaurantID	path		int	true	"Restaurant ID"
//	@Param			page			query		int	false	"Page number (1-based)"
//	@Param			size			query		int	false	"Page size (max 100)"
//	@Success		200				{object}	params.Page[reviews.Review]
//	@Failure		400				{object}	error
//	@Failure		404				{object}	error
//	@Router			/restaurants/{restaurantID}/reviews [get]
func (app *application) listRestaurantReviewsHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	page, err := app.reviews.ListForRestaurant(r.Context(), restaurantID, params.ParsePagination(r.URL.Query()))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

// UpdateReview godoc
//
//	@Summary		Edit a review
//	@Description	Only the author may edit. Omitted fields keep their value.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int					true	"Review ID"
//	@Param			payload		body		UpdateReviewPayload	true	"Fields to change"
//	@Success		200			{object}	reviews.Review
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Failure		403			{object}	error	"Not the author"
//	@Failure		404			{object}	error
//	@Failure		422			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [put]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := readIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	user := getUserFromContext(r)

	var payload UpdateReviewPayload
	if !app.readPayload(w, r, &payload) {
		return
	}

	review, err := app.reviews.Update(r.Context(), reviews.UpdateInput{
		ReviewID: reviewID,
		UserID:   user.ID,
		Rating:   payload.Rating,
		Comment:  payload.Comment,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}
	review.UserName = user.Name

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// DeleteReview godoc
//
//	@Summary		Delete a review
//	@Description	Only the author may delete.
//	@Tags			Reviews
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review ID"
//	@Success		200			{object}	map[string]string
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Failure		403			{object}	error	"Not the author"
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := readIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	user := getUserFromContext(r)

	if err := app.reviews.Delete(r.Context(), reviewID, user.ID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "review deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}
