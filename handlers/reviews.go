package handlers

import (
    "encoding/json"
    "log"
    "net/http"
    "strconv"

    "github.com/gorilla/mux"

    "arbt-storefront-api/database"
    "arbt-storefront-api/middleware"
    "arbt-storefront-api/models"
    "arbt-storefront-api/utils"
)

type ReviewHandler struct {
    db *database.Connection
}

func NewReviewHandler(db *database.Connection) *ReviewHandler {
    return &ReviewHandler{db: db}
}

func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
    limit := 20
    if v := r.URL.Query().Get("limit"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
            limit = n
        }
    }

    reviews, err := h.db.GetReviews(limit)
    if err != nil {
        log.Printf("Error loading reviews: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load reviews")
        return
    }

    if reviews == nil {
        reviews = []models.Review{}
    }
    utils.SendJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
    var in models.ReviewInput
    if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    if in.Rating < 1 || in.Rating > 5 {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Rating must be between 1 and 5")
        return
    }
    if in.Name == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Name is required")
        return
    }

    review := &models.Review{
        Name:    in.Name,
        Rating:  in.Rating,
        Comment: in.Comment,
    }
    if user := middleware.GetUserFromContext(r.Context()); user != nil {
        review.UserID = user.UserID
    }

    id, err := h.db.CreateReview(review)
    if err != nil {
        log.Printf("Error creating review: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to submit review")
        return
    }
    review.ID = id

    utils.SendJSON(w, http.StatusCreated, review)
}

// DeleteReview removes a feedback entry from the admin page.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(mux.Vars(r)["id"])
    if err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid review id")
        return
    }

    if err := h.db.DeleteReview(id); err != nil {
        log.Printf("Error deleting review %d: %v", id, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete review")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{Status: "success", Message: "Review deleted"})
}
