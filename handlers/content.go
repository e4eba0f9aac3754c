package handlers

import (
    "encoding/json"
    "log"
    "net/http"
    "strconv"

    "github.com/gorilla/mux"

    "arbt-storefront-api/database"
    "arbt-storefront-api/models"
    "arbt-storefront-api/utils"
)

// ContentHandler serves the editable storefront content: the about-us team
// roster, subscription plans and promotional posts. Public reads return only
// live rows; admin reads include drafts and hidden entries.
type ContentHandler struct {
    db *database.Connection
}

func NewContentHandler(db *database.Connection) *ContentHandler {
    return &ContentHandler{db: db}
}

func (h *ContentHandler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
    h.listTeamMembers(w, true)
}

func (h *ContentHandler) GetAllTeamMembers(w http.ResponseWriter, r *http.Request) {
    h.listTeamMembers(w, false)
}

func (h *ContentHandler) listTeamMembers(w http.ResponseWriter, activeOnly bool) {
    members, err := h.db.GetTeamMembers(activeOnly)
    if err != nil {
        log.Printf("Error loading team members: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load team members")
        return
    }
    if members == nil {
        members = []models.TeamMember{}
    }
    utils.SendJSON(w, http.StatusOK, members)
}

func (h *ContentHandler) SaveTeamMember(w http.ResponseWriter, r *http.Request) {
    var m models.TeamMember
    if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if m.Name == "" || m.Role == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Name and role are required")
        return
    }

    id, err := h.db.UpsertTeamMember(&m)
    if err != nil {
        log.Printf("Error saving team member: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save team member")
        return
    }
    m.ID = id

    utils.SendJSON(w, http.StatusOK, m)
}

func (h *ContentHandler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(mux.Vars(r)["id"])
    if err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid team member id")
        return
    }

    if err := h.db.DeleteTeamMember(id); err != nil {
        log.Printf("Error deleting team member %d: %v", id, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete team member")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{Status: "success", Message: "Team member deleted"})
}

func (h *ContentHandler) GetSubscriptionPlans(w http.ResponseWriter, r *http.Request) {
    h.listPlans(w, true)
}

func (h *ContentHandler) GetAllSubscriptionPlans(w http.ResponseWriter, r *http.Request) {
    h.listPlans(w, false)
}

func (h *ContentHandler) listPlans(w http.ResponseWriter, activeOnly bool) {
    plans, err := h.db.GetSubscriptionPlans(activeOnly)
    if err != nil {
        log.Printf("Error loading subscription plans: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load subscription plans")
        return
    }
    if plans == nil {
        plans = []models.SubscriptionPlan{}
    }
    utils.SendJSON(w, http.StatusOK, plans)
}

func (h *ContentHandler) SaveSubscriptionPlan(w http.ResponseWriter, r *http.Request) {
    var p models.SubscriptionPlan
    if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if p.Name == "" || p.Price < 0 {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Plan needs a name and a non-negative price")
        return
    }

    id, err := h.db.UpsertSubscriptionPlan(&p)
    if err != nil {
        log.Printf("Error saving subscription plan: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save subscription plan")
        return
    }
    p.ID = id

    utils.SendJSON(w, http.StatusOK, p)
}

func (h *ContentHandler) GetPromotions(w http.ResponseWriter, r *http.Request) {
    h.listPromotions(w, true)
}

func (h *ContentHandler) GetAllPromotions(w http.ResponseWriter, r *http.Request) {
    h.listPromotions(w, false)
}

func (h *ContentHandler) listPromotions(w http.ResponseWriter, publishedOnly bool) {
    promos, err := h.db.GetPromotions(publishedOnly)
    if err != nil {
        log.Printf("Error loading promotions: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load promotions")
        return
    }
    if promos == nil {
        promos = []models.Promotion{}
    }
    utils.SendJSON(w, http.StatusOK, promos)
}

func (h *ContentHandler) SavePromotion(w http.ResponseWriter, r *http.Request) {
    var p models.Promotion
    if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if p.Title == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Title is required")
        return
    }

    id, err := h.db.UpsertPromotion(&p)
    if err != nil {
        log.Printf("Error saving promotion: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save promotion")
        return
    }
    p.ID = id

    utils.SendJSON(w, http.StatusOK, p)
}

func (h *ContentHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(mux.Vars(r)["id"])
    if err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid promotion id")
        return
    }

    if err := h.db.DeletePromotion(id); err != nil {
        log.Printf("Error deleting promotion %d: %v", id, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete promotion")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{Status: "success", Message: "Promotion deleted"})
}
