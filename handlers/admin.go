package handlers

import (
    "log"
    "net/http"
    "strconv"
    "time"

    "arbt-storefront-api/database"
    "arbt-storefront-api/models"
    "arbt-storefront-api/utils"
)

type AdminHandler struct {
    db *database.Connection
}

func NewAdminHandler(db *database.Connection) *AdminHandler {
    return &AdminHandler{db: db}
}

func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
    summary, err := h.db.GetDashboardSummary()
    if err != nil {
        log.Printf("Error loading dashboard summary: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load dashboard")
        return
    }

    utils.SendJSON(w, http.StatusOK, summary)
}

// GetOrdersPage returns the paginated admin order table.
func (h *AdminHandler) GetOrdersPage(w http.ResponseWriter, r *http.Request) {
    page := queryInt(r, "page", 1)
    limit := queryInt(r, "limit", 20)
    if limit > 100 {
        limit = 100
    }

    orders, total, err := h.db.GetOrdersPage(page, limit)
    if err != nil {
        log.Printf("Error loading orders page %d: %v", page, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load orders")
        return
    }

    if orders == nil {
        orders = []models.Order{}
    }
    totalPages := (total + limit - 1) / limit

    utils.SendJSON(w, http.StatusOK, models.PaginatedResponse{
        Items:      orders,
        Page:       page,
        Limit:      limit,
        TotalCount: total,
        TotalPages: totalPages,
    })
}

// GetSalesReport aggregates confirmed revenue per day. Defaults to the last
// 30 days when no range is supplied.
func (h *AdminHandler) GetSalesReport(w http.ResponseWriter, r *http.Request) {
    to := time.Now()
    from := to.AddDate(0, 0, -30)

    if v := r.URL.Query().Get("from"); v != "" {
        parsed, err := time.Parse("2006-01-02", v)
        if err != nil {
            utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
            return
        }
        from = parsed
    }
    if v := r.URL.Query().Get("to"); v != "" {
        parsed, err := time.Parse("2006-01-02", v)
        if err != nil {
            utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
            return
        }
        // Inclusive end of day.
        to = parsed.Add(24*time.Hour - time.Second)
    }
    if from.After(to) {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Report range start is after its end")
        return
    }

    report, err := h.db.GetSalesReport(from, to)
    if err != nil {
        log.Printf("Error building sales report: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to build sales report")
        return
    }

    if report == nil {
        report = []database.SalesRow{}
    }
    utils.SendJSON(w, http.StatusOK, report)
}

func queryInt(r *http.Request, key string, fallback int) int {
    v := r.URL.Query().Get(key)
    if v == "" {
        return fallback
    }
    n, err := strconv.Atoi(v)
    if err != nil || n < 1 {
        return fallback
    }
    return n
}
