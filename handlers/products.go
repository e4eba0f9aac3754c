package handlers

import (
    "encoding/json"
    "log"
    "net/http"
    "strconv"
    "strings"

    "github.com/gorilla/mux"

    "arbt-storefront-api/database"
    "arbt-storefront-api/models"
    "arbt-storefront-api/utils"
)

type ProductHandler struct {
    db *database.Connection
}

func NewProductHandler(db *database.Connection) *ProductHandler {
    return &ProductHandler{db: db}
}

// GetProducts lists the live catalog, with optional ?search= over name/tag.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
    products, err := h.db.GetProducts(false)
    if err != nil {
        log.Printf("Error listing products: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load products")
        return
    }

    if term := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search"))); term != "" {
        filtered := products[:0]
        for _, p := range products {
            if strings.Contains(strings.ToLower(p.Name), term) ||
                strings.Contains(strings.ToLower(p.Tag), term) {
                filtered = append(filtered, p)
            }
        }
        products = filtered
    }

    if products == nil {
        products = []models.Product{}
    }
    utils.SendJSON(w, http.StatusOK, products)
}

// GetArchivedProducts backs the admin archive page.
func (h *ProductHandler) GetArchivedProducts(w http.ResponseWriter, r *http.Request) {
    products, err := h.db.GetProducts(true)
    if err != nil {
        log.Printf("Error listing archived products: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load products")
        return
    }

    archived := []models.Product{}
    for _, p := range products {
        if p.Archived {
            archived = append(archived, p)
        }
    }
    utils.SendJSON(w, http.StatusOK, archived)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
    var in models.ProductInput
    if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }
    if in.Name == "" || in.Price < 0 {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Product needs a name and a non-negative price")
        return
    }

    id, err := h.db.CreateProduct(in)
    if err != nil {
        log.Printf("Error creating product: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create product")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{
        Status:  "success",
        Message: "Product created",
        Data:    map[string]int{"id": id},
    })
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
    id, err := productID(r)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid product id")
        return
    }

    var in models.ProductInput
    if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    if err := h.db.UpdateProduct(id, in); err != nil {
        log.Printf("Error updating product %d: %v", id, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update product")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{Status: "success", Message: "Product updated"})
}

// ArchiveProduct applies the archive optimistically and reports whether it
// stuck, so the admin table can flip the row immediately and roll back on a
// failure response.
func (h *ProductHandler) ArchiveProduct(w http.ResponseWriter, r *http.Request) {
    h.setArchived(w, r, true)
}

func (h *ProductHandler) UnarchiveProduct(w http.ResponseWriter, r *http.Request) {
    h.setArchived(w, r, false)
}

func (h *ProductHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
    id, err := productID(r)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid product id")
        return
    }

    if err := h.db.SetProductArchived(id, archived); err != nil {
        log.Printf("Error archiving product %d: %v", id, err)
        utils.SendErrorResponse(w, http.StatusConflict, "Archive state unchanged")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{Status: "success", Message: "Archive state updated"})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
    id, err := productID(r)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid product id")
        return
    }

    if err := h.db.DeleteProduct(id); err != nil {
        log.Printf("Error deleting product %d: %v", id, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete product")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{Status: "success", Message: "Product deleted"})
}

func productID(r *http.Request) (int, error) {
    return strconv.Atoi(mux.Vars(r)["id"])
}
