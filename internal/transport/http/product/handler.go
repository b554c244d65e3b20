package product

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/app/product/dto"
	"github.com/murkotick/offering-catalog-service/internal/app/product/queries/get_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/queries/search_products"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/add_item"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/generate_snapshot"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/publish_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/remove_item"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/remove_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/reorder_items"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/restore_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/revert_to_draft"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/unpublish_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/update_product"
)

// Handler binds HTTP requests to usecases and query handlers. It carries no
// business logic: every rule lives behind the interactors.
type Handler struct {
	create     *create_product.Interactor
	update     *update_product.Interactor
	addItem    *add_item.Interactor
	removeItem *remove_item.Interactor
	reorder    *reorder_items.Interactor
	publish    *publish_product.Interactor
	unpublish  *unpublish_product.Interactor
	revert     *revert_to_draft.Interactor
	remove     *remove_product.Interactor
	restore    *restore_product.Interactor
	snapshot   *generate_snapshot.Interactor
	get        *get_product.Handler
	search     *search_products.Handler
}

func NewHandler(
	create *create_product.Interactor,
	update *update_product.Interactor,
	addItem *add_item.Interactor,
	removeItem *remove_item.Interactor,
	reorder *reorder_items.Interactor,
	publish *publish_product.Interactor,
	unpublish *unpublish_product.Interactor,
	revert *revert_to_draft.Interactor,
	remove *remove_product.Interactor,
	restore *restore_product.Interactor,
	snapshot *generate_snapshot.Interactor,
	get *get_product.Handler,
	search *search_products.Handler,
) *Handler {
	return &Handler{
		create:     create,
		update:     update,
		addItem:    addItem,
		removeItem: removeItem,
		reorder:    reorder,
		publish:    publish,
		unpublish:  unpublish,
		revert:     revert,
		remove:     remove,
		restore:    restore,
		snapshot:   snapshot,
		get:        get,
		search:     search,
	}
}

// Register mounts the product routes on the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/products", h.createProduct)
	rg.GET("/products", h.searchProducts)
	rg.GET("/products/:id", h.getProduct)
	rg.PATCH("/products/:id", h.updateProduct)
	rg.DELETE("/products/:id", h.removeProduct)

	rg.POST("/products/:id/items", h.addProductItem)
	rg.DELETE("/products/:id/items/:itemID", h.removeProductItem)
	rg.POST("/product-items/sort-orders", h.reorderItems)

	rg.POST("/products/:id/publish", h.publishProduct)
	rg.POST("/products/:id/unpublish", h.unpublishProduct)
	rg.POST("/products/:id/revert-to-draft", h.revertToDraft)
	rg.POST("/products/:id/restore", h.restoreProduct)

	rg.POST("/products/:id/snapshots", h.generateSnapshot)
}

func actorID(c *gin.Context) string {
	if actor := c.GetHeader("X-Actor-Id"); actor != "" {
		return actor
	}
	return "anonymous"
}

type priceRequest struct {
	Numerator   int64  `json:"numerator" binding:"required"`
	Denominator int64  `json:"denominator" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
}

type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type metadataRequest struct {
	Features []string     `json:"features"`
	FAQ      []faqRequest `json:"faq"`
	Terms    string       `json:"terms"`
}

func (m *metadataRequest) toDomain() *domain.Metadata {
	if m == nil {
		return nil
	}
	out := &domain.Metadata{
		Features: m.Features,
		Terms:    m.Terms,
	}
	for _, f := range m.FAQ {
		out.FAQ = append(out.FAQ, domain.FAQEntry{Question: f.Question, Answer: f.Answer})
	}
	return out
}

type createRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Code        string           `json:"code" binding:"required"`
	Price       priceRequest     `json:"price" binding:"required"`
	Metadata    *metadataRequest `json:"metadata"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	id, err := h.create.Execute(c.Request.Context(), create_product.Request{
		Name:        req.Name,
		Description: req.Description,
		Code:        req.Code,
		PriceNum:    req.Price.Numerator,
		PriceDen:    req.Price.Denominator,
		Currency:    req.Price.Currency,
		Metadata:    req.Metadata.toDomain(),
		ActorID:     actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product_id": id})
}

type updateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Code        *string          `json:"code"`
	Price       *priceRequest    `json:"price"`
	Metadata    *metadataRequest `json:"metadata"`
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ucReq := update_product.Request{
		ProductID:   c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Code:        req.Code,
		ActorID:     actorID(c),
	}
	if req.Price != nil {
		ucReq.Price = &update_product.PriceInput{
			Num:      req.Price.Numerator,
			Den:      req.Price.Denominator,
			Currency: req.Price.Currency,
		}
	}
	if req.Metadata != nil {
		ucReq.Metadata = req.Metadata.toDomain()
		ucReq.MetadataSet = true
	}

	if err := h.update.Execute(c.Request.Context(), ucReq); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addItemRequest struct {
	ReferenceKind string `json:"reference_kind" binding:"required"`
	ReferenceID   string `json:"reference_id" binding:"required"`
	Quantity      int64  `json:"quantity" binding:"required"`
	SortOrder     *int64 `json:"sort_order"`
}

func (h *Handler) addProductItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	itemID, err := h.addItem.Execute(c.Request.Context(), add_item.Request{
		ProductID:     c.Param("id"),
		ReferenceKind: req.ReferenceKind,
		ReferenceID:   req.ReferenceID,
		Quantity:      req.Quantity,
		SortOrder:     req.SortOrder,
		ActorID:       actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item_id": itemID})
}

func (h *Handler) removeProductItem(c *gin.Context) {
	err := h.removeItem.Execute(c.Request.Context(), remove_item.Request{
		ProductID: c.Param("id"),
		ItemID:    c.Param("itemID"),
		ActorID:   actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reorderRequest struct {
	Orders []struct {
		ItemID    string `json:"item_id" binding:"required"`
		SortOrder int64  `json:"sort_order"`
	} `json:"orders" binding:"required"`
}

func (h *Handler) reorderItems(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	orders := make([]domain.ItemSortOrder, 0, len(req.Orders))
	for _, o := range req.Orders {
		orders = append(orders, domain.ItemSortOrder{ItemID: o.ItemID, SortOrder: o.SortOrder})
	}

	err := h.reorder.Execute(c.Request.Context(), reorder_items.Request{
		Orders:  orders,
		ActorID: actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) publishProduct(c *gin.Context) {
	err := h.publish.Execute(c.Request.Context(), publish_product.Request{
		ProductID: c.Param("id"),
		ActorID:   actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type unpublishRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) unpublishProduct(c *gin.Context) {
	var req unpublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.unpublish.Execute(c.Request.Context(), unpublish_product.Request{
		ProductID: c.Param("id"),
		Reason:    req.Reason,
		ActorID:   actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) revertToDraft(c *gin.Context) {
	err := h.revert.Execute(c.Request.Context(), revert_to_draft.Request{
		ProductID: c.Param("id"),
		ActorID:   actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) removeProduct(c *gin.Context) {
	err := h.remove.Execute(c.Request.Context(), remove_product.Request{
		ProductID: c.Param("id"),
		ActorID:   actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) restoreProduct(c *gin.Context) {
	err := h.restore.Execute(c.Request.Context(), restore_product.Request{
		ProductID: c.Param("id"),
		ActorID:   actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type snapshotLineResponse struct {
	ReferenceKind string `json:"reference_kind"`
	ReferenceID   string `json:"reference_id"`
	ReferenceCode string `json:"reference_code"`
	Quantity      int64  `json:"quantity"`
}

type snapshotResponse struct {
	SnapshotID  string                 `json:"snapshot_id"`
	ProductID   string                 `json:"product_id"`
	Name        string                 `json:"name"`
	Code        string                 `json:"code"`
	Price       moneyResponse          `json:"price"`
	Lines       []snapshotLineResponse `json:"lines"`
	GeneratedAt time.Time              `json:"generated_at"`
	GeneratedBy string                 `json:"generated_by"`
}

func (h *Handler) generateSnapshot(c *gin.Context) {
	snap, err := h.snapshot.Execute(c.Request.Context(), generate_snapshot.Request{
		ProductID: c.Param("id"),
		ActorID:   actorID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	lines := make([]snapshotLineResponse, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, snapshotLineResponse{
			ReferenceKind: l.ReferenceKind,
			ReferenceID:   l.ReferenceID,
			ReferenceCode: l.ReferenceCode,
			Quantity:      l.Quantity,
		})
	}

	c.JSON(http.StatusCreated, snapshotResponse{
		SnapshotID: snap.ID,
		ProductID:  snap.ProductID,
		Name:       snap.Name,
		Code:       snap.Code,
		Price: moneyResponse{
			Numerator:   snap.Price.Numerator(),
			Denominator: snap.Price.Denominator(),
			Currency:    snap.Price.Currency(),
		},
		Lines:       lines,
		GeneratedAt: snap.GeneratedAt,
		GeneratedBy: snap.GeneratedBy,
	})
}

func (h *Handler) getProduct(c *gin.Context) {
	out, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(out))
}

func (h *Handler) searchProducts(c *gin.Context) {
	filter := dto.SearchFilter{
		SortField: c.Query("sort_field"),
		SortOrder: c.Query("sort_order"),
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("code"); v != "" {
		filter.Code = &v
	}
	if v := c.Query("name"); v != "" {
		filter.NameContains = &v
	}
	if v := c.Query("include_deleted"); v == "true" {
		filter.IncludeDeleted = true
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	out, err := h.search.Execute(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toSummaryResponses(out)})
}
