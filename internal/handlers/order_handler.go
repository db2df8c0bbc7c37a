package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/services"
)

type CustomerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
}

type PlaceOrderRequest struct {
	Customer      CustomerRequest    `json:"customer" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod"`
	Notes         string             `json:"notes"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func orderService(c *gin.Context) (*services.OrderService, bool) {
	gormDB, ok := getDB(c)
	if !ok {
		return nil, false
	}
	return services.NewOrderService(gormDB, middleware.GetPublisher(c), middleware.GetLogger(c)), true
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrShopDisabled):
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "The shop is currently unavailable.")
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidStatus):
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrOrderCancelled):
		helpers.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		respondDBError(c, err, "Order")
	}
}

func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindingError(c, err)
		return
	}

	svc, ok := orderService(c)
	if !ok {
		return
	}

	items := make([]services.PlaceOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.PlaceOrderItem{
			ProductID: uuid.MustParse(item.ProductID),
			Quantity:  item.Quantity,
			Size:      item.Size,
		})
	}

	order, err := svc.Place(c.Request.Context(), services.PlaceOrderRequest{
		Customer: models.Customer{
			Name:       req.Customer.Name,
			Email:      req.Customer.Email,
			Phone:      req.Customer.Phone,
			Address:    req.Customer.Address,
			City:       req.Customer.City,
			PostalCode: req.Customer.PostalCode,
			Country:    req.Customer.Country,
		},
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	middleware.RecordOperation("order_place", err == nil)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully.",
		"order":   order,
	})
}

func TrackOrder(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Email is required.")
		return
	}

	svc, ok := orderService(c)
	if !ok {
		return
	}

	order, err := svc.Track(c.Request.Context(), c.Param("orderNumber"), email)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func ListOrders(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	p, ok := parsePagination(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := helpers.LikePattern(search)
		query = query.Where("(LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?)",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondDBError(c, err, "Order")
		return
	}

	var orders []models.Order
	err := query.Preload("Items").Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&orders).Error
	if err != nil {
		respondDBError(c, err, "Order")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated("orders", orders, total, p))
}

func GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc, ok := orderService(c)
	if !ok {
		return
	}

	order, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindingError(c, err)
		return
	}

	svc, ok := orderService(c)
	if !ok {
		return
	}

	order, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
	middleware.RecordOperation("order_status_update", err == nil)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
		"order":   order,
	})
}

func DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc, ok := orderService(c)
	if !ok {
		return
	}

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully."})
}
