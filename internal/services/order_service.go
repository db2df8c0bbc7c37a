package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/notify"
)

type PlaceOrderItem struct {
	ProductID uuid.UUID
	Quantity  int
	Size      string
}

type PlaceOrderRequest struct {
	Customer      models.Customer
	Items         []PlaceOrderItem
	PaymentMethod string
	Notes         string
}

type OrderService struct {
	db        *gorm.DB
	publisher notify.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewOrderService(db *gorm.DB, publisher notify.Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		db:        db,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *OrderService) newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", s.now().UTC().Format("20060102"), suffix)
}

// Place creates an order and takes the ordered quantities out of stock in
// the same transaction. Item names and prices are copied from the products.
func (s *OrderService) Place(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	settings, err := LoadShopSettings(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if !settings.IsShopEnabled {
		return nil, ErrShopDisabled
	}

	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	customer := req.Customer
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))

	order := models.Order{
		OrderNumber:   s.newOrderNumber(),
		Customer:      customer,
		Status:        models.OrderPending,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		for _, line := range req.Items {
			if line.Quantity < 1 {
				return ErrInvalidQuantity
			}

			var product models.Product
			if err := tx.Where("id = ?", line.ProductID).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
				}
				return err
			}
			if !product.IsActive {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
			}

			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			item := models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  line.Quantity,
				Size:      line.Size,
			}
			total = total.Add(item.Subtotal())
			order.Items = append(order.Items, item)
		}

		order.TotalAmount = total
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.StringFixed(2)))

	notify.PublishAsync(s.publisher, s.logger, notify.OrderCreated, order.OrderNumber, order)

	return &order, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Track finds an order by number for the customer who placed it.
func (s *OrderService) Track(ctx context.Context, orderNumber, email string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ? AND customer_email = ?", orderNumber, strings.ToLower(strings.TrimSpace(email))).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves an order to status. Cancelling puts every item back in
// stock; a cancelled order cannot be moved again.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if !slices.Contains(models.OrderStatuses, status) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	var previous string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		previous = order.Status
		if previous == status {
			return nil
		}
		if previous == models.OrderCancelled {
			return ErrOrderCancelled
		}

		if status == models.OrderCancelled {
			if err := restoreStock(tx, order.Items, s.logger); err != nil {
				return err
			}
		}

		order.Status = status
		return tx.Model(&order).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}

	if previous != status {
		s.logger.Info("Order status updated",
			zap.String("order_number", order.OrderNumber),
			zap.String("from", previous),
			zap.String("to", status))

		eventType := notify.OrderStatusUpdated
		if status == models.OrderCancelled {
			eventType = notify.OrderCancelled
		}
		notify.PublishAsync(s.publisher, s.logger, eventType, order.OrderNumber, order)
	}

	return &order, nil
}

func restoreStock(tx *gorm.DB, items []models.OrderItem, logger *zap.Logger) error {
	for _, item := range items {
		result := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock + ?", item.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			logger.Warn("Product of cancelled order no longer exists, stock not restored",
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity))
		}
	}
	return nil
}

// Delete removes the order and its items. Stock is not adjusted.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}
