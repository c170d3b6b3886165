package ledger

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

// LocationQuantity is one holding of a SKU.
type LocationQuantity struct {
	Location string `json:"location"`
	Quantity int    `json:"quantity"`
}

// InventoryRow is a stock entry joined with its owning product.
type InventoryRow struct {
	ID          uint   `json:"id"`
	SKU         string `json:"sku"`
	Location    string `json:"location"`
	Quantity    int    `json:"quantity"`
	Threshold   int    `json:"threshold"`
	ProductName string `json:"product_name"`
}

// LowStockRow is a stock entry sitting below its product's reorder threshold.
type LowStockRow struct {
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	Location    string `json:"location"`
	Quantity    int    `json:"quantity"`
	Threshold   int    `json:"threshold"`
}

// Repository is the stock ledger: per-(sku, location) non-negative
// quantities. Debit and Credit are the only transfer-path mutators; Upsert
// exists for operator-trusted corrections that bypass validation.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	QuantityAt(ctx context.Context, sku, location string) (int, error)
	LocationsFor(ctx context.Context, sku string) ([]LocationQuantity, error)
	Credit(ctx context.Context, sku, location string, amount int) error
	Debit(ctx context.Context, sku, location string, amount int) error
	Upsert(ctx context.Context, sku, location string, quantity int) error
	TotalForSKU(ctx context.Context, sku string) (int, error)
	BelowThreshold(ctx context.Context) ([]LowStockRow, error)
	ListWithProducts(ctx context.Context) ([]InventoryRow, error)
	Locations(ctx context.Context) ([]string, error)
	DeleteForSKU(ctx context.Context, sku string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a stock ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// QuantityAt returns the on-hand quantity; an absent entry reads as zero.
func (r *repository) QuantityAt(ctx context.Context, sku, location string) (int, error) {
	var entry models.StockEntry
	err := r.db.WithContext(ctx).
		Where("sku = ? AND location = ?", sku, location).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading stock entry")
	}
	return entry.Quantity, nil
}

// LocationsFor lists holdings with quantity > 0, largest first.
func (r *repository) LocationsFor(ctx context.Context, sku string) ([]LocationQuantity, error) {
	var rows []LocationQuantity
	err := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Select("location, quantity").
		Where("sku = ? AND quantity > 0", sku).
		Order("quantity DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing stock locations")
	}
	return rows, nil
}

// Credit adds amount to the entry, creating it on first write.
func (r *repository) Credit(ctx context.Context, sku, location string, amount int) error {
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "credit amount must be positive")
	}

	res := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Where("sku = ? AND location = ?", sku, location).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "crediting stock entry")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	entry := models.StockEntry{SKU: sku, Location: location, Quantity: amount}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating stock entry")
	}
	return nil
}

// Debit subtracts amount, failing with InsufficientStock when the entry is
// absent or short. The guarded UPDATE checks and mutates in one statement,
// so concurrent debits of the same (sku, location) serialize on the row
// inside the caller's transaction.
func (r *repository) Debit(ctx context.Context, sku, location string, amount int) error {
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "debit amount must be positive")
	}

	res := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Where("sku = ? AND location = ? AND quantity >= ?", sku, location, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "debiting stock entry")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock at origin").
			WithDetails(map[string]any{"sku": sku, "location": location, "requested": amount})
	}
	return nil
}

// Upsert sets the quantity outright. Operator-trusted correction path; not
// a transfer.
func (r *repository) Upsert(ctx context.Context, sku, location string, quantity int) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	res := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Where("sku = ? AND location = ?", sku, location).
		Update("quantity", quantity)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "updating stock entry")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	entry := models.StockEntry{SKU: sku, Location: location, Quantity: quantity}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating stock entry")
	}
	return nil
}

// TotalForSKU sums quantities across every location; zero when none exist.
func (r *repository) TotalForSKU(ctx context.Context, sku string) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Select("SUM(quantity)").
		Where("sku = ?", sku).
		Scan(&total).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summing stock")
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// BelowThreshold lists entries under their product's reorder threshold.
// Retail hubs hold sell-through stock and are excluded from replenishment
// alerting.
func (r *repository) BelowThreshold(ctx context.Context) ([]LowStockRow, error) {
	var rows []LowStockRow
	err := r.db.WithContext(ctx).
		Table("stock_entries").
		Select("stock_entries.sku, products.name AS product_name, stock_entries.location, stock_entries.quantity, products.threshold").
		Joins("JOIN products ON products.sku = stock_entries.sku").
		Where("stock_entries.quantity < products.threshold").
		Where("stock_entries.location NOT LIKE ?", enums.RetailHubPrefix+"%").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing low stock")
	}
	return rows, nil
}

// ListWithProducts returns the full inventory joined with product details.
func (r *repository) ListWithProducts(ctx context.Context) ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.WithContext(ctx).
		Table("stock_entries").
		Select("stock_entries.id, stock_entries.sku, stock_entries.location, stock_entries.quantity, products.threshold, products.name AS product_name").
		Joins("JOIN products ON products.sku = stock_entries.sku").
		Order("stock_entries.sku ASC, stock_entries.location ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing inventory")
	}
	return rows, nil
}

// Locations returns every distinct location appearing in the ledger.
func (r *repository) Locations(ctx context.Context) ([]string, error) {
	var locations []string
	err := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Distinct("location").
		Order("location ASC").
		Pluck("location", &locations).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing ledger locations")
	}
	return locations, nil
}

// DeleteForSKU clears every ledger entry for the SKU (product delete cascade).
func (r *repository) DeleteForSKU(ctx context.Context, sku string) error {
	if err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		Delete(&models.StockEntry{}).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("clearing stock for %s", sku))
	}
	return nil
}
