// Package gormstore implements the store on a relational database through GORM.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos-service/internal/model"
	"pos-service/internal/store"
	"pos-service/prometheus"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// Store is the GORM backed persistence gateway
type Store struct {
	db      *gorm.DB
	metrics *prometheus.Metrics
}

var _ store.Store = (*Store)(nil)

// New wraps an open connection. metrics may be nil.
func New(db *gorm.DB, metrics *prometheus.Metrics) *Store {
	return &Store{db: db, metrics: metrics}
}

func (s *Store) track(op string) func(time.Time) {
	return s.metrics.TrackDBOperation(op)
}

func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	defer s.track("list_products")(time.Now())

	var rows []productRow
	if err := s.db.WithContext(ctx).Order("name asc").Order("barcode asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.toModel())
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, barcode string) (*model.Product, error) {
	defer s.track("get_product")(time.Now())
	return s.getProduct(s.db.WithContext(ctx), barcode)
}

func (s *Store) getProduct(db *gorm.DB, barcode string) (*model.Product, error) {
	var row productRow
	if err := db.Where("barcode = ?", barcode).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", barcode, err)
	}
	p := row.toModel()
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	defer s.track("create_product")(time.Now())

	row := newProductRow(p)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("product %s: %w", p.Barcode, store.ErrDuplicate)
		}
		return nil, fmt.Errorf("create product %s: %w", p.Barcode, err)
	}
	created := row.toModel()
	return &created, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	defer s.track("update_product")(time.Now())

	result := s.db.WithContext(ctx).Model(&productRow{}).
		Where("barcode = ?", p.Barcode).
		Updates(map[string]interface{}{
			"name":       p.Name,
			"category":   p.Category,
			"price":      p.Price,
			"cost":       p.Cost,
			"stock":      p.Stock,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("update product %s: %w", p.Barcode, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return s.getProduct(s.db.WithContext(ctx), p.Barcode)
}

func (s *Store) DeleteProduct(ctx context.Context, barcode string) error {
	defer s.track("delete_product")(time.Now())

	result := s.db.WithContext(ctx).Where("barcode = ?", barcode).Delete(&productRow{})
	if result.Error != nil {
		return fmt.Errorf("delete product %s: %w", barcode, result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AdjustStock(ctx context.Context, adj model.StockAdjustment) (*model.Product, error) {
	defer s.track("adjust_stock")(time.Now())
	return s.applyStock(ctx, adj)
}

func (s *Store) DecrementStock(ctx context.Context, barcode string, quantity int) (*model.Product, error) {
	defer s.track("decrement_stock")(time.Now())
	return s.applyStock(ctx, model.Decrement(barcode, quantity))
}

// applyStock writes the new stock in one UPDATE so concurrent writers cannot lose updates.
func (s *Store) applyStock(ctx context.Context, adj model.StockAdjustment) (*model.Product, error) {
	expr, err := stockExpr(adj)
	if err != nil {
		return nil, err
	}

	var product *model.Product
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&productRow{}).
			Where("barcode = ?", adj.Barcode).
			Updates(map[string]interface{}{
				"stock":      expr,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("update stock %s: %w", adj.Barcode, result.Error)
		}
		if result.RowsAffected == 0 {
			return store.ErrNotFound
		}

		updated, getErr := s.getProduct(tx, adj.Barcode)
		product = updated
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// stockExpr is model.NextStock expressed as a column update
func stockExpr(adj model.StockAdjustment) (interface{}, error) {
	if err := adj.Check(); err != nil {
		return nil, err
	}
	switch adj.Type {
	case model.AdjustAdd:
		return gorm.Expr("stock + ?", adj.Quantity), nil
	case model.AdjustRemove:
		return gorm.Expr("GREATEST(stock - ?, 0)", adj.Quantity), nil
	default:
		return adj.Quantity, nil
	}
}

func (s *Store) CreateSale(ctx context.Context, sale model.Sale) error {
	defer s.track("create_sale")(time.Now())

	header, items := newSaleRows(sale)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&saleRow{}).Where("id = ?", sale.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("check sale %s: %w", sale.ID, err)
		}
		if count > 0 {
			return fmt.Errorf("sale %s: %w", sale.ID, store.ErrDuplicate)
		}

		if err := tx.Omit("Items").Create(&header).Error; err != nil {
			return fmt.Errorf("insert sale %s: %w", sale.ID, err)
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert items of sale %s: %w", sale.ID, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrDuplicate) && isUniqueViolation(err) {
			return fmt.Errorf("sale %s: %w", sale.ID, store.ErrDuplicate)
		}
		return err
	}
	return nil
}

func (s *Store) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	defer s.track("get_sale")(time.Now())

	var row saleRow
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get sale %s: %w", id, err)
	}

	sales, err := s.hydrate(ctx, []saleRow{row})
	if err != nil {
		return nil, err
	}
	return &sales[0], nil
}

func (s *Store) ListSales(ctx context.Context, filter store.SaleFilter) ([]model.Sale, error) {
	defer s.track("list_sales")(time.Now())

	query := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("date desc").Order("id desc")

	if filter.StartDate != "" {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if bound, inclusive := filter.Upper(); bound != "" {
		if inclusive {
			query = query.Where("date <= ?", bound)
		} else {
			query = query.Where("date < ?", bound)
		}
	}

	var rows []saleRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return s.hydrate(ctx, rows)
}

// hydrate loads the current products referenced by rows in a single query and converts the rows
func (s *Store) hydrate(ctx context.Context, rows []saleRow) ([]model.Sale, error) {
	products := make(map[string]model.Product)
	if barcodes := barcodesOf(rows); len(barcodes) > 0 {
		var productRows []productRow
		if err := s.db.WithContext(ctx).Where("barcode IN ?", barcodes).Find(&productRows).Error; err != nil {
			return nil, fmt.Errorf("load sale products: %w", err)
		}
		for _, r := range productRows {
			products[r.Barcode] = r.toModel()
		}
	}

	sales := make([]model.Sale, 0, len(rows))
	for _, r := range rows {
		sale, err := r.toModel(products)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return false
}
