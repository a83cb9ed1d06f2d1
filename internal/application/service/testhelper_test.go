package service

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/internal/infrastructure/database"
	infraRepo "github.com/sparetrack/sparetrack-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the full service stack onto an in-memory SQLite database so
// tests exercise real transactions and real SQL instead of mocks.
type testEnv struct {
	db  *gorm.DB
	ctx context.Context

	shop     *entity.Shop
	category *entity.Category

	userRepo    domainRepo.UserRepository
	profileRepo domainRepo.RetailerProfileRepository
	itemRepo    domainRepo.ItemRepository
	ledgerRepo  domainRepo.LedgerRepository
	invoiceRepo domainRepo.InvoiceRepository
	orderRepo   domainRepo.OrderRepository
	returnRepo  domainRepo.ReturnRepository

	txManager *database.GormTxManager

	resolver   *CustomerResolver
	ledger     *LedgerService
	billing    *BillingService
	orders     *OrderService
	returns    *ReturnService
	items      *ItemService
	categories *CategoryService
	users      *ShopUserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory
	// database and serializes concurrent transactions.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	env := &testEnv{
		db:  db,
		ctx: context.Background(),
	}

	env.userRepo = infraRepo.NewUserRepository(db)
	env.profileRepo = infraRepo.NewRetailerProfileRepository(db)
	env.itemRepo = infraRepo.NewItemRepository(db)
	env.ledgerRepo = infraRepo.NewLedgerRepository(db)
	env.invoiceRepo = infraRepo.NewInvoiceRepository(db)
	env.orderRepo = infraRepo.NewOrderRepository(db)
	env.returnRepo = infraRepo.NewReturnRepository(db)
	categoryRepo := infraRepo.NewCategoryRepository(db)
	locationRepo := infraRepo.NewLocationRepository(db)
	partnerRepo := infraRepo.NewDeliveryPartnerRepository(db)

	env.txManager = database.NewGormTxManager(db)

	env.resolver = NewCustomerResolver(env.userRepo, env.profileRepo)
	env.ledger = NewLedgerService(env.txManager, env.ledgerRepo, env.profileRepo, env.userRepo)
	env.billing = NewBillingService(env.txManager, env.invoiceRepo, env.itemRepo, env.profileRepo, env.resolver, env.ledger, logger)
	env.orders = NewOrderService(env.txManager, env.orderRepo, env.itemRepo, env.invoiceRepo, env.userRepo, partnerRepo, env.ledger, logger)
	env.returns = NewReturnService(env.txManager, env.returnRepo, env.orderRepo, env.itemRepo, env.ledger, logger)
	env.items = NewItemService(env.itemRepo, categoryRepo, locationRepo, logger)
	env.categories = NewCategoryService(env.txManager, categoryRepo, env.itemRepo, logger)
	env.users = NewShopUserService(env.txManager, env.userRepo, env.profileRepo, logger)

	env.shop = &entity.Shop{Name: "Test Motors", Status: "active"}
	require.NoError(t, db.Create(env.shop).Error)

	env.category = env.createCategory(t, "Engine Parts", nil)

	return env
}

func (e *testEnv) createCategory(t *testing.T, name string, parentID *uuid.UUID) *entity.Category {
	t.Helper()
	category, err := e.categories.CreateCategory(e.ctx, e.shop.ID, &CreateCategoryInput{
		Name:     name,
		ParentID: parentID,
	})
	require.NoError(t, err)
	return category
}

func (e *testEnv) createItem(t *testing.T, name, price string, stock int) *entity.Item {
	t.Helper()
	item, err := e.items.CreateItem(e.ctx, e.shop.ID, &CreateItemInput{
		CategoryID:    e.category.ID,
		ItemName:      name,
		PurchasePrice: decimal.RequireFromString(price).Div(decimal.NewFromInt(2)),
		SellingPrice:  decimal.RequireFromString(price),
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return item
}

func (e *testEnv) createRetailer(t *testing.T, name, phone string) *entity.User {
	t.Helper()
	user, err := e.users.CreateRetailer(e.ctx, e.shop.ID, &CreateRetailerInput{
		Name:        name,
		Phone:       phone,
		Password:    "secret123",
		CreditLimit: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createStaffUser(t *testing.T, name, phone string, role enum.UserRole) *entity.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ShopID:   e.shop.ID,
		Name:     name,
		Phone:    phone,
		Password: string(hashed),
		Role:     role,
		Status:   "active",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) stockOf(t *testing.T, itemID uuid.UUID) int {
	t.Helper()
	var item entity.Item
	require.NoError(t, e.db.First(&item, "id = ?", itemID).Error)
	return item.StockQuantity
}

func (e *testEnv) balanceOf(t *testing.T, customerID uuid.UUID) decimal.Decimal {
	t.Helper()
	profile, err := e.profileRepo.GetByUserID(e.ctx, customerID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	return profile.CurrentBalance
}

func (e *testEnv) ledgerOf(t *testing.T, customerID uuid.UUID) []entity.LedgerEntry {
	t.Helper()
	var entries []entity.LedgerEntry
	require.NoError(t, e.db.
		Where("customer_id = ?", customerID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error)
	return entries
}

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(model).Count(&count).Error)
	return count
}
