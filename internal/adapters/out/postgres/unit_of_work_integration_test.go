package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/deliveryrepo"
	"marketplace/internal/adapters/out/postgres/inventoryrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection for
// all tests. Runs database migrations to prepare the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError makes unique index violations surface as gorm.ErrDuplicatedKey
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&userrepo.UserDTO{},
		&productrepo.ProductDTO{},
		&inventoryrepo.InventoryDTO{},
		&orderrepo.OrderDTO{},
		&deliveryrepo.DeliveryDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE users, products, inventory, orders, deliveries").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies the factory creates isolated unit of
// work instances that expose all repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.InventoryRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow2.ProductRepository())
	suite.NotNil(uow2.UserRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit, and rollback
// operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid
// transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_InventoryRoundTrip verifies a ledger row survives a commit
// and that the ledger rejects a second row for the same product.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_InventoryRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	productID := kernel.NewUUID()
	inv := createTestInventory(suite.T(), productID, 25)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.InventoryRepository().Add(ctx, inv)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.InventoryRepository().GetByProductID(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal(25, retrieved.Available())
	suite.Equal(0, retrieved.Reserved())

	// One ledger row per product
	duplicate := createTestInventory(suite.T(), productID, 5)
	err = newUow.InventoryRepository().Add(ctx, duplicate)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

// TestUnitOfWork_OrderPlacementTransaction verifies the order insert and the
// stock decrease commit atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderPlacementTransaction() {
	ctx := context.Background()
	productID := kernel.NewUUID()
	suite.seedInventory(productID, 10)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	inv, err := uow.InventoryRepository().GetByProductIDForUpdate(ctx, productID)
	suite.Require().NoError(err)
	suite.Require().NoError(inv.Decrease(4))
	suite.Require().NoError(uow.InventoryRepository().Update(ctx, inv))

	testOrder := createTestOrder(suite.T(), productID, 4)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Equal(4, retrievedOrder.Quantity())

	retrievedInv, err := newUow.InventoryRepository().GetByProductID(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal(6, retrievedInv.Available())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards the order and
// the stock decrease together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	productID := kernel.NewUUID()
	suite.seedInventory(productID, 10)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	inv, err := uow.InventoryRepository().GetByProductIDForUpdate(ctx, productID)
	suite.Require().NoError(err)
	suite.Require().NoError(inv.Decrease(4))
	suite.Require().NoError(uow.InventoryRepository().Update(ctx, inv))

	testOrder := createTestOrder(suite.T(), productID, 4)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	// Changes are visible within the transaction
	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	retrievedInv, err := newUow.InventoryRepository().GetByProductID(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal(10, retrievedInv.Available(), "Stock decrease should be discarded")
}

// TestUnitOfWork_DeliveryUniquePerOrder verifies the one-delivery-per-order
// constraint holds at the storage level.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DeliveryUniquePerOrder() {
	ctx := context.Background()
	uow := suite.factory.Create()

	orderID := kernel.NewUUID()
	first := createTestDelivery(suite.T(), orderID)
	second := createTestDelivery(suite.T(), orderID)

	err := uow.DeliveryRepository().Add(ctx, first)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)

	exists, err := uow.DeliveryRepository().ExistsByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(exists)

	retrieved, err := uow.DeliveryRepository().GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(first.ID(), retrieved.ID())
}

// TestUnitOfWork_ConcurrentStockDecrease verifies the exclusive row lock
// serializes concurrent buyers so the ledger never oversells.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentStockDecrease() {
	ctx := context.Background()
	productID := kernel.NewUUID()
	suite.seedInventory(productID, 10)

	const (
		buyers      = 10
		perPurchase = 3
	)

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		succeeded    int
		insufficient int
	)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			inv, err := uow.InventoryRepository().GetByProductIDForUpdate(ctx, productID)
			if err != nil {
				return
			}

			if err = inv.Decrease(perPurchase); err != nil {
				mu.Lock()
				insufficient++
				mu.Unlock()
				return
			}

			if err = uow.InventoryRepository().Update(ctx, inv); err != nil {
				return
			}
			if err = uow.Commit(ctx); err != nil {
				return
			}

			mu.Lock()
			succeeded++
			mu.Unlock()
		}()
	}

	wg.Wait()

	suite.Equal(3, succeeded, "Only three purchases of 3 fit into a stock of 10")
	suite.Equal(buyers-3, insufficient)

	finalUow := suite.factory.Create()
	inv, err := finalUow.InventoryRepository().GetByProductID(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal(1, inv.Available(), "10 - 3*3 must remain, never negative")
}

// TestUnitOfWork_WithoutTransaction verifies repositories work without
// explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T(), kernel.NewUUID(), 2)

	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())
}

// TestUnitOfWork_OrderStatusUpdatePersists verifies status transitions made
// on a restored aggregate survive the update path.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderStatusUpdatePersists() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T(), kernel.NewUUID(), 2)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	retrieved, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(retrieved.ChangeStatus(order.Shipped))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, retrieved))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	final, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, final.Status())
}

// seedInventory inserts a committed ledger row outside any test transaction.
func (suite *UnitOfWorkIntegrationTestSuite) seedInventory(productID kernel.UUID, quantity int) {
	uow := suite.factory.Create()
	inv := createTestInventory(suite.T(), productID, quantity)
	err := uow.InventoryRepository().Add(context.Background(), inv)
	suite.Require().NoError(err)
}

func createTestInventory(t *testing.T, productID kernel.UUID, quantity int) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.NewInventory(kernel.NewUUID(), productID, quantity)
	if err != nil {
		t.Fatalf("create test inventory: %v", err)
	}
	return inv
}

func createTestOrder(t *testing.T, productID kernel.UUID, quantity int) *order.Order {
	t.Helper()
	testOrder, err := order.NewOrder(kernel.NewUUID(), productID, kernel.NewUUID(), quantity, 2.5)
	if err != nil {
		t.Fatalf("create test order: %v", err)
	}
	return testOrder
}

func createTestDelivery(t *testing.T, orderID kernel.UUID) *delivery.Delivery {
	t.Helper()
	del, err := delivery.NewDelivery(
		kernel.NewUUID(), orderID, kernel.NewUUID(), kernel.NewUUID(),
		time.Now().Add(72*time.Hour), "Warehouse", "")
	if err != nil {
		t.Fatalf("create test delivery: %v", err)
	}
	return del
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
