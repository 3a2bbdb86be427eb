package jobs

import (
	"context"
	"log"
	"time"

	"shopcore/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

const lowStockScanLimit = 500

// LowStockMonitor periodically scans tracked inventory and logs products
// that have fallen to or below the configured threshold.
type LowStockMonitor struct {
	scheduler     gocron.Scheduler
	inventoryRepo repositories.InventoryRepository
	productRepo   repositories.ProductRepository
	threshold     int
	interval      time.Duration
}

func NewLowStockMonitor(inventoryRepo repositories.InventoryRepository, productRepo repositories.ProductRepository, threshold int, interval time.Duration) (*LowStockMonitor, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &LowStockMonitor{
		scheduler:     scheduler,
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		threshold:     threshold,
		interval:      interval,
	}, nil
}

func (m *LowStockMonitor) Start() error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(m.CheckLowStock, context.Background()),
		gocron.WithName("low-stock-check"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}
	m.scheduler.Start()
	log.Printf("low stock monitor started, threshold=%d interval=%s", m.threshold, m.interval)
	return nil
}

func (m *LowStockMonitor) Stop() error {
	return m.scheduler.Shutdown()
}

func (m *LowStockMonitor) CheckLowStock(ctx context.Context) {
	inventories, err := m.inventoryRepo.ListLowStock(ctx, m.threshold, lowStockScanLimit)
	if err != nil {
		log.Printf("WARN: low stock check failed: %v", err)
		return
	}
	if len(inventories) == 0 {
		return
	}

	for _, inv := range inventories {
		name := inv.ProductID.String()
		product, err := m.productRepo.GetByID(ctx, inv.ProductID)
		if err != nil {
			log.Printf("WARN: low stock lookup for product %s failed: %v", inv.ProductID, err)
		} else if product != nil {
			name = product.Name
		}
		log.Printf("low stock: product %q has %d units (threshold %d)", name, inv.Qty, m.threshold)
	}
}
