// Package main provides a CLI tool for seeding the database with reference
// catalogs and demo shifts.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/catalogs/barcode"
	"backoffice/internal/domain/catalogs/cash"
	"backoffice/internal/domain/catalogs/item"
	"backoffice/internal/domain/catalogs/price"
	"backoffice/internal/domain/catalogs/shop"
	"backoffice/internal/domain/shift"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/internal/infrastructure/storage/postgres/catalog_repo"
	"backoffice/internal/infrastructure/storage/postgres/shift_repo"
	"backoffice/pkg/logger"
)

type demoItem struct {
	article, name, barcode string
	price                  string
}

var (
	demoShops = []struct {
		number int
		name   string
		cashes int
	}{
		{1, "Central", 2},
		{2, "Riverside", 1},
	}

	demoItems = []demoItem{
		{"A-1001", "Milk 1L", "4600000000011", "1.25"},
		{"A-1002", "Bread", "4600000000028", "0.75"},
		{"A-1003", "Coffee 250g", "4600000000035", "6.40"},
		{"A-1004", "Apples 1kg", "4600000000042", "2.10"},
	}
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txm := postgres.NewTxManager(pool, time.Minute)

	if err := seedCatalogs(ctx, txm, log); err != nil {
		log.Fatalw("failed to seed catalogs", "error", err)
	}

	if os.Getenv("SEED_DEMO_SHIFTS") == "true" {
		if err := seedShifts(ctx, txm, log); err != nil {
			log.Fatalw("failed to seed demo shifts", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// alreadyExists reports uniqueness errors; seeding is re-runnable.
func alreadyExists(err error) bool {
	return apperror.HasCode(err, apperror.CodeConflict) || apperror.HasCode(err, apperror.CodeDuplicate)
}

func seedCatalogs(ctx context.Context, txm *postgres.TxManager, log *logger.Logger) error {
	shopRepo := catalog_repo.NewShopRepo(txm)
	itemRepo := catalog_repo.NewItemRepo(txm)

	shops := shop.NewService(shopRepo, txm)
	cashes := cash.NewService(catalog_repo.NewCashRepo(txm), shopRepo, txm)
	items := item.NewService(itemRepo, txm)
	prices := price.NewService(catalog_repo.NewPriceRepo(txm), itemRepo, txm)
	barcodes := barcode.NewService(catalog_repo.NewBarcodeRepo(txm), itemRepo, txm)

	for _, s := range demoShops {
		if err := shops.Create(ctx, shop.NewShop(s.number, s.name)); err != nil {
			if !alreadyExists(err) {
				return fmt.Errorf("shop %d: %w", s.number, err)
			}
			log.Infow("shop already exists", "number", s.number)
		}

		for n := 1; n <= s.cashes; n++ {
			c := cash.NewCash(s.number, n, fmt.Sprintf("Register %d", n), fmt.Sprintf("SN-%02d-%02d", s.number, n))
			if err := cashes.Create(ctx, c); err != nil {
				if !alreadyExists(err) {
					return fmt.Errorf("cash %d/%d: %w", s.number, n, err)
				}
				log.Infow("cash already exists", "shop", s.number, "number", n)
			}
		}
	}

	for _, d := range demoItems {
		it := item.NewItem(d.article, d.name)
		if err := items.Create(ctx, it); err != nil {
			if !alreadyExists(err) {
				return fmt.Errorf("item %s: %w", d.article, err)
			}
			log.Infow("item already exists, skipping price and barcode", "article", d.article)
			continue
		}

		if err := prices.Create(ctx, price.NewPrice(it.ID, nil, types.MustMoney(d.price))); err != nil && !alreadyExists(err) {
			return fmt.Errorf("price %s: %w", d.article, err)
		}
		if err := barcodes.Create(ctx, barcode.NewBarcode(it.ID, d.barcode)); err != nil && !alreadyExists(err) {
			return fmt.Errorf("barcode %s: %w", d.barcode, err)
		}
	}

	log.Infow("catalogs seeded", "shops", len(demoShops), "items", len(demoItems))
	return nil
}

// seedShifts registers one closed shift per demo register for each of the
// last three days.
func seedShifts(ctx context.Context, txm *postgres.TxManager, log *logger.Logger) error {
	svc := shift.NewService(shift.ServiceConfig{
		Repo:      shift_repo.NewRepo(txm),
		TxManager: txm,
		Batch:     shift.DefaultBatchOptions(),
	})

	today := time.Now().UTC().Truncate(24 * time.Hour)
	created := 0

	for day := 3; day >= 1; day-- {
		open := today.AddDate(0, 0, -day).Add(8 * time.Hour)
		closeAt := open.Add(12 * time.Hour)

		for _, s := range demoShops {
			for n := 1; n <= s.cashes; n++ {
				sh := &shift.Shift{
					Number:     4 - day,
					ShopNumber: s.number,
					CashNumber: n,
					OpenTime:   open,
					CloseTime:  &closeAt,
					Purchases:  demoPurchases(open, s.number+n+day),
				}
				if _, err := svc.Create(ctx, sh); err != nil {
					return fmt.Errorf("shift %d shop %d cash %d: %w", sh.Number, s.number, n, err)
				}
				created++
			}
		}
	}

	log.Infow("demo shifts seeded", "shifts", created)
	return nil
}

func demoPurchases(open time.Time, count int) []shift.Purchase {
	purchases := make([]shift.Purchase, 0, count)
	for i := 0; i < count; i++ {
		positions := make([]shift.Position, 0, 2)
		for j := 0; j < 2; j++ {
			d := demoItems[(i+j)%len(demoItems)]
			positions = append(positions, shift.Position{
				Barcode: d.barcode,
				Article: d.article,
				Name:    d.name,
				Price:   types.MustMoney(d.price),
			})
		}
		purchases = append(purchases, shift.Purchase{
			PurchaseTime: open.Add(time.Duration(i+1) * 17 * time.Minute),
			Positions:    positions,
		})
	}
	return purchases
}
