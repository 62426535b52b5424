// Seed de datos de demo: usuarios por rol, bodegas, catálogo e inventario
// inicial. Idempotencia simple: si el admin ya existe, no hace nada.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/almacen-pro/pkg/config"
	"github.com/tu-usuario/almacen-pro/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)

	if existing, err := userRepo.FindByEmail("admin@almacen.local"); err != nil {
		log.Fatal().Err(err).Msg("verificar seed previo")
	} else if existing != nil {
		log.Info().Msg("los datos de demo ya existen, nada que hacer")
		return
	}

	now := time.Now()
	mustHash := func(plain string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de password")
		}
		return string(h)
	}

	admin := &entity.User{ID: uuid.New().String(), Email: "admin@almacen.local", PasswordHash: mustHash("admin1234"), Name: "Administrador", Role: entity.RoleAdmin, Status: "active", CreatedAt: now, UpdatedAt: now}
	gerenteCentro := &entity.User{ID: uuid.New().String(), Email: "gerente.centro@almacen.local", PasswordHash: mustHash("gerente1234"), Name: "Marta Díaz", Role: entity.RoleGerente, Status: "active", CreatedAt: now, UpdatedAt: now}
	gerenteVedado := &entity.User{ID: uuid.New().String(), Email: "gerente.vedado@almacen.local", PasswordHash: mustHash("gerente1234"), Name: "Luis Pérez", Role: entity.RoleGerente, Status: "active", CreatedAt: now, UpdatedAt: now}
	vendedor := &entity.User{ID: uuid.New().String(), Email: "vendedor@almacen.local", PasswordHash: mustHash("vendedor1234"), Name: "Ana Gómez", Role: entity.RoleVendedor, Status: "active", CreatedAt: now, UpdatedAt: now}

	for _, u := range []*entity.User{admin, gerenteCentro, gerenteVedado, vendedor} {
		if err := userRepo.Create(u); err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("crear usuario")
		}
	}

	whCentro := &entity.Warehouse{ID: uuid.New().String(), Name: "Almacén Centro Habana", Location: "Centro Habana, La Habana", ManagerID: gerenteCentro.ID, Status: entity.WarehouseActive, CreatedAt: now, UpdatedAt: now}
	whVedado := &entity.Warehouse{ID: uuid.New().String(), Name: "Almacén Vedado", Location: "El Vedado, La Habana", ManagerID: gerenteVedado.ID, Status: entity.WarehouseActive, CreatedAt: now, UpdatedAt: now}
	for _, w := range []*entity.Warehouse{whCentro, whVedado} {
		if err := warehouseRepo.Create(w); err != nil {
			log.Fatal().Err(err).Str("name", w.Name).Msg("crear bodega")
		}
	}

	type seedProduct struct {
		sku, name, category, unit string
		price, cost               float64
		stockCentro, stockVedado  int64
		minT, maxT                int64
	}
	seedProducts := []seedProduct{
		{"GRA-001", "Arroz 5kg", "Granos", "saco", 12.50, 8.00, 120, 60, 30, 300},
		{"GRA-002", "Frijoles Negros 1kg", "Granos", "paquete", 4.20, 2.60, 80, 45, 25, 200},
		{"ACE-001", "Aceite de Cocina 1L", "Aceites", "botella", 6.80, 4.10, 60, 12, 20, 150},
		{"LAC-001", "Leche en Polvo 1kg", "Lácteos", "paquete", 9.90, 6.50, 40, 0, 15, 120},
		{"AZU-001", "Azúcar Refinada 2kg", "Endulzantes", "paquete", 3.50, 2.00, 200, 90, 40, 180},
	}

	for _, p := range seedProducts {
		product := &entity.Product{
			ID: uuid.New().String(), SKU: p.sku, Name: p.name, Category: p.category,
			Price: decimal.NewFromFloat(p.price), Cost: decimal.NewFromFloat(p.cost),
			Unit: p.unit, CreatedAt: now, UpdatedAt: now,
		}
		if err := productRepo.Create(product); err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("crear producto")
		}
		for _, loc := range []struct {
			warehouseID string
			stock       int64
		}{{whCentro.ID, p.stockCentro}, {whVedado.ID, p.stockVedado}} {
			rec := &entity.InventoryRecord{
				ID: uuid.New().String(), ProductID: product.ID, SKU: product.SKU,
				ProductName: product.Name, WarehouseID: loc.warehouseID,
				CurrentStock: loc.stock, MinThreshold: p.minT, MaxThreshold: p.maxT,
				Unit: product.Unit, CostPrice: product.Cost, SellingPrice: product.Price,
				Category: product.Category, LastUpdated: now,
			}
			if err := inventoryRepo.Create(rec); err != nil {
				log.Fatal().Err(err).Str("sku", p.sku).Msg("crear registro de inventario")
			}
		}
	}

	log.Info().
		Int("usuarios", 4).
		Int("bodegas", 2).
		Int("productos", len(seedProducts)).
		Msg("datos de demo cargados")
}
