package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/comedorlabs/comedor-server/internal/api/http/handler"
	"github.com/comedorlabs/comedor-server/internal/api/http/router"
	"github.com/comedorlabs/comedor-server/internal/config"
	"github.com/comedorlabs/comedor-server/internal/logger"
	"github.com/comedorlabs/comedor-server/internal/model"
	"github.com/comedorlabs/comedor-server/internal/repository/memory"
	"github.com/comedorlabs/comedor-server/internal/repository/postgres"
	"github.com/comedorlabs/comedor-server/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	location, err := cfg.App.Location()
	if err != nil {
		logger.Fatal("failed to resolve timezone", "error", err)
	}

	var (
		entryStore model.EntryStore
		shiftStore model.ShiftStore
		directory  model.UserDirectory
	)

	if cfg.App.DevMode {
		logger.Info("running in dev mode with in-memory stores")
		store := memory.New()
		seedDev(store)
		entryStore = store.Entries()
		shiftStore = store.Shifts()
		directory = store.Users()
	} else {
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize storage", "error", err)
		}
		defer db.Close()

		entryStore = postgres.NewEntryRepository(db)
		shiftStore = postgres.NewShiftRepository(db)
		directory = postgres.NewUserRepository(db)
	}

	accessService := service.NewAccess(entryStore, shiftStore, directory, location, logger)
	reportService := service.NewReport(entryStore, directory, logger)
	shiftService := service.NewShift(shiftStore, logger)

	app := router.New(
		handler.NewEntry(accessService, logger),
		handler.NewShift(shiftService, logger),
		handler.NewReport(reportService, location, logger),
		logger,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		addr := fmt.Sprintf(":%s", cfg.HTTP.Port)
		logger.Info("Starting server on", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// seedDev loads a small fixture set so the kiosk and dashboard can be
// exercised without postgres or the external directory.
func seedDev(store *memory.Store) {
	now := time.Now()
	shifts := []model.ShiftDefinition{
		{Label: "Desayuno", Start: mustTime("07:00"), End: mustTime("10:00")},
		{Label: "Comida", Start: mustTime("13:00"), End: mustTime("16:00")},
		{Label: "Cena", Start: mustTime("20:00"), End: mustTime("23:00")},
	}
	for _, s := range shifts {
		s.ID = uuid.New()
		s.Active = true
		s.CreatedAt = now
		s.UpdatedAt = now
		store.PutShift(s)
	}

	store.PutUser(model.User{ID: "E-1001", Name: "Ana Torres", Department: "Producción", Active: true})
	store.PutUser(model.User{ID: "E-1002", Name: "Luis Medina", Department: "Calidad", Active: true})
	store.PutUser(model.User{ID: "E-1003", Name: "Marta Ruiz", Active: true})
	store.PutUser(model.User{ID: "X-2001", Name: "Visitante", External: true, Active: true})
}

func mustTime(s string) model.TimeOfDay {
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}
