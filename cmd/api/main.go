package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/buildinfo"
	"github.com/ordosuite/salesbridge/internal/config"
	"github.com/ordosuite/salesbridge/internal/erp"
	"github.com/ordosuite/salesbridge/internal/handlers"
	"github.com/ordosuite/salesbridge/internal/logger"
	"github.com/ordosuite/salesbridge/internal/services/billing"
	"github.com/ordosuite/salesbridge/internal/services/catalog"
	"github.com/ordosuite/salesbridge/internal/services/directory"
	"github.com/ordosuite/salesbridge/internal/services/inventory"
	"github.com/ordosuite/salesbridge/internal/services/sales"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.AppEnv)
	defer zlog.Sync()

	zlog.Info("starting salesbridge",
		zap.String("env", cfg.AppEnv),
		zap.String("port", cfg.Port),
		zap.String("commit", buildinfo.CommitHash),
		zap.String("built", buildinfo.BuildTime))

	gateway := erp.NewClient(erp.Config{
		URL:      cfg.Odoo.URL,
		Database: cfg.Odoo.Database,
		Username: cfg.Odoo.Username,
		Password: cfg.Odoo.Password,
		AuthTTL:  time.Duration(cfg.Odoo.AuthTTL) * time.Hour,
		Timeout:  time.Duration(cfg.Odoo.HTTPTimeout) * time.Second,
	}, zlog.Named("erp"))

	router := handlers.NewRouter(cfg, zlog, handlers.Services{
		Billing:   billing.New(gateway, zlog.Named("billing"), cfg.Payment),
		Catalog:   catalog.New(gateway, zlog.Named("catalog")),
		Inventory: inventory.New(gateway, zlog.Named("inventory"), cfg.Odoo.CompanyID),
		Directory: directory.New(gateway, zlog.Named("directory")),
		Sales:     sales.New(gateway, zlog.Named("sales")),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zlog.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("shutdown failed", zap.Error(err))
	}
}
