package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/encore/internal/cli"
	"github.com/alexanderramin/encore/internal/config"
	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/alexanderramin/encore/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	venueRepo := repository.NewSQLiteVenueRepo(database)
	occurrenceRepo := repository.NewSQLiteOccurrenceRepo(database)
	offeringRepo := repository.NewSQLiteTicketOfferingRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	sessionRepo := repository.NewSQLiteSaleSessionRepo(database)
	transactionRepo := repository.NewSQLiteSalesTransactionRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewSlogUseCaseObserver(logger)

	writeBack := service.NewSalesWriteBack(service.NewUoWSalesUpdater(uow), logger)
	balanceSvc := service.NewBalanceService(service.BalanceSources{
		Projects:     projectRepo,
		Venues:       venueRepo,
		Occurrences:  occurrenceRepo,
		Offerings:    offeringRepo,
		Tasks:        taskRepo,
		Activities:   activityRepo,
		Sessions:     sessionRepo,
		Transactions: transactionRepo,
	}, writeBack, cfg.VenueOptions(), cfg.Labels, observer)

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, observer),
		Budget:   service.NewBudgetService(projectRepo, uow, observer),
		Venues:   service.NewVenueService(venueRepo, observer),
		Schedule: service.NewScheduleService(occurrenceRepo, offeringRepo, uow, observer),
		WorkLog:  service.NewWorkLogService(taskRepo, activityRepo, uow, observer),
		Sales:    service.NewSalesService(sessionRepo, transactionRepo, uow, observer),
		Balance:  balanceSvc,
		Import:   service.NewImportService(uow, observer),

		Currency: cfg.Report.CurrencySymbol,
		Labels:   cfg.Labels,

		IsInteractive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
