// Package container provides dependency injection for the fintrack application.
// It creates every store exactly once, loads its file and wires the stores
// together, so commands receive fully built collaborators instead of
// reaching for package-level state.
package container

import (
	"fmt"
	"time"

	"fintrack/internal/account"
	"fintrack/internal/analytics"
	"fintrack/internal/config"
	"fintrack/internal/ledger"
	"fintrack/internal/logging"
	"fintrack/internal/paymethod"
	"fintrack/internal/planner"
	"fintrack/internal/report"
	"fintrack/internal/storage"
	"fintrack/internal/wallet"
)

// Option configures NewContainer.
type Option func(*options)

type options struct {
	logger logging.Logger
	now    func() time.Time
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock replaces the wall clock used by the stores.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	ledger   *ledger.Store
	methods  *paymethod.Registry
	planner  *planner.Store
	wallet   *wallet.Store
	account  *account.Store
	reporter *report.Generator
}

// NewContainer creates, loads and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	file := func(name string) *storage.File {
		return storage.NewFile(cfg.DataPath(name), logger)
	}

	methods := paymethod.NewRegistry(file(cfg.Data.PaymentMethods), cfg.PaymentMethods.Defaults, logger)
	if err := methods.Load(); err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}

	ledgerStore := ledger.NewStore(file(cfg.Data.Transactions), methods, logger, ledger.WithClock(o.now))
	if err := ledgerStore.Load(); err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	methods.SetReferences(ledgerStore)

	plannerStore := planner.NewStore(file(cfg.Data.PlannedPayments), file(cfg.Data.Appointments), logger, o.now)
	if err := plannerStore.Load(); err != nil {
		return nil, fmt.Errorf("failed to load planner: %w", err)
	}

	walletStore := wallet.NewStore(file(cfg.Data.Wallet), logger)
	if err := walletStore.Load(); err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	accountStore := account.NewStore(file(cfg.Data.Account), logger)
	if err := accountStore.Load(); err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	logger.Debug("Container initialized successfully",
		logging.F("data_directory", cfg.Data.Directory),
		logging.F(logging.FieldCount, ledgerStore.Len()))

	return &Container{
		logger:   logger,
		config:   cfg,
		ledger:   ledgerStore,
		methods:  methods,
		planner:  plannerStore,
		wallet:   walletStore,
		account:  accountStore,
		reporter: report.NewGenerator(logger, o.now),
	}, nil
}

// GetLogger returns the configured logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLedger returns the transaction ledger.
func (c *Container) GetLedger() *ledger.Store {
	return c.ledger
}

// GetPaymentMethods returns the payment-method registry.
func (c *Container) GetPaymentMethods() *paymethod.Registry {
	return c.methods
}

// GetPlanner returns the planner store.
func (c *Container) GetPlanner() *planner.Store {
	return c.planner
}

// GetWallet returns the wallet store.
func (c *Container) GetWallet() *wallet.Store {
	return c.wallet
}

// GetAccount returns the account profile store.
func (c *Container) GetAccount() *account.Store {
	return c.account
}

// GetReportGenerator returns the reflection report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reporter
}

// NewAnalytics returns an engine over the ledger as it is right now. Later
// ledger changes are not seen until the engine is updated or rebuilt.
func (c *Container) NewAnalytics() *analytics.Engine {
	return analytics.NewEngine(c.ledger.Transactions(), c.logger)
}
