// Package ton is the wallet service: one self-custodied TON account per user,
// stored sealed, with balance, transfer, history and receive operations on a
// network chosen per call.
package ton

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/rs/zerolog"

	"github.com/sergeybanach/wallet-app-1/internal/account"
	"github.com/sergeybanach/wallet-app-1/internal/history"
	"github.com/sergeybanach/wallet-app-1/internal/log"
	"github.com/sergeybanach/wallet-app-1/internal/model"
	"github.com/sergeybanach/wallet-app-1/internal/store"
	"github.com/sergeybanach/wallet-app-1/internal/transfer"
)

// Ledger is the ledger RPC surface of one network.
type Ledger interface {
	GetSequenceNumber(ctx context.Context, address string) (uint32, error)
	GetBalance(ctx context.Context, address string) (uint64, error)
	SubmitSignedMessage(ctx context.Context, boc []byte) error
	GetTransactions(ctx context.Context, address string, limit int) ([]model.RawLedgerRecord, error)
}

// RateSource prices TON in a fiat currency.
type RateSource interface {
	GetTONRate(ctx context.Context, currency string) (string, error)
}

// Options tune a Service. Zero values are usable.
type Options struct {
	Workchain    int32
	HistoryLimit int
	// Cooldown is the minimum pause between two sends of one user.
	Cooldown time.Duration
	// RateCurrency enables fiat values in balances when set with Rates.
	RateCurrency string
	Rates        RateSource
	Clock        clock.Clock
	// Logger replaces the package loggers of internal/log when set.
	Logger *zerolog.Logger
}

const defaultHistoryLimit = 10

// Service implements the wallet operations on top of a store and one ledger
// per network.
type Service struct {
	store      store.Store
	ledgers    map[model.Network]Ledger
	engine     *transfer.Engine
	reconciler *history.Reconciler
	opts       Options
	clock      clock.Clock
	log        zerolog.Logger

	mu    sync.Mutex
	users map[string]*userState
}

// userState serializes the sends of one user.
type userState struct {
	sem      chan struct{}
	lastSend time.Time
}

// New creates a Service.
func New(st store.Store, ledgers map[model.Network]Ledger, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = clock.NewDefaultClock()
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	walletLog, transferLog, historyLog := log.Wallet, log.Transfer, log.History
	if opts.Logger != nil {
		walletLog, transferLog, historyLog = *opts.Logger, *opts.Logger, *opts.Logger
	}

	backends := make(map[model.Network]transfer.Backend, len(ledgers))
	for network, ledger := range ledgers {
		backends[network] = transfer.Backend{
			Seqno:     account.NewReader(ledger, transferLog.With().Str("network", string(network)).Logger()),
			Submitter: ledger,
		}
	}

	return &Service{
		store:      st,
		ledgers:    ledgers,
		engine:     transfer.NewEngine(backends, opts.Clock, transferLog),
		reconciler: history.NewReconciler(opts.Clock, historyLog),
		opts:       opts,
		clock:      opts.Clock,
		log:        walletLog,
		users:      make(map[string]*userState),
	}
}

func (s *Service) ledger(network model.Network) (Ledger, error) {
	l, ok := s.ledgers[network]
	if !ok {
		return nil, fmt.Errorf("%w: no ledger configured for network %q", model.ErrEndpointUnavailable, network)
	}
	return l, nil
}

func (s *Service) user(userID string) *userState {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		u = &userState{sem: make(chan struct{}, 1)}
		s.users[userID] = u
	}
	return u
}
