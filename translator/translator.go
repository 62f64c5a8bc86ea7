// Package translator derives the addresses that let an Ethereum account
// hold assets on CKB (layer 1) and Godwoken (layer 2):
//
//   - the omni lock address on layer 1 that the Ethereum key signs for;
//   - the layer 2 account lock, its hash and the 20 byte short address;
//   - the layer 1 deposit address that credits a layer 2 account.
//
// A Translator is created uninitialized and becomes usable once Init has
// loaded the network parameters. Every derivation is pure and safe for
// concurrent use; only AccountExists and WaitForAccountCreation perform I/O,
// through the injected AccountResolver.
package translator

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/vulpemventures/go-godwoken/deposit"
	"github.com/vulpemventures/go-godwoken/network"
)

// AccountResolver looks up layer 2 accounts. It is implemented by
// gwclient.Client.
type AccountResolver interface {
	// AccountIDByScriptHash returns the id of the account whose lock has
	// the given script hash, with found set to false if there is none.
	AccountIDByScriptHash(ctx context.Context, scriptHash common.Hash) (id uint32, found bool, err error)
}

// readyState holds the parameters of an initialized translator.
type readyState struct {
	net        *network.Network
	deployment network.Deployment
}

// Translator derives layer 1 and layer 2 addresses for Ethereum accounts.
type Translator struct {
	state atomic.Pointer[readyState]

	resolver      AccountResolver
	cancelTimeout deposit.Since
	logger        logrus.FieldLogger
}

// Option configures a Translator.
type Option func(*Translator)

// WithResolver sets the collaborator used by AccountExists and
// WaitForAccountCreation.
func WithResolver(r AccountResolver) Option {
	return func(t *Translator) {
		t.resolver = r
	}
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Translator) {
		t.logger = l
	}
}

// WithCancelTimeout overrides the cancel timeout written into deposit
// locks. Defaults to deposit.DefaultCancelTimeout.
func WithCancelTimeout(since deposit.Since) Option {
	return func(t *Translator) {
		t.cancelTimeout = since
	}
}

// New returns an uninitialized translator.
func New(opts ...Option) *Translator {
	t := &Translator{
		cancelTimeout: deposit.DefaultCancelTimeout,
		logger:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.WithField("pkg", "translator")
	return t
}

// NewWithNetwork returns a translator initialized with the given network.
func NewWithNetwork(net *network.Network, opts ...Option) (*Translator, error) {
	t := New(opts...)
	if err := t.Init(net); err != nil {
		return nil, err
	}
	return t, nil
}

// Init validates and loads the network parameters. It can be called only
// once.
func (t *Translator) Init(net *network.Network) error {
	if net == nil {
		return fmt.Errorf("%w: network must not be nil", ErrInvalidInput)
	}
	if err := net.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := t.cancelTimeout.Validate(); err != nil {
		return fmt.Errorf("%w: cancel timeout: %w", ErrInvalidInput, err)
	}

	state := &readyState{net: net, deployment: net.Deployment()}
	if !t.state.CompareAndSwap(nil, state) {
		return ErrAlreadyInitialized
	}

	t.logger.WithFields(logrus.Fields{
		"network":        net.Name,
		"rollupTypeHash": net.RollupTypeHash.Hex(),
	}).Debug("network parameters loaded")
	return nil
}

// Initialized returns whether Init succeeded.
func (t *Translator) Initialized() bool {
	return t.state.Load() != nil
}

// Network returns the loaded network parameters.
func (t *Translator) Network() (*network.Network, error) {
	s, err := t.ready("Network")
	if err != nil {
		return nil, err
	}
	return s.net, nil
}

func (t *Translator) ready(op string) (*readyState, error) {
	s := t.state.Load()
	if s == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotInitialized)
	}
	return s, nil
}
