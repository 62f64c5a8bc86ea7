package translator

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// NoTimeout makes WaitForAccountCreation wait until the account exists
	// or the context is done.
	NoTimeout time.Duration = -1
	// DefaultPollInterval is used when WaitForAccountCreation is given a
	// non positive interval.
	DefaultPollInterval = 5 * time.Second
)

// AccountExists returns whether the layer 2 account of the Ethereum address
// has been created.
func (t *Translator) AccountExists(ctx context.Context, ethAddress string) (bool, error) {
	if _, err := t.ready("AccountExists"); err != nil {
		return false, err
	}
	lockHash, err := t.Layer2EthLockHash(ethAddress)
	if err != nil {
		return false, err
	}
	if t.resolver == nil {
		return false, fmt.Errorf("%w: no account resolver configured", ErrLookupFailed)
	}

	id, found, err := t.resolver.AccountIDByScriptHash(ctx, lockHash)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if found {
		t.logger.WithFields(logrus.Fields{
			"eth":       ethAddress,
			"accountId": id,
		}).Debug("layer 2 account found")
	}
	return found, nil
}

// WaitForAccountCreation polls AccountExists every interval until the
// account exists. A timeout of NoTimeout waits forever, any other negative
// or zero timeout checks once. ErrTimeout is returned when the timeout
// expires, ctx.Err() when the context is done first.
func (t *Translator) WaitForAccountCreation(
	ctx context.Context, ethAddress string, interval, timeout time.Duration,
) error {
	if _, err := t.ready("WaitForAccountCreation"); err != nil {
		return err
	}
	if _, err := parseEthAddress(ethAddress); err != nil {
		return err
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout < 0 && timeout != NoTimeout {
		timeout = 0
	}

	logger := t.logger.WithField("eth", ethAddress)
	start := time.Now()
	for attempt := 1; ; attempt++ {
		found, err := t.AccountExists(ctx, ethAddress)
		if err != nil {
			return err
		}
		if found {
			return nil
		}

		wait := interval
		if timeout != NoTimeout {
			remaining := timeout - time.Since(start)
			if remaining <= 0 {
				return fmt.Errorf("%w after %s", ErrTimeout, timeout)
			}
			wait = min(wait, remaining)
		}

		logger.WithField("attempt", attempt).Debugf("layer 2 account not found, retrying in %s", wait)
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
