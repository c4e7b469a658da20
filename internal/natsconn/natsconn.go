// Package natsconn opens the NATS connection used by the JetStream state backend.
package natsconn

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// Options controls how the client reaches NATS.
type Options struct {
	URL      string
	NKeySeed string
	Name     string
	Timeout  time.Duration
}

// Connect dials NATS, authenticating with an nkey when a seed is configured.
func Connect(opts Options, logger *slog.Logger) (*nats.Conn, error) {
	if opts.URL == "" {
		return nil, errors.New("nats url is required")
	}

	natsOpts := []nats.Option{
		nats.Name(opts.Name),
		nats.RetryOnFailedConnect(false),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", slog.Any("error", err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	}
	if opts.Timeout > 0 {
		natsOpts = append(natsOpts, nats.Timeout(opts.Timeout))
	}

	if opts.NKeySeed != "" {
		nkeyOpt, err := nkeyOption(opts.NKeySeed)
		if err != nil {
			return nil, err
		}
		natsOpts = append(natsOpts, nkeyOpt)
	}

	nc, err := nats.Connect(opts.URL, natsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Connected to NATS", slog.String("url", nc.ConnectedUrl()))
	return nc, nil
}

func nkeyOption(seed string) (nats.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	return nats.Nkey(pub, kp.Sign), nil
}
