// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"context"
	"log/slog"
)

// Client calls the Dynali API.
//
// Every operation is available in a blocking form and in a non-blocking
// form returning a [*Future]. Both run the same pipeline:
//
//	validate -> encode -> exchange -> decode -> map
//
// Validation failures never reach the [Transport]. In the non-blocking
// form, validation and encoding happen before the method returns and only
// the exchange and what follows run in the background.
//
// A Client holds only configuration and is safe for concurrent use.
type Client struct {
	cfg    Config
	logger SLogger
	txp    Transport
}

// NewClient returns a new [*Client].
//
// The cfg argument is copied; later changes to it do not affect the client.
//
// The txp argument performs the network exchange (e.g., [*HTTPTransport]).
//
// The logger argument is the [SLogger] to use for structured logging.
func NewClient(cfg *Config, txp Transport, logger SLogger) *Client {
	return &Client{cfg: *cfg, logger: logger, txp: txp}
}

// MyIP returns the public IP address of the caller as seen by the server.
func (c *Client) MyIP(ctx context.Context) (string, error) {
	return newCall(c, MapMyIP).run(ctx, NewMyIPAction())
}

// MyIPAsync is the non-blocking version of [*Client.MyIP].
func (c *Client) MyIPAsync(ctx context.Context) *Future[string] {
	return newCall(c, MapMyIP).start(ctx, NewMyIPAction())
}

// Update points hostname to ip, which is either [AutoIP] or a dotted-quad
// IPv4 address. The password is plaintext.
func (c *Client) Update(ctx context.Context, hostname, username, password, ip string) (bool, error) {
	return newCall(c, MapSuccess).run(ctx, NewUpdateAction(hostname, username, password, ip))
}

// UpdateAsync is the non-blocking version of [*Client.Update].
func (c *Client) UpdateAsync(ctx context.Context, hostname, username, password, ip string) *Future[bool] {
	return newCall(c, MapSuccess).start(ctx, NewUpdateAction(hostname, username, password, ip))
}

// Status returns the registration state of hostname. The password is plaintext.
func (c *Client) Status(ctx context.Context, hostname, username, password string) (StatusRecord, error) {
	return newCall(c, c.statusMapper(hostname)).run(ctx, NewStatusAction(hostname, username, password))
}

// StatusAsync is the non-blocking version of [*Client.Status].
func (c *Client) StatusAsync(ctx context.Context, hostname, username, password string) *Future[StatusRecord] {
	return newCall(c, c.statusMapper(hostname)).start(ctx, NewStatusAction(hostname, username, password))
}

// ChangePassword replaces the password of hostname. Both passwords are plaintext.
func (c *Client) ChangePassword(ctx context.Context, hostname, username, password, newPassword string) (bool, error) {
	action := NewChangePasswordAction(hostname, username, password, newPassword)
	return newCall(c, MapSuccess).run(ctx, action)
}

// ChangePasswordAsync is the non-blocking version of [*Client.ChangePassword].
func (c *Client) ChangePasswordAsync(ctx context.Context, hostname, username, password, newPassword string) *Future[bool] {
	action := NewChangePasswordAction(hostname, username, password, newPassword)
	return newCall(c, MapSuccess).start(ctx, action)
}

// statusMapper stamps CheckedAt when the response is mapped.
func (c *Client) statusMapper(hostname string) func(*Envelope[StatusData]) (StatusRecord, error) {
	return func(env *Envelope[StatusData]) (StatusRecord, error) {
		return MapStatus(env, hostname, c.cfg.TimeNow())
	}
}

// call is a single client call split at the exchange.
type call[D, R any] struct {
	prepare Func[Action, *Message]
	finish  Func[*Message, R]
}

func newCall[D, R any](c *Client, mapper func(*Envelope[D]) (R, error)) *call[D, R] {
	logger := &spanLogger{logger: c.logger, spanID: NewSpanID()}
	return &call[D, R]{
		prepare: Compose2[Action, Action, *Message](
			NewValidateFunc(&c.cfg, logger),
			NewEncodeFunc(),
		),
		finish: Compose3[*Message, *Message, *Envelope[D], R](
			NewExchangeFunc(&c.cfg, c.txp, logger),
			NewDecodeFunc[D](),
			NewMapFunc(&c.cfg, logger, mapper),
		),
	}
}

func (cl *call[D, R]) run(ctx context.Context, action Action) (R, error) {
	return Compose2(cl.prepare, cl.finish).Call(ctx, action)
}

func (cl *call[D, R]) start(ctx context.Context, action Action) *Future[R] {
	msg, err := cl.prepare.Call(ctx, action)
	if err != nil {
		var zero R
		return resolvedFuture(zero, err)
	}
	return startFuture(func() (R, error) {
		return cl.finish.Call(ctx, msg)
	})
}

// spanLogger adds the spanID attribute to every event.
type spanLogger struct {
	logger SLogger
	spanID string
}

var _ SLogger = &spanLogger{}

// Debug implements [SLogger].
func (l *spanLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, append(args, slog.String("spanID", l.spanID))...)
}

// Info implements [SLogger].
func (l *spanLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, append(args, slog.String("spanID", l.spanID))...)
}
