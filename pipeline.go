// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"context"
	"log/slog"
	"time"
)

// Message carries an [Action] through the encode and exchange stages.
type Message struct {
	// Action is the action being executed.
	Action Action

	// Request is the encoded request body.
	Request []byte

	// Response is the raw response body, set by [*ExchangeFunc].
	Response []byte
}

// NewValidateFunc returns a new [*ValidateFunc].
//
// The logger argument is the [SLogger] to use for structured logging.
func NewValidateFunc(cfg *Config, logger SLogger) *ValidateFunc {
	return &ValidateFunc{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
	}
}

// ValidateFunc runs [Validate] and fails with a [*ValidationError] when
// the action has problems. On success, the action is returned unchanged.
type ValidateFunc struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewValidateFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use.
	//
	// Set by [NewValidateFunc] to the user-provided logger.
	Logger SLogger
}

var _ Func[Action, Action] = &ValidateFunc{}

// Call implements [Func].
func (op *ValidateFunc) Call(ctx context.Context, action Action) (Action, error) {
	var err error
	name := WireName(action)
	if messages := Validate(action); len(messages) > 0 {
		err = &ValidationError{Action: name, Messages: messages}
	}
	op.Logger.Info(
		"dynaliValidateDone",
		slog.String("action", name),
		slog.Any("err", err),
		slog.String("errClass", op.ErrClassifier.Classify(err)),
	)
	if err != nil {
		return nil, err
	}
	return action, nil
}

// NewEncodeFunc returns a new [*EncodeFunc].
func NewEncodeFunc() *EncodeFunc {
	return &EncodeFunc{}
}

// EncodeFunc serializes a validated [Action] with [EncodeRequest].
type EncodeFunc struct{}

var _ Func[Action, *Message] = &EncodeFunc{}

// Call implements [Func].
func (op *EncodeFunc) Call(ctx context.Context, action Action) (*Message, error) {
	body, err := EncodeRequest(action)
	if err != nil {
		return nil, err
	}
	return &Message{Action: action, Request: body}, nil
}

// NewExchangeFunc returns a new [*ExchangeFunc] sending to [Config.Endpoint].
//
// The txp argument is the [Transport] performing the exchange.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewExchangeFunc(cfg *Config, txp Transport, logger SLogger) *ExchangeFunc {
	return &ExchangeFunc{
		Endpoint:      cfg.Endpoint,
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		TimeNow:       cfg.TimeNow,
		Transport:     txp,
	}
}

// ExchangeFunc sends the request of a [*Message] using a [Transport] and
// stores the response body into the same message.
//
// Transport failures are returned as [*TransportError].
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Call].
type ExchangeFunc struct {
	// Endpoint is where requests are sent.
	//
	// Set by [NewExchangeFunc] from [Config.Endpoint].
	Endpoint Endpoint

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewExchangeFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use.
	//
	// Set by [NewExchangeFunc] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time.
	//
	// Set by [NewExchangeFunc] from [Config.TimeNow].
	TimeNow func() time.Time

	// Transport performs the exchange.
	//
	// Set by [NewExchangeFunc] to the user-provided transport.
	Transport Transport
}

var _ Func[*Message, *Message] = &ExchangeFunc{}

// Call implements [Func].
func (op *ExchangeFunc) Call(ctx context.Context, msg *Message) (*Message, error) {
	name := WireName(msg.Action)
	deadline, _ := ctx.Deadline()
	observer := spanObserver{op.ErrClassifier, op.Logger, op.TimeNow}
	sp := observer.start("dynaliExchange", deadline,
		slog.String("action", name),
		slog.String("endpoint", op.Endpoint.String()),
	)

	resp, err := op.Transport.Exchange(ctx, op.Endpoint, msg.Request)
	if err != nil {
		err = &TransportError{Err: err}
	}
	sp.done(err, slog.Int("responseSize", len(resp)))
	if err != nil {
		return nil, err
	}

	op.Logger.Debug(
		"dynaliResponse",
		slog.String("action", name),
		slog.String("rawResponse", string(resp)),
		slog.Time("t0", sp.t0),
	)
	msg.Response = resp
	return msg, nil
}

// NewDecodeFunc returns a new [*DecodeFunc].
func NewDecodeFunc[D any]() *DecodeFunc[D] {
	return &DecodeFunc[D]{}
}

// DecodeFunc parses the response of a [*Message] with [DecodeEnvelope].
type DecodeFunc[D any] struct{}

var _ Func[*Message, *Envelope[MyIPData]] = &DecodeFunc[MyIPData]{}

// Call implements [Func].
func (op *DecodeFunc[D]) Call(ctx context.Context, msg *Message) (*Envelope[D], error) {
	return DecodeEnvelope[D](msg.Response)
}

// NewMapFunc returns a new [*MapFunc] using the given mapper.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewMapFunc[D, R any](cfg *Config, logger SLogger, mapper func(env *Envelope[D]) (R, error)) *MapFunc[D, R] {
	return &MapFunc[D, R]{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		Mapper:        mapper,
	}
}

// MapFunc turns a decoded [*Envelope] into the result of a call.
type MapFunc[D, R any] struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewMapFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use.
	//
	// Set by [NewMapFunc] to the user-provided logger.
	Logger SLogger

	// Mapper is one of [MapMyIP], [MapSuccess] or a closure around [MapStatus].
	//
	// Set by [NewMapFunc] to the user-provided mapper.
	Mapper func(env *Envelope[D]) (R, error)
}

// Call implements [Func].
func (op *MapFunc[D, R]) Call(ctx context.Context, env *Envelope[D]) (R, error) {
	result, err := op.Mapper(env)
	op.Logger.Info(
		"dynaliMapDone",
		slog.Int("code", env.Code),
		slog.Any("err", err),
		slog.String("errClass", op.ErrClassifier.Classify(err)),
		slog.String("message", env.Message),
		slog.String("status", env.Status),
	)
	return result, err
}
