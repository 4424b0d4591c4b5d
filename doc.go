// SPDX-License-Identifier: GPL-3.0-or-later

// Package dynali implements a client for the Dynali dynamic-DNS API.
//
// The API speaks JSON over HTTPS. Every request is an object with an
// "action" member and, except for myip, a "payload" member carrying the
// hostname credentials. Every response is an [Envelope] whose code is 200
// on success.
//
// # Client
//
// Use [NewClient] with a [*Config] and a [Transport]:
//
//	cfg := dynali.NewConfig()
//	txp := dynali.NewHTTPTransport(cfg, logger)
//	clnt := dynali.NewClient(cfg, txp, logger)
//	record, err := clnt.Status(ctx, "example.dynali.net", "user1234", "secret")
//
// The client exposes four operations: [*Client.MyIP], [*Client.Update],
// [*Client.Status], and [*Client.ChangePassword]. Each has an Async variant
// returning a [*Future]. Passwords are plaintext and hashed with [Digest]
// exactly once before they leave the caller.
//
// # Pipeline
//
// Each call composes the following [Func] stages with [Compose2] and
// friends:
//
//   - [ValidateFunc]: runs [Validate] and fails with [*ValidationError]
//   - [EncodeFunc]: runs [EncodeRequest]
//   - [ExchangeFunc]: sends the request through the [Transport]
//   - [DecodeFunc]: runs [DecodeEnvelope]
//   - [MapFunc]: runs [MapMyIP], [MapStatus], or [MapSuccess]
//
// The pure stages are exported so callers can encode, decode, and map
// without a client (e.g., to replay recorded responses).
//
// # Errors
//
// Failures are one of [*ValidationError], [*TransportError],
// [*DecodingError], or [*APIError]. The client never retries.
//
// # Transport
//
// [*HTTPTransport] dials a fresh connection for each exchange by composing
// [ConnectFunc], [CancelWatchFunc], [TLSHandshakeFunc] (https only), and
// [HTTPConnFunc]. HTTP/2 is used when the server selects it through ALPN.
// HTTP status codes are ignored: only the envelope code matters.
//
// # Observability
//
// All stages support structured logging via [SLogger] (compatible with
// [log/slog]). By default, logging is disabled.
//
// Stages emit span events (*Start/*Done pairs) carrying t0, t, err, and
// errClass, where errClass comes from the configured [ErrClassifier]. The
// client tags every event of a call with a spanID generated by [NewSpanID].
// Raw response bodies are logged at [slog.LevelDebug]; all other events use
// [slog.LevelInfo].
//
// # Context
//
// The package never modifies the context it receives. Bound calls with
// [context.WithTimeout] or [signal.NotifyContext]; [CancelWatchFunc] closes
// the connection as soon as the context is done.
package dynali
