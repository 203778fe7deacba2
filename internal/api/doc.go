// Package api provides the request pipeline shared by every dYdX sub-client.
// It builds versioned URLs, dispatches a single HTTP attempt, classifies the
// response, and drives retry sequences according to a backoff policy.
//
// # Dispatch
//
// [Client.Send] performs exactly one attempt. URLs are built as
// {host}/{prefix}/{path}, where prefix is "v4" or "v3" depending on the
// surface; requests marked [Request.Internal] go to the internal host with no
// prefix. Query parameters are attached for every method in the order they
// were added. A body whose JSON encoding is {} or null is not sent.
//
// # Classification
//
// Status 200 and 201 are successes and the body is decoded into the result.
// Every other status is a [KindProtocol] failure carrying the decimal status
// code and the response body. Failures before a response is received are
// [KindTransport]; a 2xx body that does not decode is [KindDecode].
//
// # Retries
//
// [Executor] resolves the policy for an operation name and retries every
// failure kind the same way, up to the policy's retry limit:
//
//	attempt(0) -> fail -> notify(op, err, Delay(0)) -> wait -> attempt(1) -> ...
//
// Only the last error is returned. Earlier errors are visible to the
// [Notifier]. A done context stops the sequence immediately.
//
// # Thread Safety
//
// [Client] and [Executor] are safe for concurrent use. Notifiers are invoked
// from concurrent retry sequences and must be safe for concurrent use too.
package api
