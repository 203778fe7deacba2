// Package dydx provides a Go client for the dYdX REST API.
//
// A Client always offers the public v4 endpoints. Supplying credentials adds
// authenticated sub-clients: SubaccountCredentials enable the v4 account
// endpoints and APIKeyCredentials enable the signed v3 endpoints.
//
// Basic usage:
//
//	client, err := dydx.New("https://indexer.dydx.trade",
//	    dydx.WithCredentials(dydx.SubaccountCredentials{Address: addr}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	markets, err := client.Public().GetMarkets(ctx, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sub, err := client.Subaccount()
//	if err != nil {
//	    log.Fatal(err) // ErrNotConfigured without SubaccountCredentials
//	}
//	account, err := sub.GetAccount(ctx)
//
// # Retries
//
// Read operations are retried with exponential backoff. The policy is looked
// up per operation name (OpGetAccount, OpGetMarkets, ...) in a
// backoff.Registry; public and authenticated sub-clients have separate
// registries and notifiers:
//
//	dydx.WithPrivateBackoff(backoff.NewCustom(backoff.NoRetryPolicy(), map[string]backoff.Policy{
//	    dydx.OpGetAccount: backoff.Exponential(2, time.Second, time.Minute, 5),
//	}))
//
// Every failure is retried the same way, including 4xx responses. The retry
// sequence stops early when the context is done. Order placement,
// cancellation and email verification make exactly one attempt.
//
// # Errors
//
// Request failures are returned as *APIError and match ErrTransport,
// ErrProtocol or ErrDecode with errors.Is; protocol errors also match
// ErrUnauthorized, ErrNotFound and ErrRateLimited by status code. Invalid
// credentials or order parameters are reported as *ValidationError.
//
// # Signing
//
// v3 requests are signed with the API key secret. v3 order signatures are
// produced by an external signing.Signer, typically a signing.ExecSigner
// running a helper program.
package dydx
