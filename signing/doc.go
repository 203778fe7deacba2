// Package signing connects the client to the code that produces signatures.
//
// Order signatures for the v3 surface use the STARK curve and are produced by
// an external signing runtime. [Signer] is the contract with that runtime and
// [ExecSigner] runs it as a subprocess:
//
//	signer := signing.NewExecSigner("python3", "stark_sign.py")
//	sig, err := signer.Sign(ctx, signing.FunctionSignOrder, map[string]any{
//		"network_id": 1,
//		"market":     "BTC-USD",
//	})
//
// The subprocess receives {"function": ..., "args": {...}} as JSON on stdin
// and prints the signature on stdout.
//
// Requests to the v3 private API are authenticated with HMAC headers derived
// from the API key credentials; [APIKeySigner] computes them in process.
package signing
