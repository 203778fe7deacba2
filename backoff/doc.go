// Package backoff describes how failed dYdX API calls are retried.
//
// A [Policy] is an immutable description of attempt limits and delay growth.
// A [Registry] maps an operation name (for example "get_account" or
// "get_markets") to the policy used for that operation. Lookups never fail:
// every registry carries a fallback policy chosen when it is constructed.
//
// Three registries are provided:
//
//   - [Fallback]: one shared policy for every operation.
//   - [NoRetry]: a single attempt for every operation.
//   - [Custom]: per-operation policies with a fallback for unknown names.
//
// Custom registries can also be loaded from YAML with [LoadYAML]:
//
//	fallback:
//	  factor: 2
//	  min_delay: 1s
//	  max_delay: 60s
//	  max_retries: 3
//	operations:
//	  get_account:
//	    factor: 1.5
//	    min_delay: 200ms
//	    max_delay: 5s
//	    max_retries: 5
package backoff
