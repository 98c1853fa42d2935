// Package httputil provides the HTTP plumbing shared by remote catalog
// providers.
//
//   - [Client]: JSON GET with default headers, status mapping and a
//     [cache.Cache] in front of it
//   - [Retry]: retry with exponential backoff for transient failures
//
// # Retry
//
// Only errors wrapped with [Retryable] are retried. The client wraps
// connection failures and 5xx responses; 404 maps to [ErrNotFound] and is
// returned immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.Get(ctx, url, &index)
//	})
//
// # Caching
//
// [Client.Cached] checks the cache first and stores the JSON encoding of the
// decoded value on success, so a cached entry is independent of the wire
// response:
//
//	var idx Index
//	err := client.Cached(ctx, url, false, &idx, func() error {
//	    return client.Get(ctx, url, &idx)
//	})
package httputil
