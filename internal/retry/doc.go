// Package retry re-runs MySQL connection attempts that fail for transient
// reasons (too many connections, dropped sockets, refused dials).
//
//	r := retry.ForConnect(3, nil)
//	err := r.Do(ctx, func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
//
// Zero retries runs the operation exactly once, the default for export runs.
package retry
