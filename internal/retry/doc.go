// Package retry re-issues workshop platform calls that failed for a
// temporary reason (platform busy, timeouts, rate limits).
//
// Classification and timing are pluggable:
//
//	exec := retry.NewExecutor(retry.ClassifierFunc(ugc.IsTransient), retry.NewBackoff(3))
//	id, err := retry.Do(ctx, exec, func(ctx context.Context) (wsup.PublishedFileID, error) {
//	    return client.CreateItem(ctx, appID)
//	})
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy,
// leaving the receiver untouched.
package retry
