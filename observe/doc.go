/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package observe instruments repositories from the outside.

Wrap decorates any datastore.Repository so every operation is logged with
zap, counted and timed in Prometheus, and traced with OpenTelemetry:

	metrics, _ := observe.NewMetrics("adminstore", prometheus.DefaultRegisterer)
	bots := observe.Wrap[models.Bot](repo, "bot",
	    observe.WithLogger(logger),
	    observe.WithMetrics(metrics),
	)

Successful operations log at Debug. Not-found, invalid input and empty
updates log at Warn. Store failures log at Error with the store's error code.
*/
package observe
