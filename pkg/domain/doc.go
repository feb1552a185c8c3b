// Package domain contains the core domain entities and types used by the
// application. These types represent the business concepts (owners, batch
// calculations, stream readings and station telemetry) and are free of
// infrastructure concerns so they can be shared across packages.
package domain
