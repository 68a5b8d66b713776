// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - FileStore: Durable storage for uploaded document bytes
//   - RegistryStore: Persistence for the id -> document mapping
//   - PageSource: Read-only page access (count, dimensions, raster render)
//   - CanvasBuilder: Output document construction with vector page embedding
//   - Validator: Byte-stream validation at upload time
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
