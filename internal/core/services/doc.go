// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// All shared state is injected through constructors; there are no
// package-level registries. The LeaseTable coordinates the deletion
// barrier between Unregister and in-flight renders/exports.
package services
