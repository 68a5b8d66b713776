// Package domain defines the core business entities for PastePDF.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceDocument: An uploaded PDF tracked by the registry
//   - PageInfo: Native geometry of one page of a source document
//   - CompositionModel: A canvas layout to be exported
//   - PlacementItem: One positioned page reference within a composition
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
