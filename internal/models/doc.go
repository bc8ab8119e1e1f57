// Package models defines domain entities and persistence interfaces for the scout fixture scanner.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing upstream catalog data
//   - [Competition] : Competition metadata with its governing [Area] and format tag
//   - [Fixture] : A scheduled match with both sides and optional quoted [Odds]
//   - [Match] : A finished match with its [Score] and full-time goal counts
//   - [FlaggedResult] : A fixture side flagged by the scanner (streak + odds band)
//   - [HighScoringTeam] : A side whose recent matches all cleared the goals threshold
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedScan] : Completed scan runs with parameters and result counts
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
