// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow for fixture scanning:
//  1. [ConfirmView] : Review scan parameters before starting
//  2. [ScanView] : Monitor real-time progress updates
//  3. [ResultView] : Browse flagged fixtures and high-scoring teams
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the scanner Engine, providing non-blocking status reporting during scans.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
