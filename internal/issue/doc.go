// SPDX-License-Identifier: MPL-2.0

// Package issue turns configuration-resolution failures into user-facing
// messages: a one-line ActionableError with suggestions, and a longer
// Markdown guide per failure class rendered with glamour.
package issue
