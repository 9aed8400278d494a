// Package textutil provides text processing utilities for filename
// sanitization and display truncation.
package textutil
