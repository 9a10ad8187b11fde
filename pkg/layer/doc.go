// SPDX-License-Identifier: MPL-2.0

// Package layer implements partial configurations: one optional value per
// schema field, plus the label of the source that supplied it.
//
// Two operators combine layers. SetIfAbsent fills only the fields that are
// still unset, so folding file layers with it gives earlier layers priority.
// Overwrite and Apply replace values unconditionally; command-line values are
// applied that way on top of the folded file layer.
//
// Layers are only combined with layers of the same *schema.Schema. Passing a
// layer of another schema to SetIfAbsent, Apply or Fold panics; every other
// failure is returned as an error.
package layer
