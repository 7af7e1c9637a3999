// Package key defines the key values that binding scripts refer to.
//
// A Key is identified only by its ID string ("super", "a", ...). Scripts
// never see raw IDs; they see the constants published from a Table, such
// as SUPER or A, and pass those to bind.
//
// # Constants
//
// The default table contains SUPER, A, H, J, K and L. Hosts extend it with
// Table.Set before publishing:
//
//	keys := key.DefaultTable()
//	keys.Set("ESC", "escape")
package key
