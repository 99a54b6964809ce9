// Package cli provides the interactive footcap storefront client.
//
// It wires configuration, local storage, the shopper services and the ui.Shop
// into a read–eval–print loop. Commands map onto the storefront controls:
// signing up or logging in, browsing the catalog, clicking product, cart and
// wishlist controls, and checking out.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See runREPL for the command list.
package cli
