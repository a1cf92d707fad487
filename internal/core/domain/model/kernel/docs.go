// Package kernel contains the shared value objects of the marketplace:
// identifiers, geographic coordinates and the authenticated principal.
package kernel
