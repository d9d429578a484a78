// Package launcher implements persistence for the desktop launcher
// descriptor.
//
// The FileRepository rewrites the single Exec directive of a .desktop file
// to point at a new artifact path while passing all other lines through
// unchanged.
package launcher
