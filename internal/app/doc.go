// Package app wires the modpack client, the update workflow and the console together.
// It owns everything the user sees: banners, the download progress bar, error reporting
// and the final key press.
package app
