// Package updater implements the modpack update workflow: it asks for the archive URL,
// downloads the archive, extracts it into a temporary folder inside the Minecraft versions root,
// moves a previous installation of the same package aside under a timestamped name,
// installs the new one, and removes what the run left behind.
// Every step returns its error to the caller; presentation and exit codes belong to the app package.
package updater
