package entities

import "errors"

// Fatal and non-fatal condition sentinels. Callers classify failures with
// errors.Is; the mandatory executable and directory creation are fatal,
// absence of an optional artifact is an expected skip.
var (
	// ErrMissingArtifact marks a mandatory artifact that does not exist at
	// its expected source path
	ErrMissingArtifact = errors.New("mandatory artifact missing")

	// ErrDirectoryCreation marks a failure to create the output tree
	ErrDirectoryCreation = errors.New("directory creation failed")

	// ErrCopyFailed marks a failed copy of the mandatory executable
	ErrCopyFailed = errors.New("copy failed")

	// ErrManifestMismatch marks a verification failure against the manifest
	ErrManifestMismatch = errors.New("manifest mismatch")

	// ErrLicenseNotAccepted marks a rule source whose license gate was not
	// explicitly accepted
	ErrLicenseNotAccepted = errors.New("license not accepted")
)
