package core

import "errors"

var (
	// ErrListingFailed is returned when a repository listing page is not a success
	ErrListingFailed = errors.New("failed to retrieve repository list")

	// ErrNoCompatibleRepositories is returned when nothing survives platform filtering
	ErrNoCompatibleRepositories = errors.New("no compatible repositories found for this system")

	// ErrAcquisitionFailed is returned when both cloning and every archive branch failed
	ErrAcquisitionFailed = errors.New("failed to download repository ZIP")

	// ErrInvalidSelection is returned for a non-numeric or out-of-range script choice
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrUserQuit is returned when the user leaves the menu with the quit key
	ErrUserQuit = errors.New("quit by user")

	// ErrInterrupted is returned when the user interrupts a blocking read
	ErrInterrupted = errors.New("operation cancelled by user")
)

// ExitCodeFor decides the process exit status for a pipeline error.
// Quitting and interrupting are not failures.
func ExitCodeFor(err error) int {
	switch {
	case err == nil,
		errors.Is(err, ErrUserQuit),
		errors.Is(err, ErrInterrupted):
		return ExitSuccess
	case errors.Is(err, ErrListingFailed):
		return ExitNetwork
	case errors.Is(err, ErrAcquisitionFailed):
		return ExitInstallFailed
	case errors.Is(err, ErrInvalidSelection):
		return ExitInvalidArgs
	default:
		return ExitGeneral
	}
}
