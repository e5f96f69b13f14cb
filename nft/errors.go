package nft

import (
	"errors"
	"strings"
)

var (
	// ErrIdentityUnavailable is returned when no wallet identity is connected
	ErrIdentityUnavailable = errors.New("no wallet identity connected")

	// ErrSubmissionInFlight is returned when another submission has not settled yet
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// ErrDeploymentIncomplete is returned when a deployment lacks an ID the call needs
	ErrDeploymentIncomplete = errors.New("deployment is missing package or template store id")

	// ErrUnknownOperation is returned for a Kind outside the known set
	ErrUnknownOperation = errors.New("unknown operation")
)

// FallbackFailureMessage is shown when a failed submission carries no message
const FallbackFailureMessage = "An error occurred while minting the NFT."

// ValidationError lists the form fields that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// Notice is the user-facing text for a blocking validation notice
func (e *ValidationError) Notice() string {
	for _, f := range e.Fields {
		if f == "Rarity" {
			return "Please fill in all fields and set rarity between 1-5 (" + strings.Join(e.Fields, ", ") + ")"
		}
	}
	return "Please fill in all fields (" + strings.Join(e.Fields, ", ") + ")"
}
