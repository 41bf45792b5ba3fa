package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	TimeoutExceeded failure.ErrorCode = "TimeoutExceeded"

	// Store lookups
	GameNotFound      failure.ErrorCode = "GameNotFound"      // Search returned no items
	StoreUnavailable  failure.ErrorCode = "StoreUnavailable"  // Transport failure or non-2xx status
	StoreRejected     failure.ErrorCode = "StoreRejected"     // Store answered with success=false
	MalformedResponse failure.ErrorCode = "MalformedResponse" // Body could not be decoded
	LookupPanicked    failure.ErrorCode = "LookupPanicked"

	// Configuration
	InvalidConfiguration failure.ErrorCode = "InvalidConfiguration"
	GameListMissing      failure.ErrorCode = "GameListMissing"
	GameListEmpty        failure.ErrorCode = "GameListEmpty"

	// Delivery
	NotificationFailed failure.ErrorCode = "NotificationFailed"
)
