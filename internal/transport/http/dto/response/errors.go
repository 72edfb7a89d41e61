package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Success: false,
		Error:   "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Success: false,
		Error:   "Authentication failed",
	}

	ErrAuthenticationRequired = ErrorResponse{
		Success: false,
		Error:   "Authentication required",
	}

	ErrMetadataNotFound = ErrorResponse{
		Success: false,
		Error:   "Metadata not found",
	}

	ErrInternal = ErrorResponse{
		Success: false,
		Error:   "Internal server error",
	}
)
