package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// LoggerInitializationFailedMessageFormat wraps a failure to construct the application logger.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
