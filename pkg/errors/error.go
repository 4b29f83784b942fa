package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// OrderFeedReadError represents a failure reading from the inbound offer feed.
	OrderFeedReadError ErrorCode = "order_feed_read_error"
	// OrderFeedDecodeError represents a malformed offer request payload.
	OrderFeedDecodeError ErrorCode = "order_feed_decode_error"
	// TradeFeedPublishError represents a failure publishing a trade event.
	TradeFeedPublishError ErrorCode = "trade_feed_publish_error"
	// SettlementTransferError represents a custodian transfer that failed mid-settlement.
	SettlementTransferError ErrorCode = "settlement_transfer_error"
)
