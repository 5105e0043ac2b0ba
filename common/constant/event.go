package constant

const (
	QueueStreamName = "expo_booth_queue_stream"
)

const (
	AllWildcard   = "events.>"
	OrderWildcard = "events.order.>"
	EmailWildcard = "events.email.>"

	SubjectCreateOrder   = "events.order.create"
	SubjectCompleteOrder = "events.order.complete"
	SubjectCancelOrder   = "events.order.cancel"
	SubjectSendEmail     = "events.email.send"
)
