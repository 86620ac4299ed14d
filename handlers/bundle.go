package handlers

// HandlerBundle groups the handlers registered by the router.
type HandlerBundle struct {
	Classes  *ClassHandler
	Members  *MemberHandler
	Bookings *BookingHandler
	Reports  *ReportHandler
}
