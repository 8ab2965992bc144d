package types

// InfoReceiver is the fixed receiver name reported by the info endpoint.
const InfoReceiver = "Cisco is the best!"

// PingRequest is the body accepted by the ping endpoint. URL is a pointer so
// that binding only checks the key is present; an empty string is relayed.
type PingRequest struct {
	URL *string `json:"url" binding:"required" example:"https://example.com"` // Upstream URL to fetch
}

// NewPingRequest builds a request body for url
func NewPingRequest(url string) PingRequest {
	return PingRequest{URL: &url}
}

// ErrorPayload is returned on every failed relay
type ErrorPayload struct {
	Status int    `json:"status" example:"502"`
	Error  string `json:"error" example:"Timeout"`
}

// InfoPayload is the fixed body of the info endpoint
type InfoPayload struct {
	Receiver string `json:"Receiver" example:"Cisco is the best!"`
}

// NewInfoPayload returns the fixed info endpoint body
func NewInfoPayload() InfoPayload {
	return InfoPayload{Receiver: InfoReceiver}
}

// NewErrorPayload builds the body sent on a failed relay
func NewErrorPayload(status int, message string) ErrorPayload {
	return ErrorPayload{
		Status: status,
		Error:  message,
	}
}
