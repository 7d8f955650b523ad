package response

// Envelope is the JSON shape for responses that carry no domain body,
// such as middleware rejections and health-style replies.
type Envelope struct {
	Status  string      `json:"status"` // "success" or "error"
	Code    int         `json:"code"`   // HTTP status code
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"` // validation or error details
}
