package handlers

// RespError is the body of every non-2xx response. Detail is only set for
// payment gateway failures.
type RespError struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// RespMessage acknowledges a webhook delivery.
type RespMessage struct {
	Message string `json:"message"`
}

type RespInquiryCreated struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
