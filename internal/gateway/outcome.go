// Package gateway holds the delivery adapters for the WhatsApp and email
// channels. Every adapter call makes exactly one outbound attempt and reports
// a discriminated Outcome; transport and auth errors never escape as panics
// or raw errors.
package gateway

// Outcome is the per-attempt delivery result.
type Outcome struct {
	Success bool   `json:"success"`
	SID     string `json:"message_sid,omitempty"`
	Status  string `json:"status,omitempty"`
	To      string `json:"to,omitempty"`
	Err     string `json:"error,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func succeeded(sid, status, to string) Outcome {
	return Outcome{Success: true, SID: sid, Status: status, To: to}
}

func failed(err error, code int) Outcome {
	return Outcome{Success: false, Err: err.Error(), Code: code}
}
