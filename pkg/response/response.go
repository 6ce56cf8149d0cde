package response

// Body is the envelope used for errors raised outside the handler layer
// (middleware, the echo error handler). Handlers themselves respond via
// fres.
type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Error(code, message string, data any) Body {
	return Body{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func Success(message string, data any) Body {
	return Body{
		Code:    "SUCCESS",
		Message: message,
		Data:    data,
	}
}
