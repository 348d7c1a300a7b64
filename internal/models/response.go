package models

import "net/http"

// Response is the JSON envelope every API endpoint answers with,
// mirroring the upstream partner envelope shape.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func NewResponse(data any) Response {
	return Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    data,
	}
}

func NewErrorResponse(status int, message string) Response {
	return Response{
		Status:  status,
		Message: message,
	}
}
