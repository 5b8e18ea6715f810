package server_response

// Responder hands results back to the active transport
var Responder = ginResponder{}
