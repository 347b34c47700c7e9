package middlewares

// CtxRequestID is the *gin.Context key holding the request id. The
// verified user id is passed to protected handlers as an argument instead.
const CtxRequestID = "request_id"
