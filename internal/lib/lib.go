// Package lib holds modules that do not fit strictly into other layers:
// background job processing (using Redis/Asynq) and the email client
// integration (Resend).
package lib
