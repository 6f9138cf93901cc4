// Package requestid tags every HTTP request with an id that is echoed in
// the X-Request-ID response header and attached to log records, so a failed
// validation or submission can be traced from the browser to the logs.
package requestid
