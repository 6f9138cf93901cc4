// Package submit sends validated form data to an HTTP endpoint.
//
// A Client posts the data as JSON (optionally reshaped by a transform) with
// any configured headers. The response body is decoded as JSON when the
// server says so and kept as text otherwise. Submission is fire and report:
// it is never retried and its outcome is delivered to the OnResponse and
// OnError hooks rather than returned to the validation caller.
//
//	client, err := submit.NewClient("https://api.example.com/signup",
//		submit.WithHeader("X-CSRF-Token", token),
//		submit.WithOnResponse(func(r submit.Response) { ... }),
//		submit.WithOnError(func(err error) {
//			if se, ok := submit.AsStatusError(err); ok { ... }
//		}),
//	)
//
// Client satisfies coordinator.Submitter. Send is available for callers
// that want the result directly.
//
// Requests can carry an HMAC-SHA256 signature (WithSignature) which the
// receiving side checks with Verify, and a Breaker can stop submissions to
// an endpoint that keeps failing.
package submit
