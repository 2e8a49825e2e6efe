// Package remote provides an HTTP client for the tangod API.
//
// # Client Usage
//
//	client, err := remote.NewClient("http://127.0.0.1:8787", token)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//	words, err := client.ListWords(ctx, "TOPIK1")
//
// # Errors
//
// Every failure wraps one of the vocab sentinels so callers can branch with
// errors.Is: 401 maps to vocab.ErrUnauthorized, 400 and 422 to
// vocab.ErrInvalidInput, 404 to vocab.ErrNotFound, 409 to
// vocab.ErrDuplicateName, and any other status, network or decode failure to
// vocab.ErrUpstream. Non-2xx responses are returned as *Error carrying the
// status and the server's message.
//
// Input that the server would reject (empty folder names, incomplete word
// pairs, a missing API token) fails locally without a request.
package remote
