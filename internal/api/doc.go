// Package api provides access to the lelang.go.id auction REST APIs: the
// status endpoint on the main API host and the bidding endpoints on the
// bidding host. Credentials are supplied per call, since every chat carries
// its own bearer token and cookie jar.
package api
