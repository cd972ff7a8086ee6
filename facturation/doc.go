// Package facturation provides a client for the facturation.pro invoicing API.
//
// facturation.pro is a hosted invoicing service. Each account owns one or
// more firms, and every firm holds its own customers, invoices and credit
// notes. This package maps those REST endpoints to typed Go methods.
//
// # Authentication
//
// Tokens come from the OAuth2 authorization-code flow. The exchange and the
// refresh are handled by golang.org/x/oauth2; the client only supplies the
// endpoints and credentials:
//
//	client, err := facturation.NewClient(facturation.Config{
//		ClientID:     "id",
//		ClientSecret: "secret",
//		RedirectURI:  "https://example.com/callback",
//		Scope:        "read write",
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	fmt.Println(client.AuthCodeURL(""))
//	token, err := client.Exchange(ctx, code)
//
// Tokens are not persisted. Save the result of Token() if you need one
// across runs and pass it back with WithToken.
//
// # Rate limiting
//
// Every API response, including error responses, updates a tracker from the
// X-RateLimit-Remaining header. The budget returns to 600 once a full
// 60-second window passes with no request. CheckRateLimit is advisory;
// requests are never delayed or queued.
//
//	if !client.CheckRateLimit(10) {
//		// back off before issuing a batch
//	}
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError. They unwrap to ErrNotFound,
// ErrUnauthorized or ErrRateLimited where relevant:
//
//	if errors.Is(err, facturation.ErrNotFound) {
//		// ...
//	}
package facturation
