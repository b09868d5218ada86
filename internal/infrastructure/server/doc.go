// Package server assembles the home daemon.
//
// Server Lifecycle:
//  1. Load configuration from the environment
//  2. Open the views store (file, sqlite or memory)
//  3. Write the crash stamp file
//  4. Claim com.nokia.HildonHome on the session bus, or stay passive
//  5. Serve the optional status API
//  6. On shutdown, release the bus name, remove the stamp and close the store
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(ctx, cfg, server.Options{})
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
package server
