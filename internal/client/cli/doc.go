// Package cli implements the interactive terminal client for the catalog.
//
// The client keeps a session with the REST API through the cookie jar of its
// HTTP client and exposes a small REPL:
//
//	register   create an account
//	login      start a session
//	whoami     show the identity bound to the session
//	products   list the catalog
//	logout     end the session
//	help       list the commands
//	exit       leave the program
//
// Passwords are read from the terminal without echo.
package cli
